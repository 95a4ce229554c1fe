// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"os"
	"path/filepath"

	"github.com/khurmatov/filestate/model"
	"github.com/khurmatov/filestate/model/modelmocks"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("DirectorySessionStore", func() {
	var (
		mockctl *gomock.Controller
		logger  *modelmocks.MockLogger
		writer  *modelmocks.MockLogger
		store   *DirectorySessionStore
		dir     string
	)

	BeforeEach(func() {
		mockctl = gomock.NewController(GinkgoT())
		logger = modelmocks.NewMockLogger(mockctl)
		writer = modelmocks.NewMockLogger(mockctl)

		logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
		logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
		logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
		logger.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()

		dir = filepath.Join(GinkgoT().TempDir(), "session")

		var err error
		store, err = NewDirectorySessionStore(dir, logger, writer)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		mockctl.Finish()
	})

	Describe("NewDirectorySessionStore", func() {
		It("Should require a directory", func() {
			_, err := NewDirectorySessionStore("", logger, writer)
			Expect(err).To(MatchError(ContainSubstring("cannot be empty")))
		})
	})

	Describe("RecordEvent", func() {
		It("Should write one event file per event", func() {
			Expect(store.StartSession()).To(Succeed())

			event := model.NewTransactionEvent(model.FileTypeName, "/tmp/a.txt")
			event.Changed = true
			Expect(store.RecordEvent(event)).To(Succeed())

			entries, err := os.ReadDir(dir)
			Expect(err).ToNot(HaveOccurred())
			Expect(entries).To(HaveLen(2))
		})

		It("Should fail before the session was started", func() {
			event := model.NewTransactionEvent(model.FileTypeName, "/tmp/a.txt")
			Expect(store.RecordEvent(event)).To(MatchError(ContainSubstring("does not exist")))
		})
	})

	Describe("AllEvents", func() {
		It("Should round trip all recorded events", func() {
			Expect(store.StartSession()).To(Succeed())

			first := model.NewTransactionEvent(model.FileTypeName, "/tmp/a.txt")
			second := model.NewTransactionEvent(model.FileTypeName, "/tmp/b.txt")
			Expect(store.RecordEvent(first)).To(Succeed())
			Expect(store.RecordEvent(second)).To(Succeed())

			events, err := store.AllEvents()
			Expect(err).ToNot(HaveOccurred())
			Expect(events).To(HaveLen(3))

			var ids []string
			for _, e := range events {
				ids = append(ids, e.SessionEventID())
			}
			Expect(ids).To(ContainElements(first.EventID, second.EventID))
		})
	})

	Describe("StopSession", func() {
		It("Should optionally destroy the directory", func() {
			Expect(store.StartSession()).To(Succeed())
			Expect(store.RecordEvent(model.NewTransactionEvent(model.FileTypeName, "/tmp/a.txt"))).To(Succeed())

			summary, err := store.StopSession(true)
			Expect(err).ToNot(HaveOccurred())
			Expect(summary.TotalResources).To(Equal(1))

			_, err = os.Stat(dir)
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})
})
