// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"testing"
	"time"

	"github.com/khurmatov/filestate/model"
	"github.com/khurmatov/filestate/model/modelmocks"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

func TestSession(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Session")
}

var _ = Describe("MemorySessionStore", func() {
	var (
		mockctl *gomock.Controller
		logger  *modelmocks.MockLogger
		writer  *modelmocks.MockLogger
		store   *MemorySessionStore
	)

	BeforeEach(func() {
		mockctl = gomock.NewController(GinkgoT())
		logger = modelmocks.NewMockLogger(mockctl)
		writer = modelmocks.NewMockLogger(mockctl)

		logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
		logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

		var err error
		store, err = NewMemorySessionStore(logger, writer)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		mockctl.Finish()
	})

	Describe("StartSession", func() {
		It("Should record a session start event", func() {
			Expect(store.StartSession()).To(Succeed())

			events, err := store.AllEvents()
			Expect(err).ToNot(HaveOccurred())
			Expect(events).To(HaveLen(1))

			_, ok := events[0].(*model.SessionStartEvent)
			Expect(ok).To(BeTrue())
		})

		It("Should clear earlier events", func() {
			Expect(store.RecordEvent(model.NewTransactionEvent(model.FileTypeName, "/tmp/a.txt"))).To(Succeed())
			Expect(store.StartSession()).To(Succeed())

			events, err := store.AllEvents()
			Expect(err).ToNot(HaveOccurred())
			Expect(events).To(HaveLen(1))
		})
	})

	Describe("EventsForResource", func() {
		It("Should filter by type and name", func() {
			Expect(store.StartSession()).To(Succeed())
			Expect(store.RecordEvent(model.NewTransactionEvent(model.FileTypeName, "/tmp/a.txt"))).To(Succeed())
			Expect(store.RecordEvent(model.NewTransactionEvent(model.FileTypeName, "/tmp/b.txt"))).To(Succeed())

			events, err := store.EventsForResource(model.FileTypeName, "/tmp/a.txt")
			Expect(err).ToNot(HaveOccurred())
			Expect(events).To(HaveLen(1))
			Expect(events[0].Name).To(Equal("/tmp/a.txt"))
		})
	})

	Describe("StopSession", func() {
		It("Should summarize the session", func() {
			Expect(store.StartSession()).To(Succeed())

			changed := model.NewTransactionEvent(model.FileTypeName, "/tmp/a.txt")
			changed.Changed = true
			changed.Duration = 10 * time.Millisecond
			Expect(store.RecordEvent(changed)).To(Succeed())

			failed := model.NewTransactionEvent(model.FileTypeName, "/tmp/b.txt")
			failed.Failed = true
			Expect(store.RecordEvent(failed)).To(Succeed())

			summary, err := store.StopSession(false)
			Expect(err).ToNot(HaveOccurred())
			Expect(summary.TotalResources).To(Equal(2))
			Expect(summary.ChangedResources).To(Equal(1))
			Expect(summary.FailedResources).To(Equal(1))
			Expect(summary.UniqueResources).To(Equal(2))
		})

		It("Should destroy events when asked", func() {
			Expect(store.StartSession()).To(Succeed())
			Expect(store.RecordEvent(model.NewTransactionEvent(model.FileTypeName, "/tmp/a.txt"))).To(Succeed())

			_, err := store.StopSession(true)
			Expect(err).ToNot(HaveOccurred())

			events, err := store.AllEvents()
			Expect(err).ToNot(HaveOccurred())
			Expect(events).To(BeEmpty())
		})
	})
})
