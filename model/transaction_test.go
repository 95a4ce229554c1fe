// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BuildSessionSummary", func() {
	It("Should summarize a session", func() {
		start := NewSessionStartEvent()
		start.TimeStamp = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

		changed := NewTransactionEvent(FileTypeName, "/etc/motd")
		changed.Changed = true
		changed.Duration = time.Second
		changed.TimeStamp = start.TimeStamp.Add(time.Minute)
		changed.Result = &FileStateResult{BackupPath: "/etc/motd.1.bak~"}

		failed := NewTransactionEvent(FileTypeName, "/etc/hosts")
		failed.Failed = true
		failed.TimeStamp = start.TimeStamp.Add(2 * time.Minute)

		noop := NewTransactionEvent(FileTypeName, "/etc/motd")
		noop.Noop = true
		noop.Changed = true
		noop.TimeStamp = start.TimeStamp.Add(3 * time.Minute)

		stable := NewTransactionEvent(FileTypeName, "/etc/issue")
		stable.TimeStamp = start.TimeStamp.Add(4 * time.Minute)

		summary := BuildSessionSummary([]SessionEvent{start, changed, failed, noop, stable})

		Expect(summary.TotalResources).To(Equal(4))
		Expect(summary.UniqueResources).To(Equal(3))
		Expect(summary.ChangedResources).To(Equal(1))
		Expect(summary.FailedResources).To(Equal(1))
		Expect(summary.NoopResources).To(Equal(1))
		Expect(summary.StableResources).To(Equal(1))
		Expect(summary.BackupsCreated).To(Equal(1))
		Expect(summary.StartTime).To(Equal(start.TimeStamp))
		Expect(summary.EndTime).To(Equal(stable.TimeStamp))
		Expect(summary.TotalDuration).To(Equal(4 * time.Minute))
	})

	It("Should handle sessions without a start event", func() {
		event := NewTransactionEvent(FileTypeName, "/etc/motd")
		event.Duration = 2 * time.Second

		summary := BuildSessionSummary([]SessionEvent{event})
		Expect(summary.TotalResources).To(Equal(1))
		Expect(summary.TotalDuration).To(Equal(2 * time.Second))
	})
})
