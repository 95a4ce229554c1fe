// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"github.com/khurmatov/filestate/metrics"
	"github.com/khurmatov/filestate/model"
)

func updateMetrics(event model.SessionEvent) {
	e, ok := event.(*model.TransactionEvent)
	if !ok {
		return
	}

	metrics.StateTotal.WithLabelValues(e.ResourceType, e.Name).Inc()
	metrics.EnsureTime.WithLabelValues(e.Provider, e.Name).Observe(e.Duration.Seconds())

	switch {
	case e.Failed:
		metrics.StateFailed.WithLabelValues(e.ResourceType, e.Name).Inc()
	case e.Noop:
		metrics.StateNoop.WithLabelValues(e.ResourceType, e.Name).Inc()
	case e.Changed:
		metrics.StateChanged.WithLabelValues(e.ResourceType, e.Name).Inc()
	default:
		metrics.StateStable.WithLabelValues(e.ResourceType, e.Name).Inc()
	}

	if e.Result != nil && e.Result.BackupPath != "" {
		metrics.BackupCreated.WithLabelValues(e.Name).Inc()
	}
}

func filterEvents(allEvents []model.SessionEvent, resourceType string, resourceName string) []model.TransactionEvent {
	var filtered []model.TransactionEvent

	for _, event := range allEvents {
		txEvent, ok := event.(*model.TransactionEvent)
		if !ok {
			continue
		}

		if txEvent.ResourceType == resourceType && txEvent.Name == resourceName {
			filtered = append(filtered, *txEvent)
		}
	}

	return filtered
}
