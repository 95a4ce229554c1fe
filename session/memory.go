// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"sync"
	"time"

	"github.com/khurmatov/filestate/model"
)

// MemorySessionStore keeps the events of a run in process memory, it is the
// default store when the host did not ask for persistence
type MemorySessionStore struct {
	start  time.Time
	events []model.SessionEvent
	log    model.Logger
	out    model.Logger
	mu     sync.Mutex
}

// NewMemorySessionStore creates a new in-memory session store with the provided loggers
func NewMemorySessionStore(logger model.Logger, writer model.Logger) (*MemorySessionStore, error) {
	logger.Info("Creating new session store")
	return &MemorySessionStore{
		out:    writer,
		log:    logger,
		events: make([]model.SessionEvent, 0),
	}, nil
}

// StartSession discards anything recorded so far and opens a fresh session
func (s *MemorySessionStore) StartSession() error {
	s.mu.Lock()
	s.events = make([]model.SessionEvent, 0)
	s.mu.Unlock()

	s.log.Info("Creating new session record", "store", "memory")
	start := model.NewSessionStartEvent()
	s.start = start.TimeStamp

	return s.RecordEvent(start)
}

// RecordEvent appends an event to the session and feeds the outcome counters
func (s *MemorySessionStore) RecordEvent(event model.SessionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updateMetrics(event)

	s.events = append(s.events, event)

	return nil
}

// StopSession summarizes the run, destroy additionally drops the recorded events
func (s *MemorySessionStore) StopSession(destroy bool) (*model.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := model.BuildSessionSummary(s.events)

	if destroy {
		s.events = make([]model.SessionEvent, 0)
	}

	return summary, nil
}

// EventsForResource returns all events for a given resource, the events are in time order with latest event at the end
func (s *MemorySessionStore) EventsForResource(resourceType string, resourceName string) ([]model.TransactionEvent, error) {
	allEvents, err := s.AllEvents()
	if err != nil {
		return nil, err
	}

	return filterEvents(allEvents, resourceType, resourceName), nil
}

// AllEvents returns all events in the session in time order
func (s *MemorySessionStore) AllEvents() ([]model.SessionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// callers hold on to these, later records must not leak into them
	eventsCopy := make([]model.SessionEvent, len(s.events))
	copy(eventsCopy, s.events)

	return eventsCopy, nil
}
