// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/segmentio/ksuid"

	iu "github.com/khurmatov/filestate/internal/util"
	"github.com/khurmatov/filestate/model"
)

// DirectorySessionStore persists each event as its own JSON file in a
// directory so a session survives across process invocations
type DirectorySessionStore struct {
	directory string
	log       model.Logger
	out       model.Logger
	mu        sync.Mutex
}

// NewDirectorySessionStore creates a file backed session store rooted at directory
func NewDirectorySessionStore(directory string, logger model.Logger, writer model.Logger) (*DirectorySessionStore, error) {
	if directory == "" {
		return nil, fmt.Errorf("session directory path cannot be empty")
	}

	absDir, err := filepath.Abs(filepath.Clean(directory))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	logger.Info("Creating new session store")

	return &DirectorySessionStore{
		out:       writer,
		log:       logger,
		directory: absDir,
	}, nil
}

func (s *DirectorySessionStore) StartSession() error {
	s.log.Info("Creating new session record", "store", "directory")

	s.mu.Lock()
	err := os.MkdirAll(s.directory, 0755)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	return s.RecordEvent(model.NewSessionStartEvent())
}

// EventsForResource returns the events for one resource, oldest first
func (s *DirectorySessionStore) EventsForResource(resourceType string, resourceName string) ([]model.TransactionEvent, error) {
	allEvents, err := s.AllEvents()
	if err != nil {
		return nil, err
	}

	return filterEvents(allEvents, resourceType, resourceName), nil
}

func (s *DirectorySessionStore) RecordEvent(event model.SessionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updateMetrics(event)

	// event ids become file names, parsing them as ksuids rejects anything
	// that could traverse out of the store directory
	_, err := ksuid.Parse(event.SessionEventID())
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	if !iu.IsDirectory(s.directory) {
		return fmt.Errorf("session store %s does not exist", s.directory)
	}

	data, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return err
	}

	filename := filepath.Join(s.directory, event.SessionEventID()+".event")
	s.log.Debug("Recording event", "filename", filename)

	return os.WriteFile(filename, data, 0644)
}

func (s *DirectorySessionStore) StopSession(destroy bool) (*model.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.allEventsUnlocked()
	if err != nil {
		return nil, err
	}

	summary := model.BuildSessionSummary(events)

	if destroy && iu.IsDirectory(s.directory) {
		err = os.RemoveAll(s.directory)
		if err != nil {
			s.log.Error("Failed to remove session directory", "error", err)
		}
	}

	return summary, nil
}

func (s *DirectorySessionStore) AllEvents() ([]model.SessionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.allEventsUnlocked()
}

// allEventsUnlocked reads every event file in the store, skipping files that
// fail to parse rather than losing the whole session to one bad record
func (s *DirectorySessionStore) allEventsUnlocked() ([]model.SessionEvent, error) {
	var events []model.SessionEvent

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		if os.IsNotExist(err) {
			return events, nil
		}
		return nil, fmt.Errorf("failed to read session directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".event") {
			continue
		}

		filename := filepath.Join(s.directory, entry.Name())
		data, err := os.ReadFile(filename)
		if err != nil {
			s.log.Error("Failed to read event file", "filename", filename, "error", err)
			continue
		}

		var eventType struct {
			Protocol string `json:"protocol"`
		}
		err = json.Unmarshal(data, &eventType)
		if err != nil {
			s.log.Error("Failed to parse event type", "filename", filename, "error", err)
			continue
		}

		var event model.SessionEvent
		switch eventType.Protocol {
		case model.SessionStartEventProtocol:
			var startEvent model.SessionStartEvent
			err = json.Unmarshal(data, &startEvent)
			if err != nil {
				s.log.Error("Failed to parse session start event", "filename", filename, "error", err)
				continue
			}
			event = &startEvent

		case model.TransactionEventProtocol:
			var txEvent model.TransactionEvent
			err = json.Unmarshal(data, &txEvent)
			if err != nil {
				s.log.Error("Failed to parse transaction event", "filename", filename, "error", err)
				continue
			}
			event = &txEvent

		default:
			s.log.Warn("Unknown event protocol", "filename", filename, "protocol", eventType.Protocol)
			continue
		}

		events = append(events, event)
	}

	// ksuids sort lexically into time order
	sort.Slice(events, func(i, j int) bool {
		return events[i].SessionEventID() < events[j].SessionEventID()
	})

	return events, nil
}
