// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"time"

	"github.com/segmentio/ksuid"
)

type SessionEvent interface {
	SessionEventID() string
	String() string
}

type SessionStore interface {
	StartSession() error
	StopSession(destroy bool) (*SessionSummary, error)
	RecordEvent(SessionEvent) error
	EventsForResource(resourceType string, resourceName string) ([]TransactionEvent, error)
	AllEvents() ([]SessionEvent, error)
}

const TransactionEventProtocol = "io.filestate.v1.transaction.event"
const SessionStartEventProtocol = "io.filestate.v1.session.start"

// TransactionEvent represents a single ensure run for a resource
type TransactionEvent struct {
	Protocol     string           `json:"protocol" yaml:"protocol"`
	EventID      string           `json:"event_id" yaml:"event_id"`
	TimeStamp    time.Time        `json:"timestamp" yaml:"timestamp"`
	ResourceType string           `json:"type" yaml:"type"`
	Provider     string           `json:"provider" yaml:"provider"`
	Name         string           `json:"name" yaml:"name"`
	Duration     time.Duration    `json:"duration" yaml:"duration"`
	Result       *FileStateResult `json:"result,omitempty" yaml:"result,omitempty"`
	NoopMessage  string           `json:"noop_message,omitempty" yaml:"noop_message,omitempty"`

	Error   string `json:"error" yaml:"error"`
	Changed bool   `json:"changed" yaml:"changed"`
	Failed  bool   `json:"failed" yaml:"failed"`
	Noop    bool   `json:"noop" yaml:"noop"`
}

type SessionStartEvent struct {
	Protocol  string    `json:"protocol" yaml:"protocol"`
	EventID   string    `json:"event_id" yaml:"event_id"`
	TimeStamp time.Time `json:"timestamp" yaml:"timestamp"`
}

func NewSessionStartEvent() *SessionStartEvent {
	return &SessionStartEvent{
		Protocol:  SessionStartEventProtocol,
		EventID:   ksuid.New().String(),
		TimeStamp: time.Now().UTC(),
	}
}

func NewTransactionEvent(typeName string, name string) *TransactionEvent {
	return &TransactionEvent{
		Protocol:     TransactionEventProtocol,
		EventID:      ksuid.New().String(),
		TimeStamp:    time.Now().UTC(),
		ResourceType: typeName,
		Name:         name,
	}
}

func (t *SessionStartEvent) SessionEventID() string { return t.EventID }
func (t *SessionStartEvent) String() string {
	return fmt.Sprintf("session %s started %s", t.EventID, t.TimeStamp.Format(time.RFC3339))
}

func (t *TransactionEvent) SessionEventID() string { return t.EventID }

// LogStatus writes a one line outcome summary to the given logger
func (t *TransactionEvent) LogStatus(log Logger) {
	args := []any{
		"runtime", t.Duration.Truncate(time.Millisecond),
		"provider", t.Provider,
	}

	if t.Noop {
		if t.NoopMessage != "" {
			args = append(args, "noop", t.NoopMessage)
		} else {
			args = append(args, "noop", true)
		}
	}

	if t.Result != nil && t.Result.BackupPath != "" {
		args = append(args, "backup", t.Result.BackupPath)
	}

	switch {
	case t.Failed:
		log.Error(fmt.Sprintf("%s#%s failed", t.ResourceType, t.Name), append(args, "error", t.Error)...)
	case t.Changed:
		log.Warn(fmt.Sprintf("%s#%s changed", t.ResourceType, t.Name), args...)
	default:
		log.Info(fmt.Sprintf("%s#%s stable", t.ResourceType, t.Name), args...)
	}
}

func (t *TransactionEvent) String() string {
	switch {
	case t.Failed:
		return fmt.Sprintf("%s#%s failed runtime=%v error=%v provider=%s", t.ResourceType, t.Name, t.Duration, t.Error, t.Provider)
	case t.Changed:
		return fmt.Sprintf("%s#%s changed runtime=%v provider=%s", t.ResourceType, t.Name, t.Duration, t.Provider)
	default:
		return fmt.Sprintf("%s#%s stable runtime=%v provider=%s", t.ResourceType, t.Name, t.Duration, t.Provider)
	}
}

// SessionSummary provides a statistical summary of a series of ensure runs
type SessionSummary struct {
	StartTime        time.Time     `json:"start_time" yaml:"start_time"`
	EndTime          time.Time     `json:"end_time" yaml:"end_time"`
	TotalDuration    time.Duration `json:"total_duration" yaml:"total_duration"`
	TotalResources   int           `json:"total_resources" yaml:"total_resources"`
	UniqueResources  int           `json:"unique_resources" yaml:"unique_resources"`
	ChangedResources int           `json:"changed_resources" yaml:"changed_resources"`
	FailedResources  int           `json:"failed_resources" yaml:"failed_resources"`
	NoopResources    int           `json:"noop_resources" yaml:"noop_resources"`
	StableResources  int           `json:"stable_resources" yaml:"stable_resources"`
	BackupsCreated   int           `json:"backups_created" yaml:"backups_created"`
}

// BuildSessionSummary creates a summary report from all events in a session
func BuildSessionSummary(events []SessionEvent) *SessionSummary {
	summary := &SessionSummary{}
	var totalTime time.Duration
	var uniques = map[string]struct{}{}

	for _, event := range events {
		if startEvent, ok := event.(*SessionStartEvent); ok {
			summary.StartTime = startEvent.TimeStamp
			continue
		}

		txEvent, ok := event.(*TransactionEvent)
		if !ok {
			continue
		}

		totalTime += txEvent.Duration
		summary.TotalResources++
		uniques[txEvent.ResourceType+"#"+txEvent.Name] = struct{}{}

		if txEvent.TimeStamp.After(summary.EndTime) {
			summary.EndTime = txEvent.TimeStamp
		}

		switch {
		case txEvent.Failed:
			summary.FailedResources++
		case txEvent.Noop:
			summary.NoopResources++
		case txEvent.Changed:
			summary.ChangedResources++
		default:
			summary.StableResources++
		}

		if txEvent.Result != nil && txEvent.Result.BackupPath != "" {
			summary.BackupsCreated++
		}
	}

	summary.UniqueResources = len(uniques)

	if !summary.StartTime.IsZero() && !summary.EndTime.IsZero() {
		summary.TotalDuration = summary.EndTime.Sub(summary.StartTime)
	} else {
		summary.TotalDuration = totalTime
	}

	return summary
}

// String returns a human-readable summary of the session
func (s *SessionSummary) String() string {
	return fmt.Sprintf("Session: %d resources, %d changed, %d failed, %d noop, %d stable, duration=%v",
		s.TotalResources, s.ChangedResources, s.FailedResources, s.NoopResources, s.StableResources, s.TotalDuration)
}
