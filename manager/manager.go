// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/khurmatov/filestate/internal/facts"
	"github.com/khurmatov/filestate/model"
	"github.com/khurmatov/filestate/session"
)

// Filestate coordinates ensure runs on behalf of a host process, it owns the
// session store, the check mode flag and cached node facts
type Filestate struct {
	session    model.SessionStore
	log        model.Logger
	userLogger model.Logger
	noop       bool
	facts      map[string]any

	mu sync.Mutex
}

// NewManager creates a new Filestate instance with the provided loggers
func NewManager(log model.Logger, userLogger model.Logger, opts ...Option) (*Filestate, error) {
	mgr := &Filestate{log: log, userLogger: userLogger}

	for _, opt := range opts {
		err := opt(mgr)
		if err != nil {
			return nil, err
		}
	}

	if mgr.session == nil {
		sessionLog, err := mgr.Logger("session", "memory")
		if err != nil {
			return nil, err
		}

		mgr.session, err = session.NewMemorySessionStore(sessionLog, userLogger)
		if err != nil {
			return nil, err
		}
	}

	return mgr, nil
}

// NoopMode reports if the host requested a dry run
func (m *Filestate) NoopMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.noop
}

// Facts gathers and caches the node facts
func (m *Filestate) Facts(ctx context.Context) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.facts != nil {
		return m.facts, nil
	}

	to, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	f, err := facts.StandardFacts(to)
	if err != nil {
		return nil, err
	}
	m.facts = f

	return f, nil
}

// Logger creates a new logger with the provided key-value pairs added to the context
func (m *Filestate) Logger(args ...any) (model.Logger, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("invalid logger arguments, must be key value pairs")
	}

	return m.log.With(args...), nil
}

// Session provides access to the session store for summaries and event queries
func (m *Filestate) Session() model.SessionStore {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.session
}

// RecordEvent records an event in the session store
func (m *Filestate) RecordEvent(event model.SessionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return fmt.Errorf("no session store available")
	}

	return m.session.RecordEvent(event)
}
