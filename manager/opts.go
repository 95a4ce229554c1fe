// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"github.com/khurmatov/filestate/session"
)

// Option is a functional option for configuring Filestate
type Option func(*Filestate) error

// WithSessionDirectory stores session events as files in the given directory
func WithSessionDirectory(path string) Option {
	return func(c *Filestate) error {
		log, err := c.Logger("session", "directory", "path", path)
		if err != nil {
			return err
		}

		sess, err := session.NewDirectorySessionStore(path, log, c.userLogger)
		if err != nil {
			return err
		}

		c.session = sess

		return nil
	}
}

// WithNoop enables the host supplied check mode, no mutations will be made
func WithNoop() Option {
	return func(c *Filestate) error {
		c.noop = true

		return nil
	}
}

// WithFacts overrides fact gathering, mainly used in tests
func WithFacts(facts map[string]any) Option {
	return func(c *Filestate) error {
		c.facts = facts

		return nil
	}
}
