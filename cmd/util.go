// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"os"

	"github.com/SladkyCitron/slogcolor"
	"github.com/sirupsen/logrus"

	iu "github.com/khurmatov/filestate/internal/util"
	"github.com/khurmatov/filestate/manager"
	"github.com/khurmatov/filestate/model"
)

func newManager(session string, noop bool) (model.Manager, model.Logger, error) {
	var opts []manager.Option

	if session != "" {
		opts = append(opts, manager.WithSessionDirectory(session))
	}

	if noop {
		opts = append(opts, manager.WithNoop())
	}

	logger := newLogger()
	out := newOutputLogger()

	mgr, err := manager.NewManager(logger, out, opts...)
	if err != nil {
		return nil, nil, err
	}

	// a directory store needs its directory before events can be recorded,
	// starting a session creates it
	if session != "" && !iu.IsDirectory(session) {
		err = mgr.Session().StartSession()
		if err != nil {
			return nil, nil, err
		}
	}

	return mgr, out, nil
}

func newOutputLogger() model.Logger {
	var level slog.Level

	switch {
	case debug:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	return manager.NewSlogLogger(slog.New(slogcolor.NewHandler(os.Stdout, &slogcolor.Options{Level: level})))
}

func newLogger() model.Logger {
	var level slog.Level

	switch {
	case debug:
		level = slog.LevelDebug
	case info:
		level = slog.LevelInfo
	default:
		level = slog.LevelWarn
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return manager.NewSlogLogger(logger)
}

// newModuleLogger creates the stderr logger used in host plugin mode, stdout is
// reserved for the machine readable result record
func newModuleLogger() model.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	switch {
	case debug:
		logger.SetLevel(logrus.DebugLevel)
	case info:
		logger.SetLevel(logrus.InfoLevel)
	default:
		logger.SetLevel(logrus.WarnLevel)
	}

	return manager.NewLogrusLogger(logrus.NewEntry(logger))
}
