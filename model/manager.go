// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// Manager is the host-facing surface the ensurer needs: loggers, facts for
// provider selection, the host supplied check mode and an event sink
type Manager interface {
	Facts(ctx context.Context) (map[string]any, error)
	Logger(args ...any) (Logger, error)
	NoopMode() bool
	RecordEvent(event SessionEvent) error
}
