// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package fileresource

import (
	"context"

	"github.com/khurmatov/filestate/model"
	"github.com/khurmatov/filestate/resources/file/posix"
)

func init() {
	posix.Register()
}

// FileProvider is the capability interface the ensurer needs from the runtime,
// implementations do the OS specific work while the ensurer holds the policy
type FileProvider interface {
	model.Provider

	Stat(ctx context.Context, path string) (*model.FileStat, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, contents []byte, mode string) error
	Backup(ctx context.Context, path string) (string, error)
	SetAttributes(ctx context.Context, path string, owner string, group string, mode string) (bool, error)
}
