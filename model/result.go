// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"time"
)

const (
	// FileStateResultProtocol is the protocol identifier for ensure results
	FileStateResultProtocol = "io.filestate.v1.result"

	// FileStatProtocol is the protocol identifier for file state inspection
	FileStatProtocol = "io.filestate.v1.file.state"
)

// FileDiff holds the before and after content of a file for diff reporting
type FileDiff struct {
	Before string `json:"before" yaml:"before"`
	After  string `json:"after" yaml:"after"`
}

// FileStateResult is the record returned to the host process after an ensure run
type FileStateResult struct {
	Protocol    string    `json:"protocol" yaml:"protocol"`
	TimeStamp   time.Time `json:"timestamp" yaml:"timestamp"`
	Path        string    `json:"path" yaml:"path"`
	Content     string    `json:"content" yaml:"content"`
	Changed     bool      `json:"changed" yaml:"changed"`
	BackupPath  string    `json:"backup_file,omitempty" yaml:"backup_file,omitempty"`
	Diff        *FileDiff `json:"diff,omitempty" yaml:"diff,omitempty"`
	Noop        bool      `json:"noop,omitempty" yaml:"noop,omitempty"`
	NoopMessage string    `json:"noop_message,omitempty" yaml:"noop_message,omitempty"`
}

// NewFileStateResult creates a result record for the given request target
func NewFileStateResult(path string, content string) *FileStateResult {
	return &FileStateResult{
		Protocol:  FileStateResultProtocol,
		TimeStamp: time.Now().UTC(),
		Path:      path,
		Content:   content,
	}
}

// FileStat is a point in time snapshot of a file on the system
type FileStat struct {
	Protocol  string    `json:"protocol" yaml:"protocol"`
	TimeStamp time.Time `json:"timestamp" yaml:"timestamp"`
	Path      string    `json:"path" yaml:"path"`
	Exists    bool      `json:"exists" yaml:"exists"`
	Owner     string    `json:"owner,omitempty" yaml:"owner,omitempty"`
	Group     string    `json:"group,omitempty" yaml:"group,omitempty"`
	Mode      string    `json:"mode,omitempty" yaml:"mode,omitempty"`
	Checksum  string    `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	Size      int64     `json:"size,omitempty" yaml:"size,omitempty"`
	MTime     time.Time `json:"mtime,omitempty" yaml:"mtime,omitempty"`
	Provider  string    `json:"provider,omitempty" yaml:"provider,omitempty"`
}

// NewFileStat creates a file state snapshot for the given path
func NewFileStat(path string, provider string) *FileStat {
	return &FileStat{
		Protocol:  FileStatProtocol,
		TimeStamp: time.Now().UTC(),
		Path:      path,
		Provider:  provider,
	}
}
