// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	// FileTypeName is the type name for the file state resource
	FileTypeName = "file"

	// FileStateRequestProtocol is the protocol identifier for desired state requests
	FileStateRequestProtocol = "io.filestate.v1.request"
)

// FileStateRequest describes the desired state of a single file. Owner, Group
// and Mode are optional, the zero value means leave unchanged.
type FileStateRequest struct {
	Path     string `json:"path" yaml:"path"`
	Content  string `json:"content" yaml:"content"`
	Owner    string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Group    string `json:"group,omitempty" yaml:"group,omitempty"`
	Mode     string `json:"mode,omitempty" yaml:"mode,omitempty"`
	Force    bool   `json:"force" yaml:"force"`
	Backup   bool   `json:"backup,omitempty" yaml:"backup,omitempty"`
	ShowDiff bool   `json:"diff,omitempty" yaml:"diff,omitempty"`
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
}

// NewFileStateRequest creates a request with host defaults applied
func NewFileStateRequest(path string, content string) *FileStateRequest {
	return &FileStateRequest{
		Path:    path,
		Content: content,
		Force:   true,
	}
}

// NewFileStateRequestFromYaml creates a request from a yaml or json document,
// defaults are applied before parsing so absent keys keep their default value
func NewFileStateRequestFromYaml(raw yaml.RawMessage) (*FileStateRequest, error) {
	req := NewFileStateRequest("", "")

	err := yaml.Unmarshal(raw, req)
	if err != nil {
		return nil, err
	}

	return req, nil
}

// Validate validates the file state request
func (r *FileStateRequest) Validate() error {
	if r.Path == "" {
		return ErrRequestPathRequired
	}

	if filepath.Clean(r.Path) != r.Path || !filepath.IsAbs(r.Path) {
		return fmt.Errorf("file path must be absolute")
	}

	if r.Mode != "" {
		err := validateMode(r.Mode)
		if err != nil {
			return err
		}
	}

	return nil
}

// ToYamlManifest returns the request as a yaml document
func (r *FileStateRequest) ToYamlManifest() (yaml.RawMessage, error) {
	return yaml.Marshal(r)
}

func validateMode(mode string) error {
	stripped := strings.TrimPrefix(mode, "0o")
	stripped = strings.TrimPrefix(stripped, "0O")

	parsed, err := strconv.ParseUint(stripped, 8, 32)
	if err != nil {
		return fmt.Errorf("mode %q is not a valid octal number: %w", mode, err)
	}

	if parsed > 0o777 {
		return fmt.Errorf("mode %q exceeds maximum value 0777", mode)
	}

	return nil
}

// ParseMode parses an octal mode string like "0644" or "0o644" into permission bits
func ParseMode(mode string) (uint32, error) {
	err := validateMode(mode)
	if err != nil {
		return 0, err
	}

	stripped := strings.TrimPrefix(mode, "0o")
	stripped = strings.TrimPrefix(stripped, "0O")

	parsed, _ := strconv.ParseUint(stripped, 8, 32)

	return uint32(parsed), nil
}
