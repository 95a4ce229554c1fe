// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package posix

import (
	"github.com/khurmatov/filestate/internal/registry"
	"github.com/khurmatov/filestate/model"
)

type factory struct{}

func Register() {
	registry.MustRegister(&factory{})
}

func (f *factory) Name() string {
	return "posix"
}

func (f *factory) TypeName() string {
	return model.FileTypeName
}

func (f *factory) IsManageable(facts map[string]any) (bool, error) {
	if os, ok := facts["os"].(string); ok && os == "windows" {
		return false, nil
	}

	return true, nil
}

func (f *factory) New(log model.Logger) (model.Provider, error) {
	return NewPosixProvider(log.With("provider", f.Name()))
}
