// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
)

var (
	ErrRequestInvalid        = errors.New("invalid request")
	ErrRequestPathRequired   = errors.New("path is required")
	ErrPreconditionFailed    = errors.New("precondition failed")
	ErrIOFailure             = errors.New("io failure")
	ErrProviderNotFound      = errors.New("provider not found")
	ErrProviderNotManageable = errors.New("provider is not manageable")
	ErrNoSuitableProvider    = errors.New("no suitable provider found")
	ErrDuplicateProvider     = errors.New("provider already exists")
)
