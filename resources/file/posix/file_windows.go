// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package posix

import (
	"fmt"
	"os"
)

func fileOwnership(nfo os.FileInfo) (string, string, error) {
	return "", "", fmt.Errorf("file ownership is not supported on this platform")
}

func fileOwnerIds(nfo os.FileInfo) (int, int, error) {
	return -1, -1, fmt.Errorf("file ownership is not supported on this platform")
}
