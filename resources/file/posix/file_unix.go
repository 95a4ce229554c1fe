// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package posix

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"syscall"
)

// fileOwnership resolves the owner and group names for a file, falling back to
// numeric ids when no matching passwd or group entry exists
func fileOwnership(nfo os.FileInfo) (string, string, error) {
	st, ok := nfo.Sys().(*syscall.Stat_t)
	if !ok {
		return "", "", fmt.Errorf("could not access underlying stat data")
	}

	owner := strconv.FormatUint(uint64(st.Uid), 10)
	u, err := user.LookupId(owner)
	if err == nil {
		owner = u.Username
	}

	group := strconv.FormatUint(uint64(st.Gid), 10)
	g, err := user.LookupGroupId(group)
	if err == nil {
		group = g.Name
	}

	return owner, group, nil
}

// fileOwnerIds returns the numeric uid and gid owning a file
func fileOwnerIds(nfo os.FileInfo) (int, int, error) {
	st, ok := nfo.Sys().(*syscall.Stat_t)
	if !ok {
		return -1, -1, fmt.Errorf("could not access underlying stat data")
	}

	return int(st.Uid), int(st.Gid), nil
}
