// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package posix

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"time"

	"github.com/khurmatov/filestate/internal/util"
	"github.com/khurmatov/filestate/model"
)

// Provider manages files on POSIX style file systems
type Provider struct {
	log model.Logger
}

func NewPosixProvider(log model.Logger) (*Provider, error) {
	return &Provider{log: log}, nil
}

func (p *Provider) Name() string {
	return "posix"
}

// Stat inspects the target path without modifying it, a missing file is not an
// error and yields a stat with Exists false
func (p *Provider) Stat(ctx context.Context, path string) (*model.FileStat, error) {
	stat := model.NewFileStat(path, p.Name())

	nfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return stat, nil
	} else if err != nil {
		return nil, err
	}

	if nfo.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}

	stat.Exists = true
	stat.Size = nfo.Size()
	stat.MTime = nfo.ModTime()
	stat.Mode = fmt.Sprintf("%04o", nfo.Mode().Perm())

	owner, group, err := fileOwnership(nfo)
	if err != nil {
		p.log.Warn("Could not resolve file ownership", "path", path, "error", err)
	} else {
		stat.Owner = owner
		stat.Group = group
	}

	sum, err := util.Sha256HashFile(path)
	if err != nil {
		p.log.Warn("Could not checksum file", "path", path, "error", err)
	} else {
		stat.Checksum = sum
	}

	return stat, nil
}

func (p *Provider) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes contents atomically by staging into a temporary file in the
// target directory and renaming it over the destination, missing parent
// directories are created
func (p *Provider) WriteFile(ctx context.Context, path string, contents []byte, mode string) error {
	perm, err := model.ParseMode(mode)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	tf, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tf.Name())

	err = tf.Chmod(os.FileMode(perm))
	if err != nil {
		tf.Close()
		return err
	}

	_, err = tf.Write(contents)
	if err != nil {
		tf.Close()
		return err
	}

	err = tf.Close()
	if err != nil {
		return err
	}

	return os.Rename(tf.Name(), path)
}

// Backup copies the file aside before it gets replaced, the copy keeps the
// original permission bits and is named <path>.<pid>.<timestamp>~
func (p *Provider) Backup(ctx context.Context, path string) (string, error) {
	nfo, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	backupPath := fmt.Sprintf("%s.%d.%s~", path, os.Getpid(), time.Now().Format("2006-01-02@15:04:05"))

	err = os.WriteFile(backupPath, contents, nfo.Mode().Perm())
	if err != nil {
		return "", err
	}

	p.log.Info("Created backup", "path", path, "backup", backupPath)

	return backupPath, nil
}

// SetAttributes converges ownership and permission bits, empty arguments leave
// the corresponding attribute untouched, returns true when anything changed
func (p *Provider) SetAttributes(ctx context.Context, path string, owner string, group string, mode string) (bool, error) {
	changed := false

	nfo, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	if mode != "" {
		want, err := model.ParseMode(mode)
		if err != nil {
			return changed, err
		}

		if nfo.Mode().Perm() != os.FileMode(want) {
			p.log.Info("Updating file mode", "path", path, "mode", mode)
			err = os.Chmod(path, os.FileMode(want))
			if err != nil {
				return changed, err
			}
			changed = true
		}
	}

	if owner == "" && group == "" {
		return changed, nil
	}

	// comparisons are on resolved ids so "root" and "0" describe the same
	// owner and neither triggers a spurious chown
	currentUid, currentGid, err := fileOwnerIds(nfo)
	if err != nil {
		return changed, err
	}

	uid := -1
	if owner != "" {
		want, err := lookupUid(owner)
		if err != nil {
			return changed, err
		}
		if want != currentUid {
			uid = want
		}
	}

	gid := -1
	if group != "" {
		want, err := lookupGid(group)
		if err != nil {
			return changed, err
		}
		if want != currentGid {
			gid = want
		}
	}

	if uid == -1 && gid == -1 {
		return changed, nil
	}

	p.log.Info("Updating file ownership", "path", path, "owner", owner, "group", group)
	err = os.Chown(path, uid, gid)
	if err != nil {
		return changed, err
	}

	return true, nil
}

func lookupUid(owner string) (int, error) {
	u, err := user.Lookup(owner)
	if err != nil {
		// numeric ids are accepted even without a passwd entry
		id, cerr := strconv.Atoi(owner)
		if cerr != nil {
			return -1, fmt.Errorf("could not resolve user %q: %w", owner, err)
		}
		return id, nil
	}

	return strconv.Atoi(u.Uid)
}

func lookupGid(group string) (int, error) {
	g, err := user.LookupGroup(group)
	if err != nil {
		id, cerr := strconv.Atoi(group)
		if cerr != nil {
			return -1, fmt.Errorf("could not resolve group %q: %w", group, err)
		}
		return id, nil
	}

	return strconv.Atoi(g.Gid)
}
