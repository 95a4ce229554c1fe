// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package fileresource

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/khurmatov/filestate/internal/registry"
	"github.com/khurmatov/filestate/model"
	"github.com/khurmatov/filestate/resources/file/posix"
)

type Type struct {
	req      *model.FileStateRequest
	mgr      model.Manager
	log      model.Logger
	provider model.Provider

	mu sync.Mutex
}

var _ FileProvider = (*posix.Provider)(nil)

// New creates a new file state ensurer for the given request
func New(ctx context.Context, mgr model.Manager, req model.FileStateRequest) (*Type, error) {
	err := req.Validate()
	if err != nil {
		return nil, fmt.Errorf("%s#%s: %w: %w", model.FileTypeName, req.Path, model.ErrRequestInvalid, err)
	}

	logger, err := mgr.Logger("type", model.FileTypeName, "name", req.Path)
	if err != nil {
		return nil, err
	}

	t := &Type{
		req: &req,
		mgr: mgr,
		log: logger,
	}

	t.log.Debug("Created resource instance")

	return t, nil
}

// Apply converges the target file to the requested state and records the
// outcome in the session, apply errors are reported on the event rather than
// returned so a run always produces an event
func (t *Type) Apply(ctx context.Context) (*model.TransactionEvent, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	event := model.NewTransactionEvent(model.FileTypeName, t.req.Path)
	start := time.Now()

	result, err := t.ensure(ctx)
	event.Duration = time.Since(start)
	if err != nil {
		event.Failed = true
		event.Error = err.Error()
	}

	if result != nil {
		event.Result = result
		event.Changed = result.Changed
		event.Noop = result.Noop
		event.NoopMessage = result.NoopMessage
	}
	event.Provider = t.providerUnlocked()

	err = t.mgr.RecordEvent(event)
	if err != nil {
		t.log.Warn("Could not record transaction event", "error", err)
	}

	return event, nil
}

func (t *Type) ensure(ctx context.Context) (*model.FileStateResult, error) {
	err := t.selectProviderUnlocked(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.stringUnlocked(), err)
	}

	var (
		p      = t.provider.(FileProvider)
		req    = t.req
		noop   = t.mgr.NoopMode()
		result = model.NewFileStateResult(req.Path, req.Content)
	)

	stat, err := p.Stat(ctx, req.Path)
	if err != nil {
		return result, fmt.Errorf("%w: could not inspect %q: %w", model.ErrIOFailure, req.Path, err)
	}

	if !req.Force && stat.Exists {
		return result, fmt.Errorf("%w: file %q already exists and force is disabled", model.ErrPreconditionFailed, req.Path)
	}

	var current []byte
	if stat.Exists {
		current, err = p.ReadFile(ctx, req.Path)
		if err != nil {
			return result, fmt.Errorf("%w: could not read existing file %q: %w", model.ErrIOFailure, req.Path, err)
		}
	}

	contentChanged := !stat.Exists || string(current) != req.Content

	if (noop || req.ShowDiff) && stat.Exists {
		result.Diff = &model.FileDiff{Before: string(current), After: req.Content}
	}

	if noop {
		result.Noop = true
		result.Changed = contentChanged
		switch {
		case !stat.Exists:
			t.log.Info("Skipping create as noop")
			result.NoopMessage = "Would have created the file"
		case contentChanged:
			t.log.Info("Skipping content replacement as noop")
			result.NoopMessage = "Would have replaced the file contents"
		}

		return result, nil
	}

	if !contentChanged {
		attrChanged, err := p.SetAttributes(ctx, req.Path, req.Owner, req.Group, req.Mode)
		if err != nil {
			return result, err
		}
		result.Changed = attrChanged

		return result, nil
	}

	if req.Backup && stat.Exists {
		backupPath, err := p.Backup(ctx, req.Path)
		if err != nil {
			// deliberately non fatal, matching host semantics where a failed
			// backup only warns while a failed read aborts the run
			t.log.Warn("Could not create backup, proceeding without one", "error", err)
		} else {
			result.BackupPath = backupPath
		}
	}

	if stat.Exists {
		t.log.Info("Replacing file contents")
	} else {
		t.log.Info("Creating file")
	}

	err = p.WriteFile(ctx, req.Path, []byte(req.Content), t.effectiveMode(stat))
	if err != nil {
		t.log.Error("Could not store new file", "error", err)
		return result, fmt.Errorf("%w: could not write file %q: %w", model.ErrIOFailure, req.Path, err)
	}
	result.Changed = true

	_, err = p.SetAttributes(ctx, req.Path, req.Owner, req.Group, req.Mode)
	if err != nil {
		return result, err
	}

	return result, nil
}

// effectiveMode picks the permission bits for a write, the requested mode wins,
// existing files keep their mode and new files get 0644
func (t *Type) effectiveMode(stat *model.FileStat) string {
	switch {
	case t.req.Mode != "":
		return t.req.Mode
	case stat.Exists && stat.Mode != "":
		return stat.Mode
	default:
		return "0644"
	}
}

// Info returns the current state of the target file
func (t *Type) Info(ctx context.Context) (*model.FileStat, error) {
	err := t.selectProvider(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.String(), err)
	}

	return t.provider.(FileProvider).Stat(ctx, t.req.Path)
}

func (t *Type) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stringUnlocked()
}

func (t *Type) stringUnlocked() string {
	return fmt.Sprintf("%s#%s", model.FileTypeName, t.req.Path)
}

func (t *Type) Type() string {
	return model.FileTypeName
}

func (t *Type) Name() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.req.Path
}

func (t *Type) providerUnlocked() string {
	if t.provider == nil {
		return ""
	}

	return t.provider.Name()
}

func (t *Type) Provider() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.providerUnlocked()
}

func (t *Type) Request() *model.FileStateRequest {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.req
}

func (t *Type) selectProviderUnlocked(ctx context.Context) error {
	if t.provider != nil {
		return nil
	}

	facts, err := t.mgr.Facts(ctx)
	if err != nil {
		return err
	}

	selected, err := registry.FindSuitableProvider(model.FileTypeName, t.req.Provider, facts, t.log)
	if err != nil {
		return err
	}

	if selected == nil {
		return model.ErrNoSuitableProvider
	}

	t.log.Debug("Selected provider", "provider", selected.Name())
	t.provider = selected

	return nil
}

func (t *Type) selectProvider(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.selectProviderUnlocked(ctx)
}
