// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/choria-io/fisk"
	"github.com/goccy/go-yaml"

	"github.com/khurmatov/filestate/model"
	fileresource "github.com/khurmatov/filestate/resources/file"
)

type statusCommand struct {
	path string
	json bool
}

func registerStatusCommand(app *fisk.Application) {
	cmd := &statusCommand{}

	status := app.Command("status", "Inspect the current state of a file").Action(cmd.action)
	status.Arg("path", "File to inspect").Required().StringVar(&cmd.path)
	status.Flag("json", "Render the state as JSON").UnNegatableBoolVar(&cmd.json)
}

func (c *statusCommand) action(_ *fisk.ParseContext) error {
	mgr, _, err := newManager("", true)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(c.path)
	if err != nil {
		return err
	}

	ft, err := fileresource.New(ctx, mgr, *model.NewFileStateRequest(abs, ""))
	if err != nil {
		return err
	}

	nfo, err := ft.Info(ctx)
	if err != nil {
		return err
	}

	if nfo == nil {
		return errors.New("no file state retrieved")
	}

	var out []byte
	if c.json {
		out, err = json.MarshalIndent(nfo, "", "  ")
	} else {
		out, err = yaml.Marshal(nfo)
	}
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}
