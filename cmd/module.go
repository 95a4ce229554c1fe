// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/choria-io/fisk"
	"github.com/goccy/go-yaml"

	iu "github.com/khurmatov/filestate/internal/util"
	"github.com/khurmatov/filestate/manager"
	"github.com/khurmatov/filestate/model"
	fileresource "github.com/khurmatov/filestate/resources/file"
)

type moduleCommand struct {
	argsFile string
	session  string
}

func registerModuleCommand(app *fisk.Application) {
	cmd := &moduleCommand{}

	mod := app.Command("module", "Run as a host managed plugin reading arguments from a file").Action(cmd.action)
	mod.Arg("args", "File holding the request arguments as JSON or YAML").Required().ExistingFileVar(&cmd.argsFile)
	defaultSession := ""
	if xdg.StateHome != "" {
		defaultSession = filepath.Join(xdg.StateHome, "filestate", "module")
	}
	mod.Flag("session", "Session store to use").Envar("FILESTATE_SESSION_STORE").Default(defaultSession).PlaceHolder("DIRECTORY").StringVar(&cmd.session)
}

func (c *moduleCommand) action(_ *fisk.ParseContext) error {
	event, err := c.run()
	if err != nil {
		return c.fail(err)
	}

	if event.Failed {
		return c.fail(fmt.Errorf("%s", event.Error))
	}

	out, err := json.Marshal(event.Result)
	if err != nil {
		return c.fail(err)
	}

	fmt.Println(string(out))

	return nil
}

func (c *moduleCommand) run() (*model.TransactionEvent, error) {
	raw, err := os.ReadFile(c.argsFile)
	if err != nil {
		return nil, err
	}

	var doc any
	err = yaml.Unmarshal(raw, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrRequestInvalid, err)
	}

	err = model.ValidateRequestDocument(doc)
	if err != nil {
		return nil, err
	}

	req, err := model.NewFileStateRequestFromYaml(raw)
	if err != nil {
		return nil, err
	}

	var opts []manager.Option
	if c.session != "" {
		opts = append(opts, manager.WithSessionDirectory(c.session))
	}

	args, _ := doc.(map[string]any)
	if check, ok := args["check"].(bool); ok && check {
		opts = append(opts, manager.WithNoop())
	}

	logger := newModuleLogger()
	mgr, err := manager.NewManager(logger, logger, opts...)
	if err != nil {
		return nil, err
	}

	if c.session != "" && !iu.IsDirectory(c.session) {
		err = mgr.Session().StartSession()
		if err != nil {
			return nil, err
		}
	}

	ft, err := fileresource.New(ctx, mgr, *req)
	if err != nil {
		return nil, err
	}

	return ft.Apply(ctx)
}

// fail emits the machine readable failure record on stdout, the returned error
// still makes the process exit non zero for the host
func (c *moduleCommand) fail(err error) error {
	out, merr := json.Marshal(map[string]any{"failed": true, "msg": err.Error()})
	if merr == nil {
		fmt.Println(string(out))
	}

	return err
}
