// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/choria-io/fisk"
	"github.com/goccy/go-yaml"

	"github.com/khurmatov/filestate/metrics"
	"github.com/khurmatov/filestate/model"
	fileresource "github.com/khurmatov/filestate/resources/file"
)

type ensureCommand struct {
	path        string
	content     string
	contentFile string
	owner       string
	group       string
	mode        string
	force       bool
	backup      bool
	noop        bool
	diff        bool
	provider    string
	session     string
	monitorPort int
	json        bool
}

func registerEnsureCommand(app *fisk.Application) {
	cmd := &ensureCommand{}

	ens := app.Command("ensure", "Converge a file to a desired state").Action(cmd.action)
	ens.Arg("path", "Absolute path of the file to manage").Required().StringVar(&cmd.path)
	ens.Flag("content", "Desired contents of the file").PlaceHolder("STRING").StringVar(&cmd.content)
	ens.Flag("content-file", "File holding the desired contents").PlaceHolder("FILE").ExistingFileVar(&cmd.contentFile)
	ens.Flag("owner", "User that should own the file").StringVar(&cmd.owner)
	ens.Flag("group", "Group that should own the file").StringVar(&cmd.group)
	ens.Flag("mode", "File mode (octal)").PlaceHolder("0644").StringVar(&cmd.mode)
	ens.Flag("force", "Replace the file when it already exists").Default("true").BoolVar(&cmd.force)
	ens.Flag("backup", "Keep a copy of the old contents before replacing").UnNegatableBoolVar(&cmd.backup)
	ens.Flag("noop", "Report what would change without changing anything").UnNegatableBoolVar(&cmd.noop)
	ens.Flag("diff", "Include before and after contents in the result").UnNegatableBoolVar(&cmd.diff)
	ens.Flag("provider", "Force a specific provider").StringVar(&cmd.provider)
	ens.Flag("session", "Session store to use").Envar("FILESTATE_SESSION_STORE").PlaceHolder("DIRECTORY").StringVar(&cmd.session)
	ens.Flag("monitor-port", "Port to serve prometheus metrics on").PlaceHolder("PORT").IntVar(&cmd.monitorPort)
	ens.Flag("json", "Render the result as JSON").UnNegatableBoolVar(&cmd.json)
}

func (c *ensureCommand) action(_ *fisk.ParseContext) error {
	if c.content != "" && c.contentFile != "" {
		return fmt.Errorf("cannot specify both content and content-file")
	}

	content := c.content
	if c.contentFile != "" {
		cbytes, err := os.ReadFile(c.contentFile)
		if err != nil {
			return err
		}
		content = string(cbytes)
	}

	abs, err := filepath.Abs(c.path)
	if err != nil {
		return err
	}

	req := model.NewFileStateRequest(abs, content)
	req.Owner = c.owner
	req.Group = c.group
	req.Mode = c.mode
	req.Force = c.force
	req.Backup = c.backup
	req.ShowDiff = c.diff
	req.Provider = c.provider

	mgr, out, err := newManager(c.session, c.noop)
	if err != nil {
		return err
	}

	if c.monitorPort > 0 {
		metrics.RegisterMetrics()
		metrics.ListenAndServe(c.monitorPort, newLogger())
	}

	ft, err := fileresource.New(ctx, mgr, *req)
	if err != nil {
		return err
	}

	event, err := ft.Apply(ctx)
	if err != nil {
		return err
	}

	event.LogStatus(out)

	if c.diff || c.json {
		err = c.renderResult(event.Result)
		if err != nil {
			return err
		}
	}

	if event.Failed {
		return fmt.Errorf("%s", event.Error)
	}

	return nil
}

func (c *ensureCommand) renderResult(result *model.FileStateResult) error {
	if result == nil {
		return nil
	}

	var out []byte
	var err error

	if c.json {
		out, err = json.MarshalIndent(result, "", "  ")
	} else {
		out, err = yaml.Marshal(result)
	}
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}
