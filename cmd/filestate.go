// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/choria-io/fisk"
)

var (
	ctx     context.Context
	debug   bool
	info    bool
	Version = "development"
)

func main() {
	app := fisk.New("filestate", "Idempotent file state management")
	app.Version(Version)
	app.Author("https://github.com/khurmatov/filestate")

	app.Flag("debug", "Enable debug logging").UnNegatableBoolVar(&debug)
	app.Flag("info", "Enable info logging").UnNegatableBoolVar(&info)

	registerEnsureCommand(app)
	registerStatusCommand(app)
	registerModuleCommand(app)
	registerSessionCommand(app)

	ctx, _ = signal.NotifyContext(context.Background(), os.Interrupt)

	app.MustParseWithUsage(os.Args[1:])
}
