// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tfctl/dsctl/internal/cacheutil"
	"github.com/tfctl/dsctl/internal/command"
	"github.com/tfctl/dsctl/internal/config"
	"github.com/tfctl/dsctl/internal/log"
	"github.com/tfctl/dsctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.String())
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// expandSet replaces the first @name argument after the subcommand with the
// arguments stored in the config file under <subcommand>.<name>. Without an
// @name argument the args are returned unchanged.
func expandSet(args []string) []string {
	if len(args) < 3 {
		return args
	}

	idx := -1
	for i, a := range args[2:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			idx = i + 2
			break
		}
	}
	if idx == -1 {
		return args
	}

	setArgs, err := config.GetStringSlice(args[1] + "." + args[idx][1:])
	if err != nil {
		log.Warnf("arg set %s not found: err=%v", args[idx], err)
	}

	expanded := make([]string, 0, len(args)+len(setArgs))
	expanded = append(expanded, args[:idx]...)
	for _, arg := range setArgs {
		expanded = append(expanded, strings.Fields(arg)...)
	}
	return append(expanded, args[idx+1:]...)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil {
		log.Debugf("cache ensure err: err=%v", err)
	} else if ok {
		hours, err := config.GetInt("cache.purge_hours", 24*7) //nolint:mnd
		if err != nil {
			log.Debugf("cache purge skipped: err=%v", err)
		} else if err := cacheutil.Purge(time.Duration(hours) * time.Hour); err != nil {
			log.Debugf("cache purge err: err=%v", err)
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)
	args = expandSet(args)
	log.Debugf("args after set processing: args=%v", args)

	return initAndRunApp(args)
}
