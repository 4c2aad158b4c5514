// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for dsctl. It wires flags,
// validators, actions, and shell completion for subcommands.
//
// Subcommands:
//   - start: start every task in a task list, like the trigger function does.
//   - tasks: list the DataSync tasks in a region.
//   - executions: list recent executions per task.
//   - objects: list objects waiting in the source bucket.
//   - completion: print a bash or zsh completion script.
//
// Flags fall back to environment variables and then to the dsctl config file,
// first under the subcommand's key and then at the top level.
package command
