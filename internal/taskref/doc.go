// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package taskref finds the task list dsctl operates on: a literal document,
// a CDK outputs file, or the same TASKS variable the trigger function reads.
package taskref
