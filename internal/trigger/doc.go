// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package trigger starts every configured DataSync task when invoked by a
// schedule tick or an S3 object notification. The task list is fixed at
// deploy time and arrives through the TASKS environment variable as
// {"arns": [...]}. All start requests are issued concurrently and the
// invocation fails if any one of them fails; retries are left to the caller.
package trigger
