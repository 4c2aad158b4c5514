// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads SDK v2 configuration and builds the DataSync and S3
// clients used by the trigger function and the dsctl commands.
package aws
