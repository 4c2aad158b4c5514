// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for dsctl's YAML
// configuration. The file is found through DSCTL_CFG_FILE or, failing that,
// as dsctl.yaml in the user's configuration directory:
//   - Linux: $XDG_CONFIG_HOME/dsctl.yaml or $HOME/.config/dsctl.yaml
//   - macOS: $HOME/Library/Application Support/dsctl.yaml
//   - Windows: %AppData%/dsctl.yaml
//
// The same file feeds CLI flag defaults and the stack settings read by the
// CDK app.
package config
