// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/dsctl/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration and the context the app was started with.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
}

// Namespace returns the config namespace of the invoked subcommand, or "" when
// no subcommand was given.
func (m Meta) Namespace() string {
	return m.Config.Namespace
}
