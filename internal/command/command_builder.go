// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/dsctl/internal/config"
	"github.com/tfctl/dsctl/internal/meta"
)

// CommandBuilder constructs a cli.Command for an AWS-facing subcommand using a
// consistent pattern. It wires metadata, appends the AWS and output flags
// (with config file fallbacks when a config file was loaded) and sets up the
// validators.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	params := configParams(cb.Meta, cb.Name)

	flags := append([]cli.Flag{}, cb.Flags...)
	flags = append(flags, NewAWSFlags(params...)...)
	flags = append(flags, NewGlobalFlags()...)

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			config.Config.Namespace = cb.Name
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: cb.Action,
	}
}

// configParams returns the namespace and config file for flag fallbacks, or
// nothing when no config file was loaded.
func configParams(m meta.Meta, ns string) []string {
	if m.Config.Source == "" {
		return nil
	}
	return []string{ns, m.Config.Source}
}
