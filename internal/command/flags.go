// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/dsctl/internal/trigger"
)

// NewGlobalFlags returns the output flags every subcommand carries.
func NewGlobalFlags() (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json or yaml)",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewAWSFlags returns the flags that select the AWS account, region and
// endpoint. params, if given, are the namespace and config file path used as
// fallback sources.
func NewAWSFlags(params ...string) []cli.Flag {
	flags := []*cli.StringFlag{
		{
			Name:  "profile",
			Usage: "shared config profile to use",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("DSCTL_PROFILE"),
				cli.EnvVar("AWS_PROFILE"),
			),
		},
		{
			Name:    "region",
			Aliases: []string{"r"},
			Usage:   "AWS region to use",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("DSCTL_REGION"),
				cli.EnvVar("AWS_REGION"),
				cli.EnvVar("AWS_DEFAULT_REGION"),
			),
		},
		{
			Name:  "endpoint",
			Usage: "base endpoint for every AWS client, e.g. a local simulator",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("DSCTL_ENDPOINT"),
			),
		},
	}

	out := make([]cli.Flag, 0, len(flags))
	for _, flag := range flags {
		if len(params) == 2 {
			flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
		}
		out = append(out, flag)
	}
	return out
}

// NewTaskSourceFlags returns the flags that locate a task list. With none of
// them set the TASKS variable is used.
func NewTaskSourceFlags(params ...string) []cli.Flag {
	outputs := &cli.StringFlag{
		Name:  "outputs",
		Usage: "cdk outputs file holding the " + trigger.EnvTasks + " document",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("DSCTL_OUTPUTS"),
		),
	}
	stack := &cli.StringFlag{
		Name:  "stack",
		Usage: "stack to read from the outputs file. Defaults to the first one",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("DSCTL_STACK"),
		),
	}

	if len(params) == 2 {
		outputs = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], outputs)
		stack = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], stack)
	}

	return []cli.Flag{
		&cli.StringFlag{
			Name:  "tasks",
			Usage: `task list as {"arns": [...]}. Overrides --outputs`,
		},
		outputs,
		stack,
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	if ns != "" {
		src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
		flag.Sources.Chain = append(flag.Sources.Chain, src)
	}

	src := yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
