// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/dsctl/internal/log"
	"github.com/tfctl/dsctl/internal/meta"
	"github.com/tfctl/dsctl/internal/output"
	"github.com/tfctl/dsctl/internal/trigger"
)

var startColumns = []output.Column{
	{Key: "task", Title: "TASK"},
	{Key: "execution", Title: "EXECUTION"},
}

// startCommandAction starts one execution of every task in the resolved task
// list, the same way the trigger function does. Executions that did start are
// still rendered when others fail.
func startCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	cfg, err := TaskSource(cmd).Resolve()
	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		rows := make([]map[string]interface{}, 0, len(cfg.TaskArns))
		for _, arn := range cfg.TaskArns {
			rows = append(rows, map[string]interface{}{"task": arn})
		}
		return Emit(cmd, rows, startColumns[:1], "")
	}

	client, err := newDataSyncClient(ctx, cmd)
	if err != nil {
		return err
	}

	executions, dispatchErr := trigger.NewDispatcher(client).Dispatch(ctx, cfg.TaskArns)

	rows := make([]map[string]interface{}, 0, len(executions))
	for _, e := range executions {
		rows = append(rows, map[string]interface{}{
			"task":      e.TaskArn,
			"execution": e.ExecutionArn,
		})
	}
	if err := Emit(cmd, rows, startColumns, ""); err != nil {
		return err
	}

	return dispatchErr
}

func startCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "start",
		Usage:     "start an execution of every configured task",
		UsageText: `dsctl start [--tasks '{"arns":[...]}' | --outputs FILE [--stack NAME]] [options]`,
		Flags: append(NewTaskSourceFlags(configParams(meta, "start")...),
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "list the tasks that would be started",
			},
		),
		Action: startCommandAction,
		Meta:   meta,
	}
	return b.Build()
}
