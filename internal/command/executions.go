// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"sort"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/datasync"
	dstypes "github.com/aws/aws-sdk-go-v2/service/datasync/types"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/dsctl/internal/cacheutil"
	"github.com/tfctl/dsctl/internal/log"
	"github.com/tfctl/dsctl/internal/meta"
	"github.com/tfctl/dsctl/internal/output"
	"github.com/tfctl/dsctl/internal/trigger"
)

var executionsColumns = []output.Column{
	{Key: "task", Title: "TASK"},
	{Key: "execution", Title: "EXECUTION"},
	{Key: "status", Title: "STATUS"},
	{Key: "started", Title: "STARTED", Transform: output.HumanTime},
}

// executionsCommandAction lists the most recent executions of each task. Tasks
// come from the positional arguments, or the task source flags when none are
// given.
func executionsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	limit := cmd.Int("limit")
	if err := FlagValidators(limit, PositiveValidator); err != nil {
		return fmt.Errorf("invalid value %v for flag --limit: %w", limit, err)
	}

	taskArns := cmd.Args().Slice()
	if len(taskArns) == 0 {
		cfg, err := TaskSource(cmd).Resolve()
		if err != nil {
			return err
		}
		taskArns = cfg.TaskArns
	}

	client, err := newDataSyncClient(ctx, cmd)
	if err != nil {
		return err
	}

	var rows []map[string]interface{}
	for _, arn := range taskArns {
		taskRows, err := listExecutions(ctx, client, arn, int(limit))
		if err != nil {
			return err
		}
		rows = append(rows, taskRows...)
	}

	return Emit(cmd, rows, executionsColumns, "-started")
}

// listExecutions returns the newest limit executions of a task. The service
// lists executions in no promised order, so every page is read and sorted by
// start time. Executions that have not started yet count as newest.
func listExecutions(ctx context.Context, client DataSyncAPI, taskArn string, limit int) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}

	pager := datasync.NewListTaskExecutionsPaginator(client, &datasync.ListTaskExecutionsInput{
		TaskArn:    awsv2.String(taskArn),
		MaxResults: awsv2.Int32(100),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, &trigger.TaskFailure{TaskArn: taskArn, Err: err}
		}

		for _, e := range page.TaskExecutions {
			row := map[string]interface{}{
				"task":      taskArn,
				"execution": awsv2.ToString(e.TaskExecutionArn),
				"status":    string(e.Status),
			}

			if started, ok := executionStart(ctx, client, e); ok {
				row["started"] = started
			}

			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, aok := rows[i]["started"].(time.Time)
		b, bok := rows[j]["started"].(time.Time)
		if aok != bok {
			return !aok
		}
		return a.After(b)
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	log.Debugf("executions listed: task=%s count=%d", taskArn, len(rows))

	return rows, nil
}

// executionDetail is the cached part of a finished execution.
type executionDetail struct {
	Started time.Time `json:"started"`
}

var executionCacheDir = []string{"executions"}

// executionStart returns when an execution started. Finished executions never
// change, so their details are cached.
func executionStart(ctx context.Context, client DataSyncAPI, e dstypes.TaskExecutionListEntry) (time.Time, bool) {
	arn := awsv2.ToString(e.TaskExecutionArn)
	finished := e.Status == dstypes.TaskExecutionStatusSuccess || e.Status == dstypes.TaskExecutionStatusError

	var detail executionDetail
	if finished && cacheutil.Load(executionCacheDir, arn, &detail) {
		return detail.Started, true
	}

	desc, err := client.DescribeTaskExecution(ctx, &datasync.DescribeTaskExecutionInput{
		TaskExecutionArn: e.TaskExecutionArn,
	})
	if err != nil {
		log.Warnf("describe failed: execution=%s err=%v", arn, err)
		return time.Time{}, false
	}
	if desc.StartTime == nil {
		return time.Time{}, false
	}

	detail.Started = *desc.StartTime
	if finished {
		if err := cacheutil.Store(executionCacheDir, arn, detail); err != nil {
			log.Warnf("cache write failed: execution=%s err=%v", arn, err)
		}
	}
	return detail.Started, true
}

func executionsCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "executions",
		Usage:     "list recent executions of the configured tasks",
		UsageText: "dsctl executions [TASK_ARN...] [options]",
		Flags: append(NewTaskSourceFlags(configParams(meta, "executions")...),
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "most recent executions to show per task",
				Value:   5,
			},
		),
		Action: executionsCommandAction,
		Meta:   meta,
	}
	return b.Build()
}
