// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/datasync"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/dsctl/internal/log"
	"github.com/tfctl/dsctl/internal/meta"
	"github.com/tfctl/dsctl/internal/output"
)

var tasksColumns = []output.Column{
	{Key: "name", Title: "NAME"},
	{Key: "status", Title: "STATUS"},
	{Key: "arn", Title: "ARN"},
}

func tasksCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	client, err := newDataSyncClient(ctx, cmd)
	if err != nil {
		return err
	}

	var rows []map[string]interface{}
	pager := datasync.NewListTasksPaginator(client, &datasync.ListTasksInput{})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		for _, t := range page.Tasks {
			rows = append(rows, map[string]interface{}{
				"name":   awsv2.ToString(t.Name),
				"status": string(t.Status),
				"arn":    awsv2.ToString(t.TaskArn),
			})
		}
	}
	log.Debugf("tasks listed: count=%d", len(rows))

	return Emit(cmd, rows, tasksColumns, "name")
}

func tasksCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "tasks",
		Usage:     "list DataSync tasks in the region",
		UsageText: "dsctl tasks [options]",
		Action:    tasksCommandAction,
		Meta:      meta,
	}
	return b.Build()
}
