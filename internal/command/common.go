// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/datasync"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v3"

	awsx "github.com/tfctl/dsctl/internal/aws"
	"github.com/tfctl/dsctl/internal/filters"
	"github.com/tfctl/dsctl/internal/meta"
	"github.com/tfctl/dsctl/internal/output"
	"github.com/tfctl/dsctl/internal/taskref"
	"github.com/tfctl/dsctl/internal/trigger"
)

// DataSyncAPI is the part of the DataSync client the commands use.
type DataSyncAPI interface {
	trigger.StartTaskExecutionAPI
	datasync.ListTasksAPIClient
	datasync.ListTaskExecutionsAPIClient
	DescribeTaskExecution(ctx context.Context, params *datasync.DescribeTaskExecutionInput,
		optFns ...func(*datasync.Options)) (*datasync.DescribeTaskExecutionOutput, error)
}

// S3API is the part of the S3 client the commands use.
type S3API interface {
	s3.ListObjectsV2APIClient
}

// Client constructors, replaced in tests.
var (
	newDataSyncClient = func(ctx context.Context, cmd *cli.Command) (DataSyncAPI, error) {
		cfg, err := awsx.LoadAWSConfig(ctx, awsOptions(cmd)...)
		if err != nil {
			return nil, err
		}
		return awsx.NewDataSync(cfg), nil
	}

	newS3Client = func(ctx context.Context, cmd *cli.Command) (S3API, error) {
		cfg, err := awsx.LoadAWSConfig(ctx, awsOptions(cmd)...)
		if err != nil {
			return nil, err
		}
		if cmd.String("endpoint") != "" {
			return awsx.NewS3(cfg, awsx.WithS3PathStyle()), nil
		}
		return awsx.NewS3(cfg), nil
	}
)

func awsOptions(cmd *cli.Command) (opts []awsx.Option) {
	if v := cmd.String("profile"); v != "" {
		opts = append(opts, awsx.WithProfile(v))
	}
	if v := cmd.String("region"); v != "" {
		opts = append(opts, awsx.WithRegion(v))
	}
	if v := cmd.String("endpoint"); v != "" {
		opts = append(opts, awsx.WithEndpoint(v))
	}
	return
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// TaskSource builds a taskref.Source from the task source flags.
func TaskSource(cmd *cli.Command) taskref.Source {
	return taskref.Source{
		Tasks:   cmd.String("tasks"),
		Outputs: cmd.String("outputs"),
		Stack:   cmd.String("stack"),
		Lookup:  os.LookupEnv,
	}
}

// Emit filters rows and renders them to the app's writer per the global
// output flags. A sort flag, when set, replaces defaultSort.
func Emit(cmd *cli.Command, rows []map[string]interface{}, cols []output.Column, defaultSort string) error {
	opts := output.Options{
		Format: cmd.String("output"),
		Titles: cmd.Bool("titles"),
		Color:  cmd.Bool("color") && output.ColorAllowed(os.Stdout),
		Sort:   defaultSort,
	}
	if s := cmd.String("sort"); s != "" {
		opts.Sort = s
	}

	rows = filters.FilterDataset(rows, cmd.String("filter"))

	return output.Render(cmd.Root().Writer, rows, cols, opts)
}
