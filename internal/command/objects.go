// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/dsctl/internal/log"
	"github.com/tfctl/dsctl/internal/meta"
	"github.com/tfctl/dsctl/internal/output"
	"github.com/tfctl/dsctl/internal/taskref"
)

var objectsColumns = []output.Column{
	{Key: "key", Title: "KEY"},
	{Key: "size", Title: "SIZE", Transform: output.HumanBytes},
	{Key: "modified", Title: "MODIFIED", Transform: output.HumanTime},
}

// sourceBucket returns --bucket, or the source bucket output of the stack.
func sourceBucket(cmd *cli.Command) (string, error) {
	if b := cmd.String("bucket"); b != "" {
		return b, nil
	}
	if path := cmd.String("outputs"); path != "" {
		return taskref.OutputValue(path, cmd.String("stack"), taskref.OutputSourceBucket)
	}
	return "", errors.New("no bucket given: use --bucket or --outputs")
}

// objectsCommandAction lists the objects waiting in the source bucket.
func objectsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	bucket, err := sourceBucket(cmd)
	if err != nil {
		return err
	}

	client, err := newS3Client(ctx, cmd)
	if err != nil {
		return err
	}

	input := &s3.ListObjectsV2Input{Bucket: awsv2.String(bucket)}
	if p := cmd.String("prefix"); p != "" {
		input.Prefix = awsv2.String(p)
	}

	var rows []map[string]interface{}
	pager := s3.NewListObjectsV2Paginator(client, input)
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list s3://%s: %w", bucket, err)
		}
		for _, o := range page.Contents {
			rows = append(rows, map[string]interface{}{
				"key":      awsv2.ToString(o.Key),
				"size":     awsv2.ToInt64(o.Size),
				"modified": awsv2.ToTime(o.LastModified),
			})
		}
	}
	log.Debugf("objects listed: bucket=%s count=%d", bucket, len(rows))

	return Emit(cmd, rows, objectsColumns, "key")
}

func objectsCommandBuilder(meta meta.Meta) *cli.Command {
	params := configParams(meta, "objects")

	bucket := &cli.StringFlag{
		Name:    "bucket",
		Aliases: []string{"b"},
		Usage:   "bucket to list. Overrides --outputs",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("DSCTL_BUCKET"),
		),
	}
	if len(params) == 2 {
		bucket = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], bucket)
	}

	// Only --outputs and --stack apply here.
	source := NewTaskSourceFlags(params...)[1:]

	b := CommandBuilder{
		Name:      "objects",
		Usage:     "list objects in the source bucket",
		UsageText: "dsctl objects [--bucket NAME | --outputs FILE [--stack NAME]] [--prefix P] [options]",
		Flags: append(append(source, bucket),
			&cli.StringFlag{
				Name:    "prefix",
				Aliases: []string{"p"},
				Usage:   "only list keys starting with prefix",
			},
		),
		Action: objectsCommandAction,
		Meta:   meta,
	}
	return b.Build()
}
