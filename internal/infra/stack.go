// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package infra

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/tfctl/dsctl/internal/taskref"
)

// Output keys of the pipeline stack.
const (
	OutputTasksConfig  = taskref.OutputTasksConfig
	OutputSourceBucket = taskref.OutputSourceBucket
	OutputFileSystemID = taskref.OutputFileSystemID
)

// PipelineStackProps configures PipelineStack.
type PipelineStackProps struct {
	awscdk.StackProps
	Settings Settings
}

// PipelineStack is the whole S3 to EFS pipeline in one stack.
type PipelineStack struct {
	awscdk.Stack
	Net     *Net
	Storage *Storage
	Sync    *Sync
	Bastion *Bastion
}

// NewPipelineStack declares the stack under scope after validating the
// settings.
func NewPipelineStack(scope constructs.Construct, id string, props *PipelineStackProps) (*PipelineStack, error) {
	if err := props.Settings.Validate(); err != nil {
		return nil, err
	}
	settings := props.Settings

	stack := awscdk.NewStack(scope, &id, &props.StackProps)
	ps := &PipelineStack{Stack: stack}

	ps.Net = NewNet(stack, "Net", &NetProps{CIDR: settings.CIDR, MaxAzs: settings.MaxAzs})
	ps.Storage = NewStorage(stack, "Storage", &StorageProps{Vpc: ps.Net.Vpc})

	sync, err := NewSync(stack, "Sync", &SyncProps{
		Vpc:     ps.Net.Vpc,
		Storage: ps.Storage,
		Trigger: settings.Trigger,
		FnAsset: settings.FnAsset,
		Timeout: settings.Timeout,
	})
	if err != nil {
		return nil, err
	}
	ps.Sync = sync

	if settings.Bastion {
		ps.Bastion = NewBastion(stack, "Bastion", &BastionProps{
			Vpc:        ps.Net.Vpc,
			FileSystem: ps.Storage.FileSystem,
		})
	}

	awscdk.NewCfnOutput(stack, jsii.String(OutputTasksConfig), &awscdk.CfnOutputProps{
		Value:       sync.TasksConfig,
		Description: jsii.String("TASKS document of the trigger function"),
	})
	awscdk.NewCfnOutput(stack, jsii.String(OutputSourceBucket), &awscdk.CfnOutputProps{
		Value: ps.Storage.Bucket.BucketName(),
	})
	awscdk.NewCfnOutput(stack, jsii.String(OutputFileSystemID), &awscdk.CfnOutputProps{
		Value: ps.Storage.FileSystem.FileSystemId(),
	})

	return ps, nil
}
