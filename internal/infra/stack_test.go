// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/dsctl/internal/trigger"
)

// fnAsset creates a directory that looks like a built trigger.
func fnAsset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bootstrap"), []byte("#!/bin/sh\n"), 0o755))
	return dir
}

func synth(t *testing.T, mutate func(*Settings)) assertions.Template {
	t.Helper()

	s := DefaultSettings()
	s.FnAsset = fnAsset(t)
	mutate(&s)

	app := awscdk.NewApp(nil)
	ps, err := NewPipelineStack(app, "Test", &PipelineStackProps{Settings: s})
	require.NoError(t, err)

	return assertions.Template_FromStack(ps.Stack, nil)
}

func TestPipelineStack_OneTaskPerPrivateSubnet(t *testing.T) {
	template := synth(t, func(*Settings) {})

	template.ResourceCountIs(jsii.String("AWS::EC2::VPC"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::DataSync::LocationS3"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::DataSync::LocationEFS"), jsii.Number(2))
	template.ResourceCountIs(jsii.String("AWS::DataSync::Task"), jsii.Number(2))
	template.ResourceCountIs(jsii.String("AWS::EFS::AccessPoint"), jsii.Number(1))
}

func TestPipelineStack_DestinationLocations(t *testing.T) {
	template := synth(t, func(*Settings) {})

	template.HasResourceProperties(jsii.String("AWS::DataSync::LocationEFS"), map[string]interface{}{
		"InTransitEncryption": "TLS1_2",
		"Ec2Config": map[string]interface{}{
			"SubnetArn":         assertions.Match_AnyValue(),
			"SecurityGroupArns": assertions.Match_AnyValue(),
		},
		"AccessPointArn":          assertions.Match_AnyValue(),
		"FileSystemAccessRoleArn": assertions.Match_AnyValue(),
	})

	template.HasResourceProperties(jsii.String("AWS::EFS::AccessPoint"), map[string]interface{}{
		"PosixUser": map[string]interface{}{"Uid": "1000", "Gid": "1000"},
		"RootDirectory": map[string]interface{}{
			"Path": "/data",
		},
	})
}

func TestPipelineStack_TaskOptions(t *testing.T) {
	template := synth(t, func(*Settings) {})

	template.HasResourceProperties(jsii.String("AWS::DataSync::Task"), map[string]interface{}{
		"Options": map[string]interface{}{
			"Uid":                  "NONE",
			"Gid":                  "NONE",
			"LogLevel":             "TRANSFER",
			"PosixPermissions":     "NONE",
			"PreserveDeletedFiles": "REMOVE",
		},
		"CloudWatchLogGroupArn": assertions.Match_AnyValue(),
	})

	template.HasResourceProperties(jsii.String("AWS::Logs::LogGroup"), map[string]interface{}{
		"RetentionInDays": 7,
	})
}

func TestPipelineStack_TriggerFunction(t *testing.T) {
	template := synth(t, func(*Settings) {})

	template.ResourcePropertiesCountIs(jsii.String("AWS::Lambda::Function"), map[string]interface{}{
		"Handler": "bootstrap",
	}, jsii.Number(1))

	template.HasResourceProperties(jsii.String("AWS::Lambda::Function"), map[string]interface{}{
		"Handler": "bootstrap",
		"Runtime": "provided.al2023",
		"Timeout": 15,
		"Environment": map[string]interface{}{
			"Variables": map[string]interface{}{
				"TASKS":     assertions.Match_AnyValue(),
				"DSCTL_LOG": "info",
			},
		},
	})

	template.HasResourceProperties(jsii.String("AWS::IAM::Policy"), map[string]interface{}{
		"PolicyDocument": map[string]interface{}{
			"Statement": assertions.Match_ArrayWith(&[]interface{}{
				assertions.Match_ObjectLike(&map[string]interface{}{
					"Action": "datasync:StartTaskExecution",
					"Effect": "Allow",
				}),
			}),
		},
	})

	template.HasOutput(jsii.String(OutputTasksConfig), map[string]interface{}{
		"Value": assertions.Match_AnyValue(),
	})
}

func TestPipelineStack_S3Trigger(t *testing.T) {
	template := synth(t, func(s *Settings) { s.Trigger = Trigger{Type: TriggerS3} })

	template.ResourceCountIs(jsii.String("Custom::S3BucketNotifications"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::Events::Rule"), jsii.Number(0))
}

func TestPipelineStack_ScheduleTrigger(t *testing.T) {
	template := synth(t, func(s *Settings) { s.Trigger = Trigger{Type: TriggerSchedule, Minutes: 30} })

	template.HasResourceProperties(jsii.String("AWS::Events::Rule"), map[string]interface{}{
		"ScheduleExpression": "rate(30 minutes)",
	})
	template.ResourceCountIs(jsii.String("Custom::S3BucketNotifications"), jsii.Number(0))
}

func TestPipelineStack_Bastion(t *testing.T) {
	without := synth(t, func(*Settings) {})
	without.ResourceCountIs(jsii.String("AWS::EC2::Instance"), jsii.Number(0))

	with := synth(t, func(s *Settings) { s.Bastion = true })
	with.ResourceCountIs(jsii.String("AWS::EC2::Instance"), jsii.Number(1))
}

func TestPipelineStack_MaxAzs(t *testing.T) {
	template := synth(t, func(s *Settings) { s.MaxAzs = 1 })

	template.ResourceCountIs(jsii.String("AWS::DataSync::Task"), jsii.Number(1))
}

func TestPipelineStack_InvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{name: "bad cidr", mutate: func(s *Settings) { s.CIDR = "nope" }, wantErr: "cidr"},
		{name: "unknown trigger", mutate: func(s *Settings) { s.Trigger = Trigger{Type: "sqs"} }, wantErr: "unhandled trigger type"},
		{
			name:    "schedule without minutes",
			mutate:  func(s *Settings) { s.Trigger = Trigger{Type: TriggerSchedule} },
			wantErr: "positive minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.FnAsset = fnAsset(t)
			tt.mutate(&s)

			_, err := NewPipelineStack(awscdk.NewApp(nil), "Bad", &PipelineStackProps{Settings: s})

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestPipelineStack_UnknownTriggerIsUnhandled(t *testing.T) {
	s := DefaultSettings()
	s.FnAsset = fnAsset(t)
	s.Trigger = Trigger{Type: "sqs"}

	_, err := NewPipelineStack(awscdk.NewApp(nil), "Bad", &PipelineStackProps{Settings: s})

	assert.ErrorIs(t, err, ErrUnhandledTrigger)
}

// triggerFunctionTasks returns the TASKS value of the trigger function.
func triggerFunctionTasks(t *testing.T, template assertions.Template) interface{} {
	t.Helper()

	var found []interface{}
	for _, res := range *template.FindResources(jsii.String("AWS::Lambda::Function"), nil) {
		props, _ := (*res)["Properties"].(map[string]interface{})
		if props["Handler"] != "bootstrap" {
			continue
		}
		env := props["Environment"].(map[string]interface{})["Variables"].(map[string]interface{})
		found = append(found, env[trigger.EnvTasks])
	}
	require.Len(t, found, 1)
	return found[0]
}

// resolveJoin renders an Fn::Join, standing in "arn:<logicalId>" for every
// Fn::GetAtt of a TaskArn, and returns the logical ids it referenced.
func resolveJoin(t *testing.T, value interface{}) (string, []string) {
	t.Helper()

	join, ok := value.(map[string]interface{})["Fn::Join"].([]interface{})
	require.True(t, ok, "not an Fn::Join: %v", value)
	require.Len(t, join, 2)
	assert.Equal(t, "", join[0])

	var b strings.Builder
	var ids []string
	for _, part := range join[1].([]interface{}) {
		switch p := part.(type) {
		case string:
			b.WriteString(p)
		case map[string]interface{}:
			att, ok := p["Fn::GetAtt"].([]interface{})
			require.True(t, ok, "unexpected token %v", p)
			require.Equal(t, "TaskArn", att[1])
			id := fmt.Sprint(att[0])
			ids = append(ids, id)
			b.WriteString("arn:" + id)
		default:
			t.Fatalf("unexpected join part %T", part)
		}
	}
	return b.String(), ids
}

func TestPipelineStack_TasksConfigReferencesEveryTask(t *testing.T) {
	for _, azs := range []int{1, 2} {
		t.Run(fmt.Sprintf("%d azs", azs), func(t *testing.T) {
			template := synth(t, func(s *Settings) { s.MaxAzs = azs })

			var taskIDs []string
			for id := range *template.FindResources(jsii.String("AWS::DataSync::Task"), nil) {
				taskIDs = append(taskIDs, id)
			}
			sort.Strings(taskIDs)

			tasks := triggerFunctionTasks(t, template)
			doc, ids := resolveJoin(t, tasks)

			cfg, err := trigger.ParseConfig(doc)
			require.NoError(t, err)

			want := make([]string, 0, len(taskIDs))
			for _, id := range taskIDs {
				want = append(want, "arn:"+id)
			}
			got := append([]string{}, cfg.TaskArns...)
			sort.Strings(got)
			sort.Strings(ids)
			assert.Equal(t, want, got)
			assert.Equal(t, taskIDs, ids)

			outputs := *template.FindOutputs(jsii.String(OutputTasksConfig), nil)
			require.Len(t, outputs, 1)
			for _, out := range outputs {
				assert.Equal(t, tasks, (*out)["Value"])
			}
		})
	}
}
