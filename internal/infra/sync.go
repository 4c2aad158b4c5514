// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package infra

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdatasync"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awseventstargets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambdaeventsources"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/tfctl/dsctl/internal/trigger"
)

const dataSyncService = "datasync.amazonaws.com"

// SyncProps configures Sync.
type SyncProps struct {
	Vpc     awsec2.IVpc
	Storage *Storage
	Trigger Trigger
	// FnAsset is the directory holding the trigger's bootstrap binary.
	FnAsset string
	Timeout int
}

// Sync wires the bucket to the file system through DataSync: one S3 source
// location, one EFS destination location and task per private subnet, and the
// function that starts those tasks.
type Sync struct {
	constructs.Construct
	Tasks    []awsdatasync.CfnTask
	Function awslambda.Function
	// TasksConfig is the TASKS document handed to the function.
	TasksConfig *string
}

// NewSync declares the DataSync resources and the trigger under scope. It
// fails on a trigger it cannot wire.
func NewSync(scope constructs.Construct, id string, props *SyncProps) (*Sync, error) {
	this := constructs.NewConstruct(scope, &id)
	s := &Sync{Construct: this}

	src := s.srcLoc(props)
	dst := s.dstLocs(props)
	s.Tasks = s.tasks(src, dst)

	if err := s.wireTrigger(props); err != nil {
		return nil, err
	}

	return s, nil
}

func newDataSyncPrincipal() awsiam.ServicePrincipal {
	return awsiam.NewServicePrincipal(jsii.String(dataSyncService), nil)
}

// srcLoc declares the S3 location and the role DataSync assumes to read and
// prune the bucket.
func (s *Sync) srcLoc(props *SyncProps) awsdatasync.CfnLocationS3 {
	bucket := props.Storage.Bucket

	role := awsiam.NewRole(s.Construct, jsii.String("SrcRole"), &awsiam.RoleProps{
		AssumedBy: newDataSyncPrincipal(),
	})
	bucket.GrantDelete(role, nil)
	bucket.GrantReadWrite(role, nil)

	loc := awsdatasync.NewCfnLocationS3(s.Construct, jsii.String("SrcLoc"), &awsdatasync.CfnLocationS3Props{
		S3BucketArn: bucket.BucketArn(),
		S3Config: &awsdatasync.CfnLocationS3_S3ConfigProperty{
			BucketAccessRoleArn: role.RoleArn(),
		},
	})
	// DataSync validates the role at creation time.
	loc.Node().AddDependency(role)

	return loc
}

// dstLocs declares one EFS location per private subnet. Each location needs
// the mount targets up before DataSync can validate it.
func (s *Sync) dstLocs(props *SyncProps) []awsdatasync.CfnLocationEFS {
	fs := props.Storage.FileSystem

	role := awsiam.NewRole(s.Construct, jsii.String("DstRole"), &awsiam.RoleProps{
		AssumedBy: newDataSyncPrincipal(),
	})
	role.AddToPolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Effect:    awsiam.Effect_ALLOW,
		Actions:   jsii.Strings("elasticfilesystem:*"),
		Resources: &[]*string{fs.FileSystemArn()},
	}))

	sg := awsec2.NewSecurityGroup(s.Construct, jsii.String("DstSg"), &awsec2.SecurityGroupProps{
		Vpc: props.Vpc,
	})
	sgArn := awscdk.Arn_Format(&awscdk.ArnComponents{
		Service:      jsii.String("ec2"),
		Resource:     jsii.String("security-group"),
		ResourceName: sg.SecurityGroupId(),
	}, sg.Stack())
	fs.Connections().AllowDefaultPortFrom(sg, nil)

	var locs []awsdatasync.CfnLocationEFS
	for i, subnet := range *props.Vpc.PrivateSubnets() {
		subnetArn := awscdk.Arn_Format(&awscdk.ArnComponents{
			Service:      jsii.String("ec2"),
			Resource:     jsii.String("subnet"),
			ResourceName: subnet.SubnetId(),
		}, subnet.Stack())

		loc := awsdatasync.NewCfnLocationEFS(s.Construct, jsii.String(fmt.Sprintf("DstLoc%d", i)), &awsdatasync.CfnLocationEFSProps{
			Ec2Config: &awsdatasync.CfnLocationEFS_Ec2ConfigProperty{
				SubnetArn:         subnetArn,
				SecurityGroupArns: &[]*string{sgArn},
			},
			InTransitEncryption:     jsii.String("TLS1_2"),
			FileSystemAccessRoleArn: role.RoleArn(),
			AccessPointArn:          props.Storage.AccessPoint.AccessPointArn(),
			EfsFilesystemArn:        fs.FileSystemArn(),
		})
		loc.Node().AddDependency(fs.MountTargetsAvailable())
		locs = append(locs, loc)
	}

	return locs
}

// tasks declares one task per destination, all logging transfers to a shared
// group that DataSync is allowed to write to.
func (s *Sync) tasks(src awsdatasync.CfnLocationS3, dst []awsdatasync.CfnLocationEFS) []awsdatasync.CfnTask {
	lg := awslogs.NewLogGroup(s.Construct, jsii.String("DsLogs"), &awslogs.LogGroupProps{
		Retention:     awslogs.RetentionDays_ONE_WEEK,
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
	})
	lg.AddToResourcePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Principals: &[]awsiam.IPrincipal{newDataSyncPrincipal()},
		Effect:     awsiam.Effect_ALLOW,
		Actions:    jsii.Strings("logs:CreateLogStream", "logs:PutLogEvents"),
		Resources:  &[]*string{lg.LogGroupArn()},
	}))

	tasks := make([]awsdatasync.CfnTask, 0, len(dst))
	for i, d := range dst {
		tasks = append(tasks, awsdatasync.NewCfnTask(s.Construct, jsii.String(fmt.Sprintf("Task%d", i)), &awsdatasync.CfnTaskProps{
			CloudWatchLogGroupArn:  lg.LogGroupArn(),
			SourceLocationArn:      src.AttrLocationArn(),
			DestinationLocationArn: d.AttrLocationArn(),
			Options: &awsdatasync.CfnTask_OptionsProperty{
				Uid:                  jsii.String("NONE"),
				Gid:                  jsii.String("NONE"),
				LogLevel:             jsii.String("TRANSFER"),
				PosixPermissions:     jsii.String("NONE"),
				PreserveDeletedFiles: jsii.String("REMOVE"),
			},
		}))
	}

	return tasks
}

// wireTrigger declares the function that starts the tasks and hooks it to the
// configured event source.
func (s *Sync) wireTrigger(props *SyncProps) error {
	cfg := trigger.Config{}
	arns := make([]*string, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		cfg.TaskArns = append(cfg.TaskArns, *t.AttrTaskArn())
		arns = append(arns, t.AttrTaskArn())
	}
	// Task ARNs are still tokens here; they survive JSON encoding unchanged
	// and resolve in the template.
	tasksJSON, err := cfg.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode task list: %w", err)
	}
	s.TasksConfig = jsii.String(tasksJSON)

	fn := awslambda.NewFunction(s.Construct, jsii.String("DsFn"), &awslambda.FunctionProps{
		Runtime:      awslambda.Runtime_PROVIDED_AL2023(),
		Architecture: awslambda.Architecture_ARM_64(),
		Handler:      jsii.String("bootstrap"),
		Code:         awslambda.Code_FromAsset(jsii.String(props.FnAsset), nil),
		Timeout:      awscdk.Duration_Seconds(jsii.Number(float64(props.Timeout))),
		Environment: &map[string]*string{
			trigger.EnvTasks: s.TasksConfig,
			"DSCTL_LOG":      jsii.String("info"),
		},
	})
	fn.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Effect:    awsiam.Effect_ALLOW,
		Actions:   jsii.Strings("datasync:StartTaskExecution"),
		Resources: &arns,
	}))
	fn.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Effect:    awsiam.Effect_ALLOW,
		Actions:   jsii.Strings("ec2:DescribeNetworkInterfaces"),
		Resources: jsii.Strings("*"),
	}))
	s.Function = fn

	switch props.Trigger.Type {
	case TriggerS3:
		fn.AddEventSource(awslambdaeventsources.NewS3EventSource(props.Storage.Bucket, &awslambdaeventsources.S3EventSourceProps{
			Events: &[]awss3.EventType{
				awss3.EventType_OBJECT_CREATED,
				awss3.EventType_OBJECT_REMOVED,
			},
		}))
	case TriggerSchedule:
		if props.Trigger.Minutes < 1 {
			return fmt.Errorf("schedule trigger needs positive minutes, got %d", props.Trigger.Minutes)
		}
		awsevents.NewRule(s.Construct, jsii.String("Rule"), &awsevents.RuleProps{
			Targets:  &[]awsevents.IRuleTarget{awseventstargets.NewLambdaFunction(fn, nil)},
			Schedule: awsevents.Schedule_Rate(awscdk.Duration_Minutes(jsii.Number(float64(props.Trigger.Minutes)))),
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnhandledTrigger, props.Trigger.Type)
	}

	return nil
}
