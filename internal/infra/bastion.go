// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package infra

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsefs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// BastionProps configures Bastion.
type BastionProps struct {
	Vpc        awsec2.IVpc
	FileSystem awsefs.IFileSystem
}

// Bastion is an SSM-reachable host with the destination file system mounted
// at /efs, for checking what DataSync wrote.
type Bastion struct {
	constructs.Construct
	Host awsec2.BastionHostLinux
}

// NewBastion declares the bastion host under scope.
func NewBastion(scope constructs.Construct, id string, props *BastionProps) *Bastion {
	this := constructs.NewConstruct(scope, &id)

	host := awsec2.NewBastionHostLinux(this, jsii.String("Bastion"), &awsec2.BastionHostLinuxProps{
		Vpc:           props.Vpc,
		RequireImdsv2: jsii.Bool(true),
		MachineImage:  awsec2.MachineImage_LatestAmazonLinux2(nil),
	})

	host.Instance().AddUserData(
		jsii.String("sudo yum install -y amazon-efs-utils"),
		jsii.String(fmt.Sprintf("mkdir /efs && mount -t efs -o tls,iam %s:/ /efs", *props.FileSystem.FileSystemId())),
	)

	props.FileSystem.Connections().AllowDefaultPortFrom(host, nil)
	host.Node().AddDependency(props.FileSystem.MountTargetsAvailable())
	host.Role().AddManagedPolicy(
		awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String("AmazonElasticFileSystemClientReadWriteAccess")))

	return &Bastion{Construct: this, Host: host}
}
