// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package infra

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsefs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// Access point ownership. Files land on EFS owned by this uid/gid regardless
// of who wrote them to S3.
const (
	apPath        = "/data"
	apUID         = "1000"
	apGID         = "1000"
	apPermissions = "755"
)

// StorageProps configures Storage.
type StorageProps struct {
	Vpc awsec2.IVpc
}

// Storage is the sync source bucket and the destination file system with the
// access point DataSync writes through.
type Storage struct {
	constructs.Construct
	Bucket      awss3.Bucket
	FileSystem  awsefs.FileSystem
	AccessPoint awsefs.AccessPoint
}

// NewStorage declares the bucket, file system and access point under scope.
func NewStorage(scope constructs.Construct, id string, props *StorageProps) *Storage {
	this := constructs.NewConstruct(scope, &id)

	bucket := awss3.NewBucket(this, jsii.String("Src"), &awss3.BucketProps{
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
		Encryption:        awss3.BucketEncryption_S3_MANAGED,
		EnforceSSL:        jsii.Bool(true),
	})

	fs := awsefs.NewFileSystem(this, jsii.String("Dst"), &awsefs.FileSystemProps{
		Vpc:           props.Vpc,
		Encrypted:     jsii.Bool(true),
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
	})

	ap := fs.AddAccessPoint(jsii.String("Ap"), &awsefs.AccessPointOptions{
		Path: jsii.String(apPath),
		CreateAcl: &awsefs.Acl{
			OwnerUid:    jsii.String(apUID),
			OwnerGid:    jsii.String(apGID),
			Permissions: jsii.String(apPermissions),
		},
		PosixUser: &awsefs.PosixUser{
			Uid: jsii.String(apUID),
			Gid: jsii.String(apGID),
		},
	})

	return &Storage{Construct: this, Bucket: bucket, FileSystem: fs, AccessPoint: ap}
}
