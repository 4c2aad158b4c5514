// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package infra

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// NetProps configures Net.
type NetProps struct {
	CIDR   string
	MaxAzs int
}

// Net is a VPC with one public and one private-with-egress subnet group per
// AZ and an S3 gateway endpoint, so DataSync traffic to the bucket stays off
// the NAT.
type Net struct {
	constructs.Construct
	Vpc awsec2.IVpc
}

// NewNet declares the VPC under scope.
func NewNet(scope constructs.Construct, id string, props *NetProps) *Net {
	this := constructs.NewConstruct(scope, &id)

	vpc := awsec2.NewVpc(this, jsii.String("Vpc"), &awsec2.VpcProps{
		MaxAzs:      jsii.Number(float64(props.MaxAzs)),
		IpAddresses: awsec2.IpAddresses_Cidr(jsii.String(props.CIDR)),
		SubnetConfiguration: &[]*awsec2.SubnetConfiguration{
			{
				Name:       jsii.String("public"),
				SubnetType: awsec2.SubnetType_PUBLIC,
			},
			{
				Name:       jsii.String("private"),
				SubnetType: awsec2.SubnetType_PRIVATE_WITH_EGRESS,
			},
		},
		GatewayEndpoints: &map[string]*awsec2.GatewayVpcEndpointOptions{
			"s3": {Service: awsec2.GatewayVpcEndpointAwsService_S3()},
		},
	})

	return &Net{Construct: this, Vpc: vpc}
}
