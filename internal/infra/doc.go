// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package infra declares the pipeline as a CDK construct tree: the network,
// the S3 source and EFS destination, one DataSync task per private subnet,
// the trigger function with its event source, and an optional bastion for
// looking at the file system. Nothing here runs at sync time; cmd/infra
// synthesizes it into a CloudFormation template.
package infra
