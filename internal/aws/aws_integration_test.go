// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

//go:build integration
// +build integration

package aws

import (
	"context"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/datasync"
	"github.com/stretchr/testify/require"
)

// TestIntegration_DataSyncListTasks verifies that the loaded config can reach
// DataSync with real credentials. Set AWS_REGION and the usual credential
// variables, or DSCTL_ENDPOINT for a simulator.
func TestIntegration_DataSyncListTasks(t *testing.T) {
	ctx := context.Background()

	var opts []Option
	if ep := os.Getenv("DSCTL_ENDPOINT"); ep != "" {
		opts = append(opts, WithEndpoint(ep))
	}
	cfg, err := LoadAWSConfig(ctx, opts...)
	require.NoError(t, err)

	_, err = NewDataSync(cfg).ListTasks(ctx, &datasync.ListTasksInput{})
	require.NoError(t, err)
}
