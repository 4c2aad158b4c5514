// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/service/datasync"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOptions verifies that each Option populates its field.
func TestOptions(t *testing.T) {
	tests := []struct {
		name  string
		opt   Option
		check func(t *testing.T, o options)
	}{
		{
			name:  "profile",
			opt:   WithProfile("my-profile"),
			check: func(t *testing.T, o options) { assert.Equal(t, "my-profile", o.profile) },
		},
		{
			name:  "region",
			opt:   WithRegion("eu-west-1"),
			check: func(t *testing.T, o options) { assert.Equal(t, "eu-west-1", o.region) },
		},
		{
			name:  "endpoint",
			opt:   WithEndpoint("http://localhost:4566"),
			check: func(t *testing.T, o options) { assert.Equal(t, "http://localhost:4566", o.endpoint) },
		},
		{
			name: "retryer",
			opt:  WithRetryer(func() awsv2.Retryer { return retry.NewStandard() }),
			check: func(t *testing.T, o options) {
				require.NotNil(t, o.retryer)
				assert.NotNil(t, o.retryer())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o options
			tt.opt(&o)
			tt.check(t, o)
		})
	}
}

// TestLoadAWSConfig_WithRegion verifies that region option is applied
// during config loading.
func TestLoadAWSConfig_WithRegion(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-west-2"))

	require.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)
}

// TestLoadAWSConfig_OptionsOrder verifies that later options override
// earlier ones.
func TestLoadAWSConfig_OptionsOrder(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-east-1"), WithRegion("eu-west-1"))

	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)
}

// TestLoadAWSConfig_WithEndpoint verifies the base endpoint reaches the
// resulting config.
func TestLoadAWSConfig_WithEndpoint(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(),
		WithRegion("us-east-1"),
		WithEndpoint("http://localhost:4566"))

	require.NoError(t, err)
	require.NotNil(t, cfg.BaseEndpoint)
	assert.Equal(t, "http://localhost:4566", *cfg.BaseEndpoint)
}

// TestNewClients verifies both clients build from a loaded config.
func TestNewClients(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-east-1"))
	require.NoError(t, err)

	assert.IsType(t, &datasync.Client{}, NewDataSync(cfg))
	assert.IsType(t, &s3v2.Client{}, NewS3(cfg, WithS3PathStyle()))
}

// TestWithS3PathStyle verifies the option flips path-style addressing.
func TestWithS3PathStyle(t *testing.T) {
	var o s3v2.Options
	WithS3PathStyle()(&o)
	assert.True(t, o.UsePathStyle)
}
