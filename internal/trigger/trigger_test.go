// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"

	apexlog "github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/datasync"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/dsctl/internal/log"
)

// fakeDataSync records every start request and fails the ones listed in
// errs.
type fakeDataSync struct {
	mu    sync.Mutex
	calls []string
	errs  map[string]error
}

func (f *fakeDataSync) StartTaskExecution(_ context.Context, in *datasync.StartTaskExecutionInput,
	_ ...func(*datasync.Options)) (*datasync.StartTaskExecutionOutput, error) {
	arn := awsv2.ToString(in.TaskArn)

	f.mu.Lock()
	f.calls = append(f.calls, arn)
	f.mu.Unlock()

	if err := f.errs[arn]; err != nil {
		return nil, err
	}
	return &datasync.StartTaskExecutionOutput{
		TaskExecutionArn: awsv2.String(arn + "/execution/exec-1"),
	}, nil
}

func (f *fakeDataSync) sortedCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string{}, f.calls...)
	sort.Strings(out)
	return out
}

func accessDenied() error {
	return &smithy.GenericAPIError{
		Code:    "AccessDeniedException",
		Message: "not authorized to perform datasync:StartTaskExecution",
	}
}

// captureLog routes the global logger into a buffer for the test's duration.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	apexlog.SetHandler(log.NewHandler(&buf))
	apexlog.SetLevel(apexlog.DebugLevel)
	t.Cleanup(func() { apexlog.SetHandler(log.NewHandler(nil)) })
	return &buf
}

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{name: "two arns", raw: `{"arns":["arn:a","arn:b"]}`, want: []string{"arn:a", "arn:b"}},
		{name: "empty list", raw: `{"arns":[]}`, want: []string{}},
		{name: "extra keys ignored", raw: `{"arns":["arn:a"],"v":1}`, want: []string{"arn:a"}},
		{name: "blank", raw: "  ", wantErr: true},
		{name: "not json", raw: "arn:a,arn:b", wantErr: true},
		{name: "missing arns", raw: `{}`, wantErr: true},
		{name: "null arns", raw: `{"arns":null}`, wantErr: true},
		{name: "arns not a list", raw: `{"arns":"arn:a"}`, wantErr: true},
		{name: "non-string element", raw: `{"arns":[1]}`, wantErr: true},
		{name: "empty element", raw: `{"arns":["arn:a",""]}`, wantErr: true},
		{name: "top-level list", raw: `["arn:a"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig(tt.raw)
			if tt.wantErr {
				var pe *ParseError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, EnvTasks, pe.Source)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.TaskArns)
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(env(nil))
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestConfig_EncodeRoundTrip(t *testing.T) {
	raw, err := Config{}.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"arns":[]}`, raw)

	raw, err = Config{TaskArns: []string{"arn:a", "arn:b"}}.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"arns":["arn:a","arn:b"]}`, raw)
}

func TestDispatch_OneCallPerTask(t *testing.T) {
	captureLog(t)

	arns := []string{"arn:1", "arn:2", "arn:3", "arn:4", "arn:5", "arn:6", "arn:7", "arn:8"}
	fake := &fakeDataSync{}

	executions, err := NewDispatcher(fake).Dispatch(context.Background(), arns)

	require.NoError(t, err)
	assert.Equal(t, arns, fake.sortedCalls())
	require.Len(t, executions, len(arns))
	for i, e := range executions {
		assert.Equal(t, arns[i], e.TaskArn)
		assert.Equal(t, arns[i]+"/execution/exec-1", e.ExecutionArn)
	}
}

func TestDispatch_Empty(t *testing.T) {
	fake := &fakeDataSync{}

	executions, err := NewDispatcher(fake).Dispatch(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, executions)
	assert.Empty(t, fake.calls)
}

func TestDispatch_PartialFailure(t *testing.T) {
	captureLog(t)

	boom := errors.New("service unavailable")
	fake := &fakeDataSync{errs: map[string]error{"arn:b": boom}}

	executions, err := NewDispatcher(fake).Dispatch(context.Background(), []string{"arn:a", "arn:b", "arn:c"})

	var de *DispatchError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 3, de.Total)
	require.Len(t, de.Failed, 1)
	assert.Equal(t, "arn:b", de.First.TaskArn)
	assert.ErrorIs(t, err, boom)

	// The other tasks were still started.
	assert.Equal(t, []string{"arn:a", "arn:b", "arn:c"}, fake.sortedCalls())
	require.Len(t, executions, 2)
	assert.Equal(t, "arn:a", executions[0].TaskArn)
	assert.Equal(t, "arn:c", executions[1].TaskArn)
}

func TestDispatch_AllFail(t *testing.T) {
	captureLog(t)

	fake := &fakeDataSync{errs: map[string]error{
		"arn:a": errors.New("a failed"),
		"arn:b": errors.New("b failed"),
	}}

	_, err := NewDispatcher(fake).Dispatch(context.Background(), []string{"arn:a", "arn:b"})

	var de *DispatchError
	require.ErrorAs(t, err, &de)
	require.Len(t, de.Failed, 2)
	assert.Equal(t, "arn:a", de.Failed[0].TaskArn)
	assert.Equal(t, "arn:b", de.Failed[1].TaskArn)
	assert.Contains(t, []string{"arn:a", "arn:b"}, de.First.TaskArn)
	assert.Contains(t, err.Error(), "2 of 2 tasks")
}

func TestHandle_TwoTasksSucceed(t *testing.T) {
	captureLog(t)

	fake := &fakeDataSync{}
	h := NewHandlerFromEnv(env(map[string]string{EnvTasks: `{"arns":["arn:a","arn:b"]}`}), fake)

	err := h.Handle(context.Background(), json.RawMessage(`{}`))

	require.NoError(t, err)
	assert.Equal(t, []string{"arn:a", "arn:b"}, fake.sortedCalls())
}

func TestHandle_AuthorizationError(t *testing.T) {
	buf := captureLog(t)

	fake := &fakeDataSync{errs: map[string]error{"arn:a": accessDenied()}}
	h := NewHandler(Config{TaskArns: []string{"arn:a"}}, fake)

	err := h.Handle(context.Background(), nil)

	require.Error(t, err)
	var ae smithy.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "AccessDeniedException", ae.ErrorCode())
	assert.Equal(t, "AccessDeniedException", ErrorCode(err))

	out := buf.String()
	assert.Contains(t, out, "start task execution failed")
	assert.Contains(t, out, "task=arn:a")
	assert.Contains(t, out, "dispatch failed")
}

func TestHandle_BadConfigIssuesNoRequests(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{name: "missing", values: nil},
		{name: "malformed", values: map[string]string{EnvTasks: `{"arns":`}},
		{name: "wrong shape", values: map[string]string{EnvTasks: `{"tasks":["arn:a"]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLog(t)

			fake := &fakeDataSync{}
			h := NewHandlerFromEnv(env(tt.values), fake)

			err := h.Handle(context.Background(), nil)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Empty(t, fake.calls)

			// Still failing on the next invocation.
			assert.Error(t, h.Handle(context.Background(), nil))
			assert.Empty(t, fake.calls)
		})
	}
}

func TestHandle_EmptyList(t *testing.T) {
	captureLog(t)

	fake := &fakeDataSync{}
	h := NewHandlerFromEnv(env(map[string]string{EnvTasks: `{"arns":[]}`}), fake)

	assert.NoError(t, h.Handle(context.Background(), nil))
	assert.Empty(t, fake.calls)
}

func TestHandle_RepeatedInvocationResends(t *testing.T) {
	captureLog(t)

	fake := &fakeDataSync{}
	h := NewHandler(Config{TaskArns: []string{"arn:a"}}, fake)

	require.NoError(t, h.Handle(context.Background(), nil))
	require.NoError(t, h.Handle(context.Background(), nil))

	assert.Equal(t, []string{"arn:a", "arn:a"}, fake.sortedCalls())
}

func TestDescribeEvent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: "empty event"},
		{
			name: "s3 put",
			raw: `{"Records":[{"eventName":"ObjectCreated:Put","s3":{"bucket":{"name":"src"},"object":{"key":"a/b.txt"}}},
				{"eventName":"ObjectRemoved:Delete","s3":{"bucket":{"name":"src"},"object":{"key":"c"}}}]}`,
			want: "s3 ObjectCreated:Put s3://src/a/b.txt (+1 more)",
		},
		{
			name: "schedule",
			raw:  `{"detail-type":"Scheduled Event","source":"aws.events","detail":{}}`,
			want: "Scheduled Event from aws.events",
		},
		{name: "unknown", raw: `{"hello":"world"}`, want: "unrecognized event"},
		{name: "garbage", raw: `[1,2`, want: "unrecognized event"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescribeEvent(json.RawMessage(tt.raw)))
		})
	}
}
