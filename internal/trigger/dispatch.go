// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package trigger

import (
	"context"
	"errors"

	apexlog "github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/datasync"
	"golang.org/x/sync/errgroup"

	"github.com/tfctl/dsctl/internal/log"
)

// StartTaskExecutionAPI is the slice of the DataSync client the dispatcher
// needs. *datasync.Client satisfies it.
type StartTaskExecutionAPI interface {
	StartTaskExecution(ctx context.Context, params *datasync.StartTaskExecutionInput,
		optFns ...func(*datasync.Options)) (*datasync.StartTaskExecutionOutput, error)
}

// Execution pairs a task with the execution the service started for it.
type Execution struct {
	TaskArn      string `json:"task"`
	ExecutionArn string `json:"execution"`
}

// Dispatcher issues start requests for a set of tasks.
type Dispatcher struct {
	client StartTaskExecutionAPI
}

// NewDispatcher returns a Dispatcher that sends requests through client.
func NewDispatcher(client StartTaskExecutionAPI) *Dispatcher {
	return &Dispatcher{client: client}
}

// Dispatch starts one execution per task ARN, all concurrently, and waits for
// every request to finish. Siblings are not cancelled when one fails. The
// returned executions are in taskArns order and only include successful
// starts. If any request failed the error is a *DispatchError.
func (d *Dispatcher) Dispatch(ctx context.Context, taskArns []string) ([]Execution, error) {
	if len(taskArns) == 0 {
		log.Debugf("no tasks configured, nothing to start")
		return nil, nil
	}

	started := make([]Execution, len(taskArns))
	failed := make([]*TaskFailure, len(taskArns))

	var g errgroup.Group
	for i, arn := range taskArns {
		g.Go(func() error {
			out, err := d.client.StartTaskExecution(ctx, &datasync.StartTaskExecutionInput{
				TaskArn: awsv2.String(arn),
			})
			if err != nil {
				failed[i] = &TaskFailure{TaskArn: arn, Err: err}
				log.WithError(err).WithFields(apexlog.Fields{
					"task": arn,
					"code": ErrorCode(err),
				}).Error("start task execution failed")
				return failed[i]
			}

			started[i] = Execution{TaskArn: arn, ExecutionArn: awsv2.ToString(out.TaskExecutionArn)}
			log.Debugf("execution started: task=%s execution=%s", arn, started[i].ExecutionArn)
			return nil
		})
	}

	err := g.Wait()

	var executions []Execution
	var failures []*TaskFailure
	for i := range taskArns {
		if failed[i] != nil {
			failures = append(failures, failed[i])
			continue
		}
		executions = append(executions, started[i])
	}

	if err == nil {
		return executions, nil
	}

	var first *TaskFailure
	if !errors.As(err, &first) {
		first = failures[0]
	}
	return executions, &DispatchError{Total: len(taskArns), First: first, Failed: failures}
}
