// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package trigger

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// ErrNoConfig reports that the task list is absent.
var ErrNoConfig = errors.New("task list not configured")

// ParseError is returned when the task list configuration is missing or
// malformed. It is detected before any request is issued.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s configuration: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TaskFailure is a single rejected start request.
type TaskFailure struct {
	TaskArn string
	Err     error
}

func (e *TaskFailure) Error() string {
	return fmt.Sprintf("%s: %v", e.TaskArn, e.Err)
}

func (e *TaskFailure) Unwrap() error {
	return e.Err
}

// DispatchError is returned when at least one start request failed. First is
// the earliest failure observed; Failed lists every failure in configuration
// order.
type DispatchError struct {
	Total  int
	First  *TaskFailure
	Failed []*TaskFailure
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("start task execution failed for %d of %d tasks: %v",
		len(e.Failed), e.Total, e.First)
}

func (e *DispatchError) Unwrap() error {
	return e.First
}

// ErrorCode returns the service error code carried by err, or "" when err is
// not an API error.
func ErrorCode(err error) string {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return ae.ErrorCode()
	}
	return ""
}
