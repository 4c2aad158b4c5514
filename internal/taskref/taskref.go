// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package taskref

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/tfctl/dsctl/internal/log"
	"github.com/tfctl/dsctl/internal/trigger"
)

// Keys of the pipeline stack outputs, as written by
// `cdk deploy --outputs-file`.
const (
	OutputTasksConfig  = "TasksConfig"
	OutputSourceBucket = "SourceBucket"
	OutputFileSystemID = "FileSystemId"
)

// ErrNoSource is returned when none of the task list sources is set.
var ErrNoSource = errors.New("no task list given: use --tasks, --outputs or the TASKS variable")

// Source holds the places a task list may come from, in priority order.
type Source struct {
	// Tasks is a literal {"arns": [...]} document.
	Tasks string
	// Outputs is the path of a `cdk deploy --outputs-file` document.
	Outputs string
	// Stack selects the stack inside Outputs. Empty means the first stack.
	Stack string
	// Lookup reads the environment, usually os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Resolve returns the task list from the first source that is set.
func (s Source) Resolve() (trigger.Config, error) {
	switch {
	case s.Tasks != "":
		log.Debugf("task list from flag")
		return trigger.ParseConfig(s.Tasks)
	case s.Outputs != "":
		log.Debugf("task list from outputs file: path=%s stack=%s", s.Outputs, s.Stack)
		raw, err := OutputValue(s.Outputs, s.Stack, OutputTasksConfig)
		if err != nil {
			return trigger.Config{}, err
		}
		return trigger.ParseConfig(raw)
	}

	if s.Lookup != nil {
		if raw, ok := s.Lookup(trigger.EnvTasks); ok {
			log.Debugf("task list from %s", trigger.EnvTasks)
			return trigger.ParseConfig(raw)
		}
	}

	return trigger.Config{}, ErrNoSource
}

// OutputValue reads one stack output from a CDK outputs file, which maps stack
// names to {outputKey: value}. An empty stack picks the first stack listed.
func OutputValue(path, stack, key string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read outputs file: %w", err)
	}
	return outputValue(data, stack, key)
}

func outputValue(data []byte, stack, key string) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", errors.New("outputs file is not valid JSON")
	}

	query := stack + "." + key
	if stack == "" {
		query = "*." + key
	}

	res := gjson.GetBytes(data, query)
	if !res.Exists() {
		return "", fmt.Errorf("output %q not found", query)
	}
	if res.Type != gjson.String {
		return "", fmt.Errorf("output %q is not a string", query)
	}

	return res.String(), nil
}
