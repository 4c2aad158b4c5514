// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package trigger

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EnvTasks is the environment variable holding the task list document.
const EnvTasks = "TASKS"

// Config is the process-wide trigger configuration. It is built once at cold
// start and never modified afterwards.
type Config struct {
	TaskArns []string
}

// document is the wire shape of the TASKS value.
type document struct {
	Arns *[]string `json:"arns"`
}

// ParseConfig decodes a {"arns": [...]} document. A missing "arns" key, a
// null list, or an empty ARN string is a ParseError. An empty list is valid.
func ParseConfig(raw string) (Config, error) {
	if strings.TrimSpace(raw) == "" {
		return Config{}, &ParseError{Source: EnvTasks, Err: ErrNoConfig}
	}

	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Config{}, &ParseError{Source: EnvTasks, Err: err}
	}

	if doc.Arns == nil {
		return Config{}, &ParseError{Source: EnvTasks, Err: fmt.Errorf("missing \"arns\" list")}
	}

	for i, arn := range *doc.Arns {
		if strings.TrimSpace(arn) == "" {
			return Config{}, &ParseError{Source: EnvTasks, Err: fmt.Errorf("arns[%d] is empty", i)}
		}
	}

	return Config{TaskArns: append([]string{}, *doc.Arns...)}, nil
}

// LoadConfig reads EnvTasks through lookup and parses it. lookup is usually
// os.LookupEnv.
func LoadConfig(lookup func(string) (string, bool)) (Config, error) {
	raw, ok := lookup(EnvTasks)
	if !ok {
		return Config{}, &ParseError{Source: EnvTasks, Err: ErrNoConfig}
	}
	return ParseConfig(raw)
}

// Encode renders the configuration in the same shape ParseConfig accepts.
func (c Config) Encode() (string, error) {
	arns := c.TaskArns
	if arns == nil {
		arns = []string{}
	}
	b, err := json.Marshal(document{Arns: &arns})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
