// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package trigger

import (
	"context"
	"encoding/json"

	apexlog "github.com/apex/log"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/tfctl/dsctl/internal/log"
)

// Handler is the Lambda entrypoint. It holds the configuration parsed at cold
// start, or the error that parsing produced.
type Handler struct {
	cfg        Config
	cfgErr     error
	dispatcher *Dispatcher
}

// NewHandler returns a Handler for an already parsed configuration.
func NewHandler(cfg Config, client StartTaskExecutionAPI) *Handler {
	return &Handler{cfg: cfg, dispatcher: NewDispatcher(client)}
}

// NewHandlerFromEnv parses EnvTasks once through lookup. A parse failure does
// not prevent construction; every invocation then fails with the ParseError
// before any request is issued.
func NewHandlerFromEnv(lookup func(string) (string, bool), client StartTaskExecutionAPI) *Handler {
	cfg, err := LoadConfig(lookup)
	h := NewHandler(cfg, client)
	h.cfgErr = err
	return h
}

// Config returns the configuration the handler dispatches.
func (h *Handler) Config() Config {
	return h.cfg
}

// Handle starts every configured task. The event is only inspected for
// logging. Any error is logged and returned so the platform can retry.
func (h *Handler) Handle(ctx context.Context, event json.RawMessage) error {
	fields := apexlog.Fields{"tasks": len(h.cfg.TaskArns)}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		fields["request"] = lc.AwsRequestID
	}
	log.WithFields(fields).Infof("invoked by %s", DescribeEvent(event))

	if h.cfgErr != nil {
		log.WithError(h.cfgErr).Error("task list unusable")
		return h.cfgErr
	}

	executions, err := h.dispatcher.Dispatch(ctx, h.cfg.TaskArns)
	if err != nil {
		log.WithError(err).WithFields(fields).Error("dispatch failed")
		return err
	}

	log.WithFields(fields).Infof("started %d task executions", len(executions))
	return nil
}
