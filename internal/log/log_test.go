// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"trace", log.DebugLevel},
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"bogus", log.ErrorLevel},
		{"", log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestCustomHandler_HandleLog(t *testing.T) {
	var buf bytes.Buffer
	logger := &log.Logger{Handler: NewHandler(&buf), Level: log.DebugLevel}

	logger.WithError(errors.New("boom")).WithField("task", "arn:a").Error("start failed")

	out := buf.String()
	assert.Contains(t, out, " E start failed")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "task=arn:a")
}

func TestCustomHandler_Trace(t *testing.T) {
	var buf bytes.Buffer
	logger := &log.Logger{Handler: NewHandler(&buf), Level: log.DebugLevel}

	logger.Debug("TRACE: deep")

	assert.Contains(t, buf.String(), " T deep")
}

func TestInitLogger_Default(t *testing.T) {
	t.Setenv("DSCTL_LOG", "")

	InitLogger("info")
	assert.Equal(t, log.InfoLevel, log.Log.(*log.Logger).Level)

	t.Setenv("DSCTL_LOG", "debug")
	InitLogger("info")
	assert.Equal(t, log.DebugLevel, log.Log.(*log.Logger).Level)
}
