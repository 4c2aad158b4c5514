// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Status  string    `json:"status"`
	Started time.Time `json:"started"`
}

func useTempCache(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvDir, dir)
	t.Setenv(EnvEnabled, "")
	return dir
}

func TestDir(t *testing.T) {
	dir := useTempCache(t)

	got, ok := Dir()

	assert.True(t, ok)
	assert.Equal(t, dir, got)

	t.Setenv(EnvDir, "")
	if got, ok := Dir(); ok {
		assert.Equal(t, "dsctl", filepath.Base(got))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(EnvEnabled, tt.value)
			assert.Equal(t, tt.want, Enabled())
		})
	}
}

func TestEnsureBaseDir(t *testing.T) {
	dir := filepath.Join(useTempCache(t), "nested")
	t.Setenv(EnvDir, dir)

	got, ok, err := EnsureBaseDir()

	require.NoError(t, err)
	assert.True(t, ok)
	assert.DirExists(t, got)

	t.Setenv(EnvEnabled, "0")
	_, ok, err = EnsureBaseDir()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreLoad(t *testing.T) {
	useTempCache(t)
	want := entry{Status: "SUCCESS", Started: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}

	require.NoError(t, Store([]string{"executions"}, "arn:e1", want))

	var got entry
	require.True(t, Load([]string{"executions"}, "arn:e1", &got))
	assert.Equal(t, want, got)

	assert.False(t, Load([]string{"executions"}, "arn:e2", &got))
	assert.False(t, Load([]string{"other"}, "arn:e1", &got))
}

func TestLoad_Corrupt(t *testing.T) {
	useTempCache(t)
	p, ok := entryPath(nil, "k")
	require.True(t, ok)
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o600))

	var got entry
	assert.False(t, Load(nil, "k", &got))
}

func TestStore_Disabled(t *testing.T) {
	dir := useTempCache(t)
	t.Setenv(EnvEnabled, "false")

	require.NoError(t, Store([]string{"executions"}, "k", entry{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.False(t, Load([]string{"executions"}, "k", &entry{}))
}

func TestPurge(t *testing.T) {
	useTempCache(t)
	require.NoError(t, Store([]string{"a"}, "old", entry{}))
	require.NoError(t, Store([]string{"a", "b"}, "new", entry{}))

	oldPath, _ := entryPath([]string{"a"}, "old")
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, past, past))

	require.NoError(t, Purge(0))
	assert.FileExists(t, oldPath)

	require.NoError(t, Purge(24*time.Hour))

	assert.NoFileExists(t, oldPath)
	assert.True(t, Load([]string{"a", "b"}, "new", &entry{}))
}

func TestEncodeKey(t *testing.T) {
	assert.Equal(t, encodeKey("x"), encodeKey("x"))
	assert.NotEqual(t, encodeKey("x"), encodeKey("y"))
	assert.Len(t, encodeKey("anything"), 64)
}
