// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/dsctl/internal/log"
)

const (
	// EnvDir overrides the cache base directory.
	EnvDir = "DSCTL_CACHE_DIR"
	// EnvEnabled disables caching when "0" or "false".
	EnvEnabled = "DSCTL_CACHE"
)

// Dir resolves the base cache directory.
// Precedence:
//  1. DSCTL_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/dsctl
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv(EnvDir); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "dsctl"), true
	}
	return "", false
}

// Enabled returns true unless DSCTL_CACHE explicitly disables it.
func Enabled() bool {
	enabled, _ := os.LookupEnv(EnvEnabled)
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}

	base, ok := Dir()
	if !ok {
		return "", false, nil
	}

	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return base, true, nil
}

// entryPath returns where the entry for key lives beneath subdirs.
func entryPath(subdirs []string, key string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	return filepath.Join(append([]string{base}, append(subdirs, encodeKey(key))...)...), true
}

// Purge removes entries older than maxAge. A maxAge <= 0 is a no-op.
func Purge(maxAge time.Duration) error {
	if maxAge <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	err := filepath.Walk(base, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil || info.IsDir() || time.Since(info.ModTime()) <= maxAge {
			return nil
		}

		if err := os.Remove(path); err == nil {
			log.Debugf("removed cache file %s", path)
		} else {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// Load decodes the entry for key into v and reports whether it was found.
// Unreadable or corrupt entries count as misses.
func Load(subdirs []string, key string, v any) bool {
	if !Enabled() {
		return false
	}
	p, ok := entryPath(subdirs, key)
	if !ok {
		return false
	}

	b, err := os.ReadFile(p)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		log.Debugf("cache entry unreadable: key=%s err=%v", key, err)
		return false
	}

	log.Debugf("cache hit: key=%s", key)
	return true
}

// Store writes v as the entry for key beneath subdirs, creating directories
// as needed.
func Store(subdirs []string, key string, v any) error {
	if !Enabled() {
		return nil
	}
	p, ok := entryPath(subdirs, key)
	if !ok {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Debugf("cache write: key=%s", key)
	return nil
}

// encodeKey hashes key into a file name.
func encodeKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:])
}
