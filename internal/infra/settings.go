// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package infra

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/tfctl/dsctl/internal/config"
)

// TriggerType selects what invokes the trigger function.
type TriggerType string

const (
	// TriggerS3 fires on object created/removed notifications from the source
	// bucket.
	TriggerS3 TriggerType = "s3"
	// TriggerSchedule fires on a fixed EventBridge rate.
	TriggerSchedule TriggerType = "schedule"
)

// ErrUnhandledTrigger is returned for a trigger type the stack cannot wire.
var ErrUnhandledTrigger = errors.New("unhandled trigger type")

// Trigger configures the event source of the trigger function. Minutes is
// only used by TriggerSchedule.
type Trigger struct {
	Type    TriggerType
	Minutes int
}

// Settings are the deploy-time knobs of the pipeline stack.
type Settings struct {
	Name    string
	CIDR    string
	MaxAzs  int
	Bastion bool
	// FnAsset is a directory holding the compiled trigger as "bootstrap".
	FnAsset string
	// Timeout is the trigger function's hard deadline in seconds.
	Timeout int
	Trigger Trigger
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Name:    "DatasyncS3ToEfsStack",
		CIDR:    "10.0.0.0/24",
		MaxAzs:  2,
		FnAsset: "dist/trigger",
		Timeout: 15,
		Trigger: Trigger{Type: TriggerS3},
	}
}

// ParseTriggerType maps a config value to a TriggerType.
func ParseTriggerType(s string) (TriggerType, error) {
	switch t := TriggerType(strings.ToLower(strings.TrimSpace(s))); t {
	case TriggerS3, TriggerSchedule:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnhandledTrigger, s)
	}
}

// SettingsFromConfig overlays the "stack" section of the dsctl config on top
// of DefaultSettings.
func SettingsFromConfig() (Settings, error) {
	s := DefaultSettings()

	var err error
	if s.Name, err = config.GetString("stack.name", s.Name); err != nil {
		return s, fmt.Errorf("stack.name: %w", err)
	}
	if s.CIDR, err = config.GetString("stack.cidr", s.CIDR); err != nil {
		return s, fmt.Errorf("stack.cidr: %w", err)
	}
	if s.MaxAzs, err = config.GetInt("stack.maxAzs", s.MaxAzs); err != nil {
		return s, fmt.Errorf("stack.maxAzs: %w", err)
	}
	if s.Bastion, err = config.GetBool("stack.bastion", s.Bastion); err != nil {
		return s, fmt.Errorf("stack.bastion: %w", err)
	}
	if s.FnAsset, err = config.GetString("stack.fnAsset", s.FnAsset); err != nil {
		return s, fmt.Errorf("stack.fnAsset: %w", err)
	}
	if s.Timeout, err = config.GetInt("stack.timeout", s.Timeout); err != nil {
		return s, fmt.Errorf("stack.timeout: %w", err)
	}

	tt, err := config.GetString("stack.trigger.type", string(s.Trigger.Type))
	if err != nil {
		return s, fmt.Errorf("stack.trigger.type: %w", err)
	}
	if s.Trigger.Type, err = ParseTriggerType(tt); err != nil {
		return s, err
	}
	if s.Trigger.Minutes, err = config.GetInt("stack.trigger.minutes", s.Trigger.Minutes); err != nil {
		return s, fmt.Errorf("stack.trigger.minutes: %w", err)
	}

	return s, s.Validate()
}

// Validate reports settings that cannot produce a deployable stack.
func (s Settings) Validate() error {
	if s.Name == "" {
		return errors.New("stack name is empty")
	}
	if _, _, err := net.ParseCIDR(s.CIDR); err != nil {
		return fmt.Errorf("invalid cidr: %w", err)
	}
	if s.MaxAzs < 1 {
		return fmt.Errorf("maxAzs must be positive, got %d", s.MaxAzs)
	}
	if s.Timeout < 1 || s.Timeout > 900 {
		return fmt.Errorf("timeout must be within 1..900 seconds, got %d", s.Timeout)
	}
	if s.FnAsset == "" {
		return errors.New("fnAsset is empty")
	}

	return nil
}
