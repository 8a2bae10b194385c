package config

import (
	"os"
	"strings"

	"github.com/odvcencio/trellis/pkg/errors"
	"gopkg.in/yaml.v3"
)

// loadAndMerge loads a YAML file and merges it into the config.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigLoad, "reading config").WithContext("path", path)
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Booleans are only taken when the
// key is present so a file cannot reset a default by omission.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	if strings.TrimSpace(override.Backend.Kind) != "" {
		base.Backend.Kind = strings.ToLower(strings.TrimSpace(override.Backend.Kind))
	}
	if fieldSet(raw, "backend", "width") {
		base.Backend.Width = override.Backend.Width
	}
	if fieldSet(raw, "backend", "height") {
		base.Backend.Height = override.Backend.Height
	}

	if fieldSet(raw, "render", "cull") {
		base.Render.Cull = override.Render.Cull
	}
	if fieldSet(raw, "render", "tick_rate") {
		base.Render.TickRate = override.Render.TickRate
	}

	if fieldSet(raw, "input", "synthesize_key_release") {
		base.Input.SynthesizeKeyRelease = override.Input.SynthesizeKeyRelease
	}
	if fieldSet(raw, "input", "deliver_keys_when_inactive") {
		base.Input.DeliverKeysWhenInactive = override.Input.DeliverKeysWhenInactive
	}

	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}
	if override.Log.File != "" {
		base.Log.File = override.Log.File
	}

	if override.Metrics.Addr != "" {
		base.Metrics.Addr = override.Metrics.Addr
	}

	if fieldSet(raw, "trace", "enabled") {
		base.Trace.Enabled = override.Trace.Enabled
	}
	if override.Trace.File != "" {
		base.Trace.File = override.Trace.File
	}
}

func fieldSet(raw map[string]any, path ...string) bool {
	if len(path) == 0 || raw == nil {
		return false
	}
	current := any(raw)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		val, ok := m[key]
		if !ok {
			return false
		}
		current = val
	}
	return true
}
