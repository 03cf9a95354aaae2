package config

import (
	"errors"

	"datalogger-go/types"

	"github.com/andreyvit/tinyjson"
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// Defaults is the config used when a key is absent from the embedded JSON.
// The values match the original board firmware.
func Defaults() types.Config {
	return types.Config{
		LogFile:           "data.log",
		BlockLen:          512,
		RingLen:           4096,
		SamplePeriodMs:    10,
		DebounceTicks:     250,
		StatusPeriodTicks: 333,
		PollIntervalMs:    5,
	}
}

// Load resolves the embedded config for a device and decodes it over the
// defaults. Unknown keys are ignored so configs can carry fields for other
// firmware revisions.
func Load(device string) (types.Config, error) {
	cfg := Defaults()

	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return cfg, errors.New("no embedded config for device: " + device)
	}

	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()

	m, ok := val.(map[string]any)
	if !ok {
		return cfg, errors.New("embedded config is not a JSON object")
	}

	if v, ok := m["log_file"].(string); ok && v != "" {
		cfg.LogFile = v
	}
	intKey(m, "block_len", &cfg.BlockLen)
	intKey(m, "ring_len", &cfg.RingLen)
	intKey(m, "sample_period_ms", &cfg.SamplePeriodMs)
	uintKey(m, "debounce_ticks", &cfg.DebounceTicks)
	uintKey(m, "status_period_ticks", &cfg.StatusPeriodTicks)
	intKey(m, "poll_interval_ms", &cfg.PollIntervalMs)

	if cfg.RingLen&(cfg.RingLen-1) != 0 || cfg.RingLen < 2 {
		return cfg, errors.New("ring_len must be a power of two >= 2")
	}
	if cfg.BlockLen <= 0 || cfg.BlockLen > cfg.RingLen {
		return cfg, errors.New("block_len must be positive and no larger than ring_len")
	}
	return cfg, nil
}

// tinyjson surfaces every JSON number as float64.

func intKey(m map[string]any, key string, dst *int) {
	if f, ok := m[key].(float64); ok {
		*dst = int(f)
	}
}

func uintKey(m map[string]any, key string, dst *uint32) {
	if f, ok := m[key].(float64); ok {
		*dst = uint32(f)
	}
}
