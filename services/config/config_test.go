// config/config_test.go
package config

import "testing"

func TestLoad_DecodesOverDefaults(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) {
		if device != "pico" {
			return nil, false
		}
		return []byte(`{
			"log_file": "run7.log",
			"ring_len": 8192,
			"sample_period_ms": 4,
			"unrelated": {"ignored": true}
		}`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	cfg, err := Load("pico")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogFile != "run7.log" {
		t.Fatalf("LogFile = %q", cfg.LogFile)
	}
	if cfg.RingLen != 8192 {
		t.Fatalf("RingLen = %d", cfg.RingLen)
	}
	if cfg.SamplePeriodMs != 4 {
		t.Fatalf("SamplePeriodMs = %d", cfg.SamplePeriodMs)
	}
	// Absent keys keep their defaults.
	if cfg.BlockLen != 512 || cfg.DebounceTicks != 250 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_NoConfigFound(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) { return nil, false }
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	if _, err := Load("unknown-device"); err == nil {
		t.Fatal("expected error for missing embedded config, got nil")
	}
}

func TestLoad_RejectsNonPowerOfTwoRing(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(string) ([]byte, bool) {
		return []byte(`{"ring_len": 3000}`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	if _, err := Load("pico"); err == nil {
		t.Fatal("expected error for non power-of-two ring size, got nil")
	}
}

func TestLoad_RejectsBlockLargerThanRing(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(string) ([]byte, bool) {
		return []byte(`{"ring_len": 512, "block_len": 1024}`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	if _, err := Load("pico"); err == nil {
		t.Fatal("expected error for block_len > ring_len, got nil")
	}
}

func TestLoad_EmbeddedDeviceConfigsDecode(t *testing.T) {
	for device := range embeddedConfigs {
		if _, err := Load(device); err != nil {
			t.Fatalf("embedded config for %q does not decode: %v", device, err)
		}
	}
}
