package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Populate embeddedConfigs at build time (e.g. via code generation) or
// manually during development.
// Key: device ID (what platform.New reports for the build)
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

const cfgPico = `{
  "log_file": "data.log",
  "block_len": 512,
  "ring_len": 4096,
  "sample_period_ms": 10,
  "debounce_ticks": 250,
  "status_period_ticks": 333,
  "poll_interval_ms": 5
}`

const cfgSim = `{
  "log_file": "data.log",
  "ring_len": 4096,
  "sample_period_ms": 2,
  "status_period_ticks": 100,
  "poll_interval_ms": 1
}`

var embeddedConfigs = map[string][]byte{
	"pico": []byte(cfgPico),
	"sim":  []byte(cfgSim),
}
