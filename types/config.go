package types

// Config is the per-device logger configuration resolved by the config
// service from embedded JSON.
type Config struct {
	LogFile           string // file created on the storage medium
	BlockLen          int    // storage sector size in bytes
	RingLen           int    // SD ring buffer capacity, power of two
	SamplePeriodMs    int    // sampling timer period
	DebounceTicks     uint32 // minimum ticks between accepted button edges
	StatusPeriodTicks uint32 // ticks between display status refreshes
	PollIntervalMs    int    // idle wake period of the writer loop
}
