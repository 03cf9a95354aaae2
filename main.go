package main

import (
	"context"
	"time"

	"datalogger-go/platform"
	"datalogger-go/services/capture"
	"datalogger-go/services/config"
	"datalogger-go/services/control"
	"datalogger-go/services/logger"
	"datalogger-go/x/spscring"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	set, err := platform.New()
	if err != nil {
		println("platform:", err.Error())
		return
	}

	cfg, err := config.Load(platform.DeviceName)
	if err != nil {
		println("config:", err.Error(), "- using defaults")
		cfg = config.Defaults()
	}

	ring := spscring.New[byte](cfg.RingLen)
	toggle := control.New(set.Clock, cfg.DebounceTicks)
	svc := logger.New(logger.Config{
		LogFile:           cfg.LogFile,
		BlockLen:          cfg.BlockLen,
		StatusPeriodTicks: cfg.StatusPeriodTicks,
		PollInterval:      time.Duration(cfg.PollIntervalMs) * time.Millisecond,
	}, set.Storage, set.Display, set.Clock, ring, toggle)
	sampler := capture.New(set.Sensor, ring, svc)

	if err := platform.RegisterButton(toggle.OnEdge); err != nil {
		println("button:", err.Error())
	}
	stop := platform.StartSampleTimer(cfg.SamplePeriodMs, sampler.Sample)
	defer stop()

	if err := svc.Run(context.Background()); err != nil {
		println("logger:", err.Error())
	}
}
