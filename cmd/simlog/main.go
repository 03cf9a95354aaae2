// cmd/simlog runs the logging pipeline against the simulated hardware so the
// writer state machine can be exercised interactively: toggle logging, eject
// the card, inject open failures, and watch the panel rows.
//go:build !rp2040 && !rp2350

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/shlex"

	"datalogger-go/platform"
	"datalogger-go/services/capture"
	"datalogger-go/services/config"
	"datalogger-go/services/control"
	"datalogger-go/services/logger"
	"datalogger-go/x/spscring"
)

func main() {
	set, err := platform.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "platform:", err)
		os.Exit(1)
	}
	st := set.Storage.(*platform.DirStorage)
	disp := set.Display.(*platform.SimDisplay)

	cfg, err := config.Load(platform.DeviceName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	ring := spscring.New[byte](cfg.RingLen)
	toggle := control.New(set.Clock, cfg.DebounceTicks)
	svc := logger.New(logger.Config{
		LogFile:           cfg.LogFile,
		BlockLen:          cfg.BlockLen,
		StatusPeriodTicks: cfg.StatusPeriodTicks,
		PollInterval:      time.Duration(cfg.PollIntervalMs) * time.Millisecond,
	}, st, disp, set.Clock, ring, toggle)
	sampler := capture.New(set.Sensor, ring, svc)

	_ = platform.RegisterButton(toggle.OnEdge)
	stop := platform.StartSampleTimer(cfg.SamplePeriodMs, sampler.Sample)
	defer stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	fmt.Println("log dir:", st.Dir())
	fmt.Println("commands: press | status | eject | insert | failopen N | quit")

	sc := bufio.NewScanner(os.Stdin)
	for prompt(); sc.Scan(); prompt() {
		args, err := shlex.Split(sc.Text())
		if err != nil {
			fmt.Println("parse:", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "press":
			platform.PressButton()
		case "status":
			for i, row := range disp.Rows() {
				fmt.Printf("  [%d] %s\n", i, row)
			}
			fmt.Printf("  ring: %d/%d bytes, overflowed=%t, capturing=%t\n",
				ring.Used(), ring.Cap(), ring.Overflowed(), svc.Capturing())
		case "eject":
			st.Eject()
		case "insert":
			st.Insert()
		case "failopen":
			if len(args) != 2 {
				fmt.Println("usage: failopen N")
				continue
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				fmt.Println("usage: failopen N")
				continue
			}
			st.FailOpens(n)
		case "quit", "exit":
			cancel()
			if err := <-done; err != nil && err != context.Canceled {
				fmt.Fprintln(os.Stderr, "logger:", err)
				os.Exit(1)
			}
			return
		default:
			fmt.Println("unknown command:", args[0])
		}
	}
	cancel()
	<-done
}

func prompt() { fmt.Print("> ") }
