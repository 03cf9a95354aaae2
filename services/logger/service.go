// services/logger/service.go
// Package logger drains the sample ring buffer into sector-aligned writes on
// the storage medium and owns the log file open/close lifecycle. Run is the
// cooperative main loop of the firmware; the interrupt-context producer only
// ever observes the session through the Capturing gate.
package logger

import (
	"context"
	"time"

	"datalogger-go/errcode"
	"datalogger-go/hal"
	"datalogger-go/services/control"
	"datalogger-go/x/mathx"
	"datalogger-go/x/spscring"
	"datalogger-go/x/strx"
)

// Panel layout, matching the original board.
const (
	rowDebug  = 0 // transient diagnostics ("Open fail", "Buffer overflow", ...)
	rowState  = 1 // "Logging: ON" / "Logging: OFF"
	rowBuffer = 2 // ring occupancy
	rowFile   = 3 // log file size
	rowSpace  = 4 // card free space
)

type Config struct {
	LogFile           string
	BlockLen          int           // storage sector size
	StatusPeriodTicks uint32        // display refresh gate
	PollInterval      time.Duration // idle wake period of the loop

	MediaRetry RetryPolicy
	MountRetry RetryPolicy
	OpenRetry  RetryPolicy
	CloseRetry RetryPolicy
}

func (c *Config) applyDefaults() {
	c.LogFile = strx.Coalesce(c.LogFile, "data.log")
	if c.BlockLen <= 0 {
		c.BlockLen = 512
	}
	if c.StatusPeriodTicks == 0 {
		c.StatusPeriodTicks = 333
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Millisecond
	}
	if c.MediaRetry == nil {
		c.MediaRetry = FixedDelay{Wait: 250 * time.Millisecond}
	}
	if c.MountRetry == nil {
		c.MountRetry = FixedDelay{Wait: 100 * time.Millisecond}
	}
	if c.OpenRetry == nil {
		c.OpenRetry = FixedDelay{Wait: 500 * time.Millisecond}
	}
	if c.CloseRetry == nil {
		c.CloseRetry = FixedDelay{Wait: 100 * time.Millisecond}
	}
}

type Service struct {
	cfg  Config
	st   hal.Storage
	disp hal.Display
	clk  hal.Clock
	ring *spscring.Ring[byte]
	ctl  *control.Toggle

	session Session

	file       hal.File
	blockBuf   []byte
	line       []byte // status row scratch
	lastStatus uint32
}

func New(cfg Config, st hal.Storage, disp hal.Display, clk hal.Clock,
	ring *spscring.Ring[byte], ctl *control.Toggle) *Service {
	cfg.applyDefaults()
	return &Service{
		cfg:      cfg,
		st:       st,
		disp:     disp,
		clk:      clk,
		ring:     ring,
		ctl:      ctl,
		blockBuf: make([]byte, cfg.BlockLen),
		line:     make([]byte, 0, 24),
	}
}

// Session exposes the capture gate to the interrupt-context producer.
func (s *Service) Session() *Session { return &s.session }

// Capturing implements capture.Gate: records are produced only while logging
// is enabled and the log file is open. This stops production during open
// retries and during the final drain, like the original timer gating did.
func (s *Service) Capturing() bool {
	return s.session.fileOpen.Load() && s.ctl.Enabled()
}

// Run waits for the medium, mounts it, then services the writer state
// machine until ctx is cancelled. A cancellation with an open file performs
// the full drain/sync/close sequence before returning.
func (s *Service) Run(ctx context.Context) error {
	s.ring.Reset()

	if err := s.waitForMedia(ctx); err != nil {
		return err
	}
	if err := s.mount(ctx); err != nil {
		return err
	}
	s.drawState(s.ctl.Enabled())
	s.refreshStatus()

	tick := time.NewTicker(s.cfg.PollInterval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			if s.session.FileOpen() {
				s.drainAndClose(ctx)
			}
			return ctx.Err()
		case <-s.ctl.Events():
			s.drawState(s.ctl.Enabled())
		case <-s.ring.Readable():
		case <-tick.C:
		}
		if err := s.step(ctx); err != nil {
			return err
		}
	}
}

// step runs one iteration of the state machine implied by
// (logging enabled, file open). At most one block-sized write per call keeps
// iteration latency bounded so status refreshes can interleave.
func (s *Service) step(ctx context.Context) error {
	enabled := s.ctl.Enabled()
	open := s.session.FileOpen()
	switch {
	case enabled && !open:
		if err := s.openFile(ctx); err != nil {
			return err
		}
	case !enabled && open:
		s.drainAndClose(ctx)
	case enabled && open && s.ring.Used() >= s.cfg.BlockLen:
		s.writeChunk(s.cfg.BlockLen)
	}
	s.maybeRefreshStatus()
	return nil
}

// waitForMedia spins until a medium is present, prompting on the panel.
func (s *Service) waitForMedia(ctx context.Context) error {
	for attempt := 1; !s.st.Detect(); attempt++ {
		s.debugRow("Insert SD Card")
		wait, retry := s.cfg.MediaRetry.Next(attempt)
		if !retry {
			return errcode.MediaAbsent
		}
		if err := sleepCtx(ctx, wait); err != nil {
			return err
		}
	}
	s.disp.ClearRow(rowDebug)
	return nil
}

func (s *Service) mount(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		err := s.st.Mount()
		if err == nil {
			return nil
		}
		s.debugRow("Mount fail")
		println("[logger] mount fail:", err.Error())
		wait, retry := s.cfg.MountRetry.Next(attempt)
		if !retry {
			return &errcode.E{C: errcode.StorageFailure, Op: "mount", Err: err}
		}
		if err := sleepCtx(ctx, wait); err != nil {
			return err
		}
	}
}

// openFile creates the log file, retrying per policy. The session reports
// the file open only after a successful create; the ring's sticky overflow
// flag is cleared at that point and buffered bytes from before the open are
// left in place to be drained into the new file.
func (s *Service) openFile(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		f, err := s.st.Create(s.cfg.LogFile)
		if err == nil {
			s.file = f
			s.ring.ClearOverflow()
			s.disp.ClearRow(rowDebug)
			s.session.fileOpen.Store(true)
			return nil
		}
		s.debugRow("Open fail")
		println("[logger] open fail:", err.Error())
		wait, retry := s.cfg.OpenRetry.Next(attempt)
		if !retry {
			return &errcode.E{C: errcode.StorageFailure, Op: "open", Err: err}
		}
		if err := sleepCtx(ctx, wait); err != nil {
			return err
		}
	}
}

// drainAndClose writes everything still buffered (block-sized chunks, then
// the unaligned remainder), syncs, and closes with retry. The session keeps
// reporting the file open until the close sequence completes.
func (s *Service) drainAndClose(ctx context.Context) {
	for s.ring.Used() > 0 {
		s.writeChunk(mathx.Min(s.ring.Used(), s.cfg.BlockLen))
	}
	if err := s.file.Sync(); err != nil {
		s.debugRow("sync fail")
		println("[logger] sync fail:", err.Error())
	}
	for attempt := 1; ; attempt++ {
		err := s.file.Close()
		if err == nil {
			break
		}
		s.debugRow("close fail")
		println("[logger] close fail:", err.Error())
		wait, retry := s.cfg.CloseRetry.Next(attempt)
		if !retry {
			break
		}
		if sleepCtx(ctx, wait) != nil {
			break
		}
	}
	s.file = nil
	s.session.fileOpen.Store(false)
}

// writeChunk moves n buffered bytes to the file. Bytes are consumed from the
// ring even if the storage write fails; a failed sector is reported and
// dropped rather than stalling the pipeline.
func (s *Service) writeChunk(n int) {
	m, err := s.ring.ReadInto(s.blockBuf[:n])
	if err != nil || m == 0 {
		return
	}
	if _, err := s.file.Write(s.blockBuf[:m]); err != nil {
		s.debugRow("write fail")
		println("[logger] write fail:", err.Error())
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
