// services/logger/status.go
// Display status rows. Strings are built into a reused scratch slice with
// x/conv so the main loop stays allocation-light; the layout mirrors the
// original panel.
package logger

import (
	"datalogger-go/x/conv"
	"datalogger-go/x/mathx"
)

func (s *Service) drawRow(row int, text []byte) {
	s.disp.ClearRow(row)
	s.disp.DrawString(row, 0, string(text))
}

func (s *Service) debugRow(msg string) {
	s.disp.ClearRow(rowDebug)
	s.disp.DrawString(rowDebug, 0, msg)
}

func (s *Service) drawState(on bool) {
	s.disp.ClearRow(rowState)
	if on {
		s.disp.DrawString(rowState, 0, "Logging: ON")
	} else {
		s.disp.DrawString(rowState, 0, "Logging: OFF")
	}
}

// maybeRefreshStatus redraws the status rows once per configured period,
// measured on the wrapping tick counter.
func (s *Service) maybeRefreshStatus() {
	now := s.clk.Ticks()
	if now-s.lastStatus < s.cfg.StatusPeriodTicks {
		return
	}
	s.lastStatus = now
	s.refreshStatus()
}

// refreshStatus recomputes and draws buffer occupancy, file size and card
// free space. Keep this off the hot path: the card and panel can share a
// bus, and frequent redraws slow sector writes down.
func (s *Service) refreshStatus() {
	// Ring occupancy: "Buffer: 42%"
	pct := mathx.Percent(s.ring.Used(), s.ring.Cap())
	s.line = append(s.line[:0], "Buffer: "...)
	s.line = conv.AppendUint(s.line, uint64(pct))
	s.line = append(s.line, '%')
	s.drawRow(rowBuffer, s.line)

	// Log file size: "File: 12kb"
	if s.session.FileOpen() {
		s.line = append(s.line[:0], "File: "...)
		s.line = conv.AppendInt(s.line, s.file.Size()/1000)
		s.line = append(s.line, "kb"...)
		s.drawRow(rowFile, s.line)
	}

	// Card usage: "485/500MB (97%)", sectors assumed 512 bytes.
	if total, free, err := s.st.FreeSpace(); err == nil && total > 0 {
		s.line = conv.AppendUint(s.line[:0], uint64((total-free)/2000))
		s.line = append(s.line, '/')
		s.line = conv.AppendUint(s.line, uint64(total/2000))
		s.line = append(s.line, "MB ("...)
		s.line = conv.AppendUint(s.line, uint64(mathx.Percent(total-free, total)))
		s.line = append(s.line, "%)"...)
		s.drawRow(rowSpace, s.line)
	}

	// Sticky overflow notice; cleared from the row at the next file open.
	if s.ring.Overflowed() {
		s.debugRow("Buffer overflow")
	}
}
