// platform/factories_host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"datalogger-go/hal"
	"datalogger-go/types"
	"datalogger-go/x/wave"
)

// DeviceName selects the embedded config for this build.
const DeviceName = "sim"

// Simulated card geometry: 512-byte sectors, ~500 MB with a little already
// used, so the status row shows plausible numbers.
const (
	simTotalSectors = 1_000_000
	simUsedSectors  = 30_000
)

// New builds the simulated hardware set. Log files land in a temp directory
// unless DATALOGGER_DIR points somewhere else.
func New() (*Set, error) {
	dir := os.Getenv("DATALOGGER_DIR")
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "datalogger")
		if err != nil {
			return nil, err
		}
	}
	clk := newMsClock()
	return &Set{
		Sensor:  NewSimSensor(),
		Storage: NewDirStorage(dir),
		Display: &SimDisplay{},
		Clock:   clk,
	}, nil
}

// ---- button ----

var button struct {
	mu sync.Mutex
	fn func()
}

// RegisterButton records the interrupt handler for the start/stop button.
func RegisterButton(fn func()) error {
	button.mu.Lock()
	button.fn = fn
	button.mu.Unlock()
	return nil
}

// PressButton fires the registered handler, emulating a falling edge.
func PressButton() {
	button.mu.Lock()
	fn := button.fn
	button.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// ---- sensor ----

// SimSensor produces a deterministic triangle waveform on the ADC channel
// and slow ramps on the acceleration axes. Good enough to eyeball file
// contents after a bench run.
type SimSensor struct {
	phase   uint32
	pending types.Sample
}

func NewSimSensor() *SimSensor { return &SimSensor{} }

func (s *SimSensor) BeginConversion() {
	s.phase++
	s.pending = types.Sample{
		ADC: wave.Triangle(s.phase, 4096),
		Ax:  wave.Centered(s.phase/2, 2000),
		Ay:  wave.Centered(s.phase/3, 2000),
		Az:  wave.Centered(s.phase/5, 2000),
	}
}

func (s *SimSensor) ReadInto(dst *types.Sample) { *dst = s.pending }

// ---- storage ----

// DirStorage backs hal.Storage with a directory on the host filesystem and
// adds the fault injection hooks the logger tests and the bench tool use.
type DirStorage struct {
	mu        sync.Mutex
	dir       string
	absent    bool
	failOpens int
	written   int64 // bytes written across sessions, for the space rows
}

func NewDirStorage(dir string) *DirStorage { return &DirStorage{dir: dir} }

// Dir reports where log files are written.
func (s *DirStorage) Dir() string { return s.dir }

// Eject makes Detect report no medium until Insert is called.
func (s *DirStorage) Eject() {
	s.mu.Lock()
	s.absent = true
	s.mu.Unlock()
}

func (s *DirStorage) Insert() {
	s.mu.Lock()
	s.absent = false
	s.mu.Unlock()
}

// FailOpens makes the next n Create calls fail, to exercise open retry.
func (s *DirStorage) FailOpens(n int) {
	s.mu.Lock()
	s.failOpens = n
	s.mu.Unlock()
}

func (s *DirStorage) Detect() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.absent
}

func (s *DirStorage) Mount() error {
	return os.MkdirAll(s.dir, 0o755)
}

func (s *DirStorage) Create(name string) (hal.File, error) {
	s.mu.Lock()
	if s.failOpens > 0 {
		s.failOpens--
		s.mu.Unlock()
		return nil, errors.New("injected open failure")
	}
	s.mu.Unlock()

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	return &dirFile{f: f, st: s}, nil
}

func (s *DirStorage) FreeSpace() (total, free uint32, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	used := uint32(simUsedSectors + s.written/512)
	if used > simTotalSectors {
		used = simTotalSectors
	}
	return simTotalSectors, simTotalSectors - used, nil
}

type dirFile struct {
	f    *os.File
	st   *DirStorage
	size int64
}

func (d *dirFile) Write(p []byte) (int, error) {
	n, err := d.f.Write(p)
	d.size += int64(n)
	d.st.mu.Lock()
	d.st.written += int64(n)
	d.st.mu.Unlock()
	return n, err
}

func (d *dirFile) Sync() error  { return d.f.Sync() }
func (d *dirFile) Close() error { return d.f.Close() }
func (d *dirFile) Size() int64  { return d.size }

// ---- display ----

// SimDisplay keeps the five panel rows in memory for assertions and the
// bench tool's status command.
type SimDisplay struct {
	mu   sync.Mutex
	rows [5]string
}

func (d *SimDisplay) ClearRow(row int) {
	d.mu.Lock()
	if row >= 0 && row < len(d.rows) {
		d.rows[row] = ""
	}
	d.mu.Unlock()
}

func (d *SimDisplay) DrawString(row, _ int, text string) {
	d.mu.Lock()
	if row >= 0 && row < len(d.rows) {
		d.rows[row] = text
	}
	d.mu.Unlock()
}

// Rows returns a snapshot of the panel contents.
func (d *SimDisplay) Rows() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.rows))
	copy(out, d.rows[:])
	return out
}
