// platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"machine"
	"os"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/adxl345"
	"tinygo.org/x/drivers/sdcard"
	"tinygo.org/x/tinyfs"
	"tinygo.org/x/tinyfs/fatfs"

	"datalogger-go/hal"
	"datalogger-go/types"
	"datalogger-go/x/conv"
)

// DeviceName selects the embedded config for this build.
const DeviceName = "pico"

const (
	pinButton = machine.GP15
	pinSDCS   = machine.GP13
)

// New configures the Pico peripherals: ADC0 plus an ADXL345 on i2c0 for the
// sample source, an SD card on spi0 behind FAT for storage, and UART0 as the
// status panel.
func New() (*Set, error) {
	machine.InitADC()
	adc := machine.ADC{Pin: machine.ADC0}
	adc.Configure(machine.ADCConfig{})

	_ = machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	})
	accel := adxl345.New(machine.I2C0)
	accel.Configure()

	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})

	st := &sdStorage{
		card: sdcard.New(machine.SPI0,
			machine.SPI0_SCK_PIN, machine.SPI0_SDO_PIN, machine.SPI0_SDI_PIN,
			pinSDCS),
	}
	st.fs = fatfs.New(&st.card)
	st.fs.Configure(&fatfs.Config{SectorSize: 512})

	return &Set{
		Sensor:  &rp2Sensor{adc: adc, accel: accel},
		Storage: st,
		Display: &uartDisplay{u: u, line: make([]byte, 0, 48)},
		Clock:   newMsClock(),
	}, nil
}

// RegisterButton attaches the start/stop handler to the button pin's falling
// edge. fn runs in interrupt context.
func RegisterButton(fn func()) error {
	pinButton.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return pinButton.SetInterrupt(machine.PinFalling, func(machine.Pin) { fn() })
}

// ---- sensor ----

// rp2Sensor acquires into pending on BeginConversion, so each tick hands out
// the conversion started on the previous one.
type rp2Sensor struct {
	adc     machine.ADC
	accel   adxl345.Device
	pending types.Sample
}

func (s *rp2Sensor) BeginConversion() {
	s.pending.ADC = s.adc.Get()
	if x, y, z, err := s.accel.ReadAcceleration(); err == nil {
		// µg to mg, which fits int16 across the full ±16g range.
		s.pending.Ax = int16(x / 1000)
		s.pending.Ay = int16(y / 1000)
		s.pending.Az = int16(z / 1000)
	}
}

func (s *rp2Sensor) ReadInto(dst *types.Sample) { *dst = s.pending }

// ---- storage ----

type sdStorage struct {
	card    sdcard.Device
	fs      *fatfs.FATFS
	ready   bool
	written int64
}

func (s *sdStorage) Detect() bool {
	if !s.ready {
		s.ready = s.card.Configure() == nil
	}
	return s.ready
}

func (s *sdStorage) Mount() error { return s.fs.Mount() }

func (s *sdStorage) Create(name string) (hal.File, error) {
	f, err := s.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return nil, err
	}
	return &sdFile{f: f, st: s}, nil
}

func (s *sdStorage) FreeSpace() (uint32, uint32, error) {
	total := uint32(s.card.Size() / 512)
	if fr, ok := any(s.fs).(interface{ Free() (int64, error) }); ok {
		if free, err := fr.Free(); err == nil {
			return total, uint32(free / 512), nil
		}
	}
	// No free-space call on this filesystem build; estimate from what we
	// have written since boot.
	used := uint32(s.written / 512)
	if used > total {
		used = total
	}
	return total, total - used, nil
}

type sdFile struct {
	f    tinyfs.File
	st   *sdStorage
	size int64
}

func (f *sdFile) Write(p []byte) (int, error) {
	n, err := f.f.Write(p)
	f.size += int64(n)
	f.st.written += int64(n)
	return n, err
}

func (f *sdFile) Sync() error {
	if s, ok := f.f.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

func (f *sdFile) Close() error { return f.f.Close() }
func (f *sdFile) Size() int64  { return f.size }

// ---- display ----

// uartDisplay streams row updates over the debug UART, one line per draw.
type uartDisplay struct {
	u    *uartx.UART
	line []byte
}

func (d *uartDisplay) ClearRow(int) {}

func (d *uartDisplay) DrawString(row, _ int, text string) {
	d.line = append(d.line[:0], '[')
	d.line = conv.AppendInt(d.line, int64(row))
	d.line = append(d.line, "] "...)
	d.line = append(d.line, text...)
	d.line = append(d.line, "\r\n"...)
	_, _ = d.u.Write(d.line)
}
