package engine

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

// Trigger raises and lowers digital output lines around stimulus events.
type Trigger interface {
	Set(lines string)
	Unset(lines string)
}

type nopTrigger struct{}

func (nopTrigger) Set(string)   {}
func (nopTrigger) Unset(string) {}

// Lines used by the sequencer.
const (
	LineStimulus = "1"
	LineResponse = "2"
)

// DLPIO8G drives a DLP-IO8-G USB TTL box.
type DLPIO8G struct {
	port   io.ReadWriteCloser
	logger *slog.Logger
}

func NewDLPIO8G(device string, baudrate int, logger *slog.Logger) (*DLPIO8G, error) {
	mode := &serial.Mode{
		BaudRate: baudrate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", device)
	}
	return newDLP(port, logger)
}

// newDLP pings the device and switches it to binary mode.
func newDLP(port io.ReadWriteCloser, logger *slog.Logger) (*DLPIO8G, error) {
	d := &DLPIO8G{port: port, logger: logger}
	if !d.Ping() {
		port.Close()
		return nil, errors.New("device did not respond to ping correctly")
	}

	if _, err := port.Write([]byte{'\\'}); err != nil {
		port.Close()
		return nil, errors.Wrap(err, "failed to enter binary mode")
	}
	return d, nil
}

func (d *DLPIO8G) Close() {
	if d.port != nil {
		d.port.Close()
	}
}

func (d *DLPIO8G) Ping() bool {
	if _, err := d.port.Write([]byte{'\''}); err != nil {
		return false
	}

	buf := make([]byte, 1)
	n, err := d.port.Read(buf)
	return err == nil && n == 1 && buf[0] == 'Q'
}

func (d *DLPIO8G) Set(lines string) {
	if _, err := d.port.Write([]byte(lines)); err != nil {
		d.logger.Error("dlp set failed", "lines", lines, "err", err)
	}
}

var unsetLines = strings.NewReplacer(
	"1", "Q", "2", "W", "3", "E", "4", "R",
	"5", "T", "6", "Y", "7", "U", "8", "I",
)

func (d *DLPIO8G) Unset(lines string) {
	if _, err := d.port.Write([]byte(unsetLines.Replace(lines))); err != nil {
		d.logger.Error("dlp unset failed", "lines", lines, "err", err)
	}
}
