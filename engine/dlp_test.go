package engine

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/advanderveer/go-test"
)

type fakePort struct {
	in     *bytes.Reader
	out    bytes.Buffer
	closed bool
}

func (p *fakePort) Read(b []byte) (int, error)  { return p.in.Read(b) }
func (p *fakePort) Write(b []byte) (int, error) { return p.out.Write(b) }
func (p *fakePort) Close() error                { p.closed = true; return nil }

var _ Trigger = &DLPIO8G{}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDLPHandshakeAndLines(t *testing.T) {
	port := &fakePort{in: bytes.NewReader([]byte("Q"))}
	d, err := newDLP(port, discard())
	test.Ok(t, err)
	test.Equals(t, "'\\", port.out.String())

	port.out.Reset()
	d.Set("13")
	d.Unset("13")
	d.Unset("8")
	test.Equals(t, "13QEI", port.out.String())

	d.Close()
	test.Assert(t, port.closed, "port should be closed")
}

func TestDLPHandshakeFails(t *testing.T) {
	port := &fakePort{in: bytes.NewReader([]byte("X"))}
	_, err := newDLP(port, discard())
	test.Assert(t, err != nil, "unexpected ping reply should fail")
	test.Assert(t, port.closed, "port should be closed after a failed handshake")

	port = &fakePort{in: bytes.NewReader(nil)}
	_, err = newDLP(port, discard())
	test.Assert(t, err != nil, "silent device should fail")
}
