// internal/link/link_test.go
package link

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"go.bug.st/serial/enumerator"
)

// ---- fake port ----

// fakePort hands out one scripted chunk per Read. An empty chunk behaves
// like a port timeout.
type fakePort struct {
	chunks   []string
	written  bytes.Buffer
	writeErr error
	readErr  error
	closed   int
}

func (f *fakePort) Read(p []byte) (int, error) {
	if len(f.chunks) == 0 {
		if f.readErr != nil {
			return 0, f.readErr
		}
		return 0, errPortTimeout
	}
	c := f.chunks[0]
	f.chunks = f.chunks[1:]
	if c == "" {
		return 0, errPortTimeout
	}
	n := copy(p, c)
	if n < len(c) {
		f.chunks = append([]string{c[n:]}, f.chunks...)
	}
	return n, nil
}

func (f *fakePort) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.written.Write(p)
}

func (f *fakePort) Close() error {
	f.closed++
	return nil
}

// ---- tests ----

func TestSendLine_AppendsTerminator(t *testing.T) {
	fp := &fakePort{}
	ch := New(fp)

	if err := ch.SendLine("34"); err != nil {
		t.Fatalf("SendLine err=%v", err)
	}
	if err := ch.SendLine("1"); err != nil {
		t.Fatalf("SendLine err=%v", err)
	}
	if got := fp.written.String(); got != "34\n1\n" {
		t.Fatalf("written=%q", got)
	}
}

func TestSendLine_WriteError(t *testing.T) {
	ch := New(&fakePort{writeErr: errors.New("device gone")})
	if err := ch.SendLine("1"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestReceiveLine_SplitAcrossReads(t *testing.T) {
	ch := New(&fakePort{chunks: []string{"a", "\r\nb\n", "c"}})

	for _, want := range []string{"a", "b"} {
		got, err := ch.ReceiveLine()
		if err != nil {
			t.Fatalf("ReceiveLine err=%v", err)
		}
		if got != want {
			t.Fatalf("got %q want %q", got, want)
		}
	}

	// "c" has no terminator; the timeout returns the partial token
	got, err := ch.ReceiveLine()
	if err != nil {
		t.Fatalf("ReceiveLine err=%v", err)
	}
	if got != "c" {
		t.Fatalf("partial got %q", got)
	}
}

func TestReceiveLine_TimeoutIsEmpty(t *testing.T) {
	ch := New(&fakePort{})

	got, err := ch.ReceiveLine()
	if err != nil {
		t.Fatalf("timeout must not be an error, got %v", err)
	}
	if got != "" {
		t.Fatalf("got %q want empty", got)
	}
}

func TestReceiveLine_ReadError(t *testing.T) {
	ch := New(&fakePort{readErr: io.ErrUnexpectedEOF, chunks: nil})
	// fakePort prefers readErr once the script is empty
	if _, err := ch.ReceiveLine(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	fp := &fakePort{}
	ch := New(fp)

	_ = ch.Close()
	_ = ch.Close()
	if fp.closed != 1 {
		t.Fatalf("port closed %d times", fp.closed)
	}
	if err := ch.SendLine("1"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if _, err := ch.ReceiveLine(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestLineReader(t *testing.T) {
	r := NewLineReader(strings.NewReader("a\r\nb\n"))

	for _, want := range []string{"a", "b"} {
		got, err := r.ReceiveLine()
		if err != nil || got != want {
			t.Fatalf("got %q err=%v want %q", got, err, want)
		}
	}
	if _, err := r.ReceiveLine(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestSplit_RoutesHalves(t *testing.T) {
	fp := &fakePort{}
	s := Split{Out: New(fp), In: NewLineReader(strings.NewReader("q\n"))}

	if err := s.SendLine("17"); err != nil {
		t.Fatalf("SendLine err=%v", err)
	}
	got, err := s.ReceiveLine()
	if err != nil || got != "q" {
		t.Fatalf("got %q err=%v", got, err)
	}
	if fp.written.String() != "17\n" {
		t.Fatalf("written=%q", fp.written.String())
	}
}

func TestListPorts(t *testing.T) {
	orig := listDetailed
	defer func() { listDetailed = orig }()

	listDetailed = func() ([]*enumerator.PortDetails, error) {
		return []*enumerator.PortDetails{
			{Name: "/dev/ttyS0"},
			nil,
			{Name: "/dev/ttyACM0", IsUSB: true, VID: "2341", PID: "8036", Product: "Fixture"},
		}, nil
	}

	ports, err := ListPorts()
	if err != nil {
		t.Fatalf("ListPorts err=%v", err)
	}
	if len(ports) != 2 {
		t.Fatalf("expected 2 ports, got %d", len(ports))
	}
	if got := ports[1].String(); got != "/dev/ttyACM0 [2341:8036] Fixture" {
		t.Fatalf("String()=%q", got)
	}
	if got := ports[0].String(); got != "/dev/ttyS0" {
		t.Fatalf("String()=%q", got)
	}
}
