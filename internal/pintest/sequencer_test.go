// internal/pintest/sequencer_test.go
package pintest

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/joshajohnson/sea-micro/internal/writer"
)

// ---- fake DUT ----

// fakeDUT records every line the host sends and answers reads from a
// scripted reply list. An exhausted script behaves like a read timeout.
type fakeDUT struct {
	sent    []string
	replies []string
	sendErr error
	readErr error
}

func (f *fakeDUT) SendLine(payload string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, payload)
	return nil
}

func (f *fakeDUT) ReceiveLine() (string, error) {
	if f.readErr != nil {
		return "", f.readErr
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

type recordingObserver struct {
	retries int
	seen    int
}

func (o *recordingObserver) Attempt(pin int, expected, received string, retry bool) {
	o.seen++
	if retry {
		o.retries++
	}
}

func allKeys() []string {
	var out []string
	for i := 0; i < 18; i++ {
		out = append(out, string(rune('a'+i)))
	}
	return out
}

func stimuli(from, to int) []string {
	var out []string
	for i := from; i <= to; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}

func newSequencer(t *testing.T, dut *fakeDUT, obs Observer) *Sequencer {
	t.Helper()
	codes, err := writer.New(dut)
	if err != nil {
		t.Fatalf("writer.New err=%v", err)
	}
	s, err := New(codes, dut, obs)
	if err != nil {
		t.Fatalf("New err=%v", err)
	}
	return s
}

// ---- tests ----

func TestRun_AllFirstAttempt(t *testing.T) {
	dut := &fakeDUT{replies: allKeys()}
	obs := &recordingObserver{}
	s := newSequencer(t, dut, obs)

	rep, err := s.Run()
	if err != nil {
		t.Fatalf("Run err=%v", err)
	}
	if len(rep.Pins) != 18 {
		t.Fatalf("expected 18 pin results, got %d", len(rep.Pins))
	}
	for _, p := range rep.Pins {
		if p.Outcome != PassFirst {
			t.Fatalf("pin %d outcome=%v", p.Pin, p.Outcome)
		}
	}
	if !reflect.DeepEqual(dut.sent, stimuli(1, 18)) {
		t.Fatalf("sent=%v", dut.sent)
	}
	if obs.seen != 18 || obs.retries != 0 {
		t.Fatalf("observer seen=%d retries=%d", obs.seen, obs.retries)
	}
}

func TestRun_RetryRecovers(t *testing.T) {
	replies := allKeys()
	// pin 5 answers wrong once, then right
	replies = append(replies[:4], append([]string{"x"}, replies[4:]...)...)

	dut := &fakeDUT{replies: replies}
	obs := &recordingObserver{}
	s := newSequencer(t, dut, obs)

	rep, err := s.Run()
	if err != nil {
		t.Fatalf("Run err=%v", err)
	}
	if got := rep.Retried(); !reflect.DeepEqual(got, []int{5}) {
		t.Fatalf("retried=%v", got)
	}
	if rep.Pins[4].Outcome != PassRetry {
		t.Fatalf("pin 5 outcome=%v", rep.Pins[4].Outcome)
	}
	if !reflect.DeepEqual(rep.Pins[4].Received, []string{"x", "e"}) {
		t.Fatalf("pin 5 received=%v", rep.Pins[4].Received)
	}

	// pin 5 stimulated twice, everything else once
	want := append(stimuli(1, 5), stimuli(5, 18)...)
	if !reflect.DeepEqual(dut.sent, want) {
		t.Fatalf("sent=%v", dut.sent)
	}
	for _, line := range dut.sent {
		if line == "33" {
			t.Fatalf("error status must not be sent on recovered retry")
		}
	}
	if obs.retries != 1 {
		t.Fatalf("observer retries=%d", obs.retries)
	}
}

func TestRun_RetryExhausted(t *testing.T) {
	// pins 1..2 fine, pin 3 wrong twice
	dut := &fakeDUT{replies: []string{"a", "b", "z", "y", "d"}}
	s := newSequencer(t, dut, nil)

	rep, err := s.Run()

	var mm *MismatchError
	if !errors.As(err, &mm) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if mm.Pin != 3 || mm.Expected != "c" || mm.Received != "y" {
		t.Fatalf("mismatch=%+v", mm)
	}

	// no stimulation after the failing pin; error status last
	want := []string{"1", "2", "3", "3", "33"}
	if !reflect.DeepEqual(dut.sent, want) {
		t.Fatalf("sent=%v want %v", dut.sent, want)
	}
	if len(rep.Pins) != 3 || rep.Pins[2].Outcome != Failed {
		t.Fatalf("report=%+v", rep.Pins)
	}
}

func TestRun_TimeoutIsMismatch(t *testing.T) {
	// pin 1 answers, then the DUT goes silent
	dut := &fakeDUT{replies: []string{"a"}}
	s := newSequencer(t, dut, nil)

	_, err := s.Run()

	var mm *MismatchError
	if !errors.As(err, &mm) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if mm.Pin != 2 || mm.Received != "" {
		t.Fatalf("mismatch=%+v", mm)
	}
}

func TestRun_LinkFailure(t *testing.T) {
	boom := errors.New("port vanished")
	dut := &fakeDUT{readErr: boom}
	s := newSequencer(t, dut, nil)

	_, err := s.Run()
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped link error, got %v", err)
	}

	var mm *MismatchError
	if errors.As(err, &mm) {
		t.Fatalf("link failure must not look like a mismatch")
	}
	if !reflect.DeepEqual(dut.sent, []string{"1"}) {
		t.Fatalf("sent=%v", dut.sent)
	}
}

func TestNew_RequiresCollaborators(t *testing.T) {
	dut := &fakeDUT{}
	codes, _ := writer.New(dut)

	if _, err := New(nil, dut, nil); err == nil {
		t.Fatalf("expected error for nil writer")
	}
	if _, err := New(codes, nil, nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
}
