package converter

import (
	"bytes"
	"testing"

	"gitlab.com/gomidi/midi/v2/smf"
)

// decodeTrack parses encoder output with the standard SMF reader and returns
// the events of the single track.
func decodeTrack(t *testing.T, data []byte) smf.Track {
	t.Helper()

	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("smf.ReadFrom() error = %v", err)
	}
	if len(s.Tracks) != 1 {
		t.Fatalf("decoded tracks = %d, want 1", len(s.Tracks))
	}
	return s.Tracks[0]
}

type channelEvent struct {
	delta    uint32
	status   uint8
	key      uint8
	velocity uint8
}

// channelEvents filters a track down to its note on/off events.
func channelEvents(track smf.Track) []channelEvent {
	var events []channelEvent
	for _, ev := range track {
		msg := []byte(ev.Message)
		if len(msg) < 3 {
			continue
		}
		status := msg[0] & 0xF0
		if status == 0x90 || status == 0x80 {
			events = append(events, channelEvent{
				delta:    ev.Delta,
				status:   status,
				key:      msg[1],
				velocity: msg[2],
			})
		}
	}
	return events
}

func TestEncodeMIDISingleNote(t *testing.T) {
	c := NewCompiler()
	data, err := c.Compile("C4 1.0", 120)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	events := channelEvents(decodeTrack(t, data))
	if len(events) != 2 {
		t.Fatalf("note events = %d, want 2", len(events))
	}

	on := events[0]
	if on.status != 0x90 || on.key != 60 || on.velocity != 64 || on.delta != 0 {
		t.Errorf("note on = %+v, want status 0x90 key 60 velocity 64 delta 0", on)
	}

	off := events[1]
	if off.status != 0x80 || off.key != 60 {
		t.Errorf("note off = %+v, want status 0x80 key 60", off)
	}
	if off.delta != 480 {
		t.Errorf("note off delta = %d, want 480", off.delta)
	}
}

func TestEncodeMIDIChordDeltas(t *testing.T) {
	c := NewCompiler()
	data, err := c.Compile("C4,E4,G4 2.0 100", 120)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	events := channelEvents(decodeTrack(t, data))
	if len(events) != 6 {
		t.Fatalf("note events = %d, want 6", len(events))
	}

	wantKeys := []uint8{60, 64, 67}
	for i := 0; i < 3; i++ {
		on := events[i]
		if on.status != 0x90 || on.key != wantKeys[i] {
			t.Errorf("note on[%d] = %+v, want status 0x90 key %d", i, on, wantKeys[i])
		}
		if on.delta != 0 {
			t.Errorf("note on[%d] delta = %d, want 0", i, on.delta)
		}
		if on.velocity != 100 {
			t.Errorf("note on[%d] velocity = %d, want 100", i, on.velocity)
		}
	}

	// Only the first note off carries the duration (2.0 beats * 480 ticks).
	for i := 3; i < 6; i++ {
		off := events[i]
		if off.status != 0x80 || off.key != wantKeys[i-3] {
			t.Errorf("note off[%d] = %+v, want status 0x80 key %d", i, off, wantKeys[i-3])
		}
		wantDelta := uint32(0)
		if i == 3 {
			wantDelta = 960
		}
		if off.delta != wantDelta {
			t.Errorf("note off[%d] delta = %d, want %d", i, off.delta, wantDelta)
		}
	}
}

func TestEncodeMIDIRest(t *testing.T) {
	c := NewCompiler()
	data, err := c.Compile("R 1.0", 120)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	events := channelEvents(decodeTrack(t, data))
	if len(events) != 1 {
		t.Fatalf("note events = %d, want 1", len(events))
	}

	hold := events[0]
	if hold.status != 0x80 || hold.key != 0 || hold.velocity != 0 {
		t.Errorf("rest event = %+v, want status 0x80 key 0 velocity 0", hold)
	}
	if hold.delta != 480 {
		t.Errorf("rest delta = %d, want 480", hold.delta)
	}
}

func TestEncodeMIDITempoAndResolution(t *testing.T) {
	c := NewCompiler()
	data, err := c.Compile("C4 1.0", 90)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("smf.ReadFrom() error = %v", err)
	}

	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		t.Fatalf("time format = %T, want smf.MetricTicks", s.TimeFormat)
	}
	if mt.Resolution() != 480 {
		t.Errorf("resolution = %d, want 480", mt.Resolution())
	}

	// 90 BPM -> 60_000_000 / 90 = 666666 microseconds per beat.
	var found bool
	for _, ev := range s.Tracks[0] {
		msg := []byte(ev.Message)
		if len(msg) >= 6 && msg[0] == 0xFF && msg[1] == 0x51 && msg[2] == 0x03 {
			got := uint32(msg[3])<<16 | uint32(msg[4])<<8 | uint32(msg[5])
			if got != 666666 {
				t.Errorf("microseconds per beat = %d, want 666666", got)
			}
			found = true
		}
	}
	if !found {
		t.Error("tempo meta event not found")
	}
}

func TestEncodeMIDIProgramChange(t *testing.T) {
	c := NewCompiler()
	c.Program = 5
	data, err := c.Compile("C4 1.0", 120)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	var found bool
	for _, ev := range decodeTrack(t, data) {
		msg := []byte(ev.Message)
		if len(msg) >= 2 && msg[0]&0xF0 == 0xC0 {
			if msg[1] != 5 {
				t.Errorf("program = %d, want 5", msg[1])
			}
			found = true
		}
	}
	if !found {
		t.Error("program change event not found")
	}
}

func TestCompileIdempotent(t *testing.T) {
	c := NewCompiler()
	text := "C4,E4 1.0 90\nR 0.5\nBb3 2.0"

	first, err := c.Compile(text, 100)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	second, err := c.Compile(text, 100)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("compiling the same input twice should be byte-identical")
	}
}

func TestEncodeMIDIRoundedTicks(t *testing.T) {
	c := NewCompiler()
	// 0.333 beats * 480 = 159.84, rounds to 160.
	data, err := c.Compile("C4 0.333", 120)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	events := channelEvents(decodeTrack(t, data))
	if len(events) != 2 {
		t.Fatalf("note events = %d, want 2", len(events))
	}
	if events[1].delta != 160 {
		t.Errorf("note off delta = %d, want 160", events[1].delta)
	}
}

func TestEncodeMIDINilScore(t *testing.T) {
	c := NewCompiler()
	if _, err := c.EncodeMIDI(nil); err == nil {
		t.Error("EncodeMIDI(nil) expected error")
	}
}

func TestEncodeMIDIEmptyScore(t *testing.T) {
	c := NewCompiler()
	data, err := c.Compile("", 120)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if len(data) < 4 || string(data[:4]) != "MThd" {
		t.Error("empty input should still produce a valid header-only stream")
	}
	if events := channelEvents(decodeTrack(t, data)); len(events) != 0 {
		t.Errorf("note events = %d, want 0", len(events))
	}
}
