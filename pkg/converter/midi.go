package converter

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// EncodeMIDI encodes a parsed Score as a standard single-track MIDI file.
// The track opens with a tempo meta event derived from the score's BPM and
// a program change, followed by the chord events in order.
//
// Each chord emits all its note-ons with zero delta (simultaneous), then all
// its note-offs, where only the first note-off carries the chord's duration
// in ticks and the rest are zero-delta. A rest emits a single zero-velocity
// note-off on key 0 carrying the full duration, advancing time with no new
// sound.
func (c *Compiler) EncodeMIDI(score *Score) ([]byte, error) {
	if score == nil {
		return nil, errors.New("nil score")
	}

	bpm := score.BPM
	if bpm <= 0 {
		bpm = DefaultBPM
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(c.TicksPerBeat)

	var track smf.Track

	// Tempo meta event (FF 51 03, microseconds per beat)
	microsecondsPerBeat := uint32(60000000 / bpm)
	track.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	}))

	track.Add(0, midi.ProgramChange(0, c.Program))

	channel := uint8(0)

	for _, ev := range score.Events {
		ticks := uint32(math.Round(float64(c.TicksPerBeat) * ev.Duration))

		if ev.Rest() {
			// Advance time with no new sound.
			track.Add(ticks, midi.NoteOff(channel, 0))
			continue
		}

		for _, key := range ev.Keys {
			track.Add(0, midi.NoteOn(channel, key, ev.Velocity))
		}
		for i, key := range ev.Keys {
			delta := uint32(0)
			if i == 0 {
				delta = ticks
			}
			track.Add(delta, midi.NoteOffVelocity(channel, key, ev.Velocity))
		}
	}

	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteMIDIFile encodes a Score and writes the result to a file.
func (c *Compiler) WriteMIDIFile(score *Score, filename string) error {
	data, err := c.EncodeMIDI(score)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
