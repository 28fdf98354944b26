package converter

import (
	"strconv"
	"strings"
)

// Compiler defaults
const (
	DefaultTicksPerBeat = 480
	DefaultVelocity     = 64
	DefaultBPM          = 90
	MaxKey              = 127
)

// Compiler turns score text into a parsed Score and encodes it as a
// single-track MIDI file. The zero value is not usable; use NewCompiler.
type Compiler struct {
	TicksPerBeat uint16 // time resolution, held constant for the whole stream
	Program      uint8  // program/instrument number for the setup event
}

// NewCompiler creates a Compiler with the default resolution and program.
func NewCompiler() *Compiler {
	return &Compiler{
		TicksPerBeat: DefaultTicksPerBeat,
		Program:      0,
	}
}

// ParseScore parses the score text into timed chord events. One event per
// non-blank line with at least two whitespace-separated fields:
//
//	notes duration [velocity]
//
// where notes is a comma-separated list of note tokens (or R/Rest). The
// parse is best-effort: lines with a missing or malformed duration are
// skipped, tokens that fail resolution are dropped from their chord, and a
// malformed or missing velocity defaults to 64. Every skip is recorded in
// the returned Score's Diagnostics.
func (c *Compiler) ParseScore(text string, bpm int) *Score {
	score := &Score{BPM: bpm}

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			score.addDiagnostic(lineNo, line, "missing duration field")
			continue
		}

		duration, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || duration < 0 {
			score.addDiagnostic(lineNo, fields[1], "malformed duration")
			continue
		}

		velocity := uint8(DefaultVelocity)
		if len(fields) > 2 {
			v, err := strconv.Atoi(fields[2])
			switch {
			case err != nil:
				score.addDiagnostic(lineNo, fields[2], "malformed velocity, using default")
			case v < 0:
				velocity = 0
			case v > 127:
				velocity = 127
			default:
				velocity = uint8(v)
			}
		}

		var keys []uint8
		for _, token := range strings.Split(fields[0], ",") {
			token = strings.TrimSpace(token)
			note, err := ResolveNote(token)
			if err != nil {
				score.addDiagnostic(lineNo, token, "unresolvable note, dropped")
				continue
			}
			if note.Rest {
				continue
			}
			key := note.Key()
			if key > MaxKey {
				score.addDiagnostic(lineNo, token, "key out of MIDI range, dropped")
				continue
			}
			keys = append(keys, uint8(key))
		}

		// A chord whose every token failed (or was a rest) degenerates to a
		// pure rest of the same duration.
		score.Events = append(score.Events, ChordEvent{
			Keys:     keys,
			Duration: duration,
			Velocity: velocity,
		})
	}

	return score
}

func (s *Score) addDiagnostic(line int, token, reason string) {
	s.Diagnostics = append(s.Diagnostics, Diagnostic{
		Line:   line,
		Token:  token,
		Reason: reason,
	})
}

// Compile parses the score text and encodes it as MIDI file bytes in one
// step. Parsing never fails (malformed input is skipped); only an encoding
// failure propagates.
func (c *Compiler) Compile(text string, bpm int) ([]byte, error) {
	return c.EncodeMIDI(c.ParseScore(text, bpm))
}
