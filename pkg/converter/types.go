// Package converter compiles line-oriented text notation into standard MIDI files
package converter

import "errors"

// Parse errors surfaced by the note resolver
var (
	// ErrInvalidNoteFormat means a token does not match the
	// letter/accidental/octave grammar (e.g. "H4", "C", "C44").
	ErrInvalidNoteFormat = errors.New("invalid note format")

	// ErrInvalidPitch means normalization produced a spelling that is not in
	// the pitch table. The flat remap makes this unreachable for any token
	// the grammar accepts; it is kept as an invariant guard.
	ErrInvalidPitch = errors.New("invalid pitch after normalization")
)

// pitchOffsets maps canonical sharp-based spellings to semitone offsets 0-11.
// Flat spellings are never stored; they are remapped before lookup.
var pitchOffsets = map[string]uint8{
	"C": 0, "C#": 1, "D": 2, "D#": 3, "E": 4,
	"F": 5, "F#": 6, "G": 7, "G#": 8,
	"A": 9, "A#": 10, "B": 11,
}

// flatToSharp remaps a pitch letter carrying a flat to its sharp-based
// enharmonic equivalent. The accidental is baked into the result.
var flatToSharp = map[string]string{
	"A": "G#",
	"B": "A#",
	"C": "B",
	"D": "C#",
	"E": "D#",
	"F": "E",
	"G": "F#",
}

// NoteToken is a resolved note: either a rest or a pitch class plus octave.
type NoteToken struct {
	Rest   bool
	Offset uint8 // semitone offset within the octave (0-11)
	Octave int   // non-negative, single decimal digit in the grammar
}

// Key returns the absolute MIDI key number for a pitched token.
// Octave 0 starts at key 12, so C4 = 60.
func (n NoteToken) Key() int {
	return 12 + int(n.Offset) + 12*n.Octave
}

// ChordEvent is one line of the score: zero or more keys sounding
// simultaneously (zero keys = rest) for a duration in beats.
type ChordEvent struct {
	Keys     []uint8 `json:"keys"`
	Duration float64 `json:"duration"`
	Velocity uint8   `json:"velocity"`
}

// Rest reports whether the event holds time without sounding any key.
func (e ChordEvent) Rest() bool {
	return len(e.Keys) == 0
}

// Diagnostic records a line or token the compiler skipped. The compiler is
// permissive and never fails on malformed input; diagnostics make the
// skipping observable to callers that want to report it.
type Diagnostic struct {
	Line   int    `json:"line"`
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

// Score is the parsed form of the whole text: ordered chord events plus the
// tempo they are played at. Built once per compile, never mutated after.
type Score struct {
	Events      []ChordEvent `json:"events"`
	BPM         int          `json:"bpm"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}
