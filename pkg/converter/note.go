package converter

import (
	"fmt"
	"regexp"
	"strings"
)

// noteRe matches one pitch letter, an optional accidental (# or B for flat,
// after uppercasing) and exactly one octave digit. Anything longer, like a
// chord-quality suffix or a multi-digit octave, fails.
var noteRe = regexp.MustCompile(`^([A-G])([#B]?)([0-9])$`)

// ResolveNote parses a single note token like "C4", "Bb3" or "R" into a
// NoteToken. Flat spellings are normalized to their sharp equivalents before
// the pitch table lookup. Returns ErrInvalidNoteFormat (wrapped with the
// offending token) when the token does not match the grammar.
func ResolveNote(token string) (NoteToken, error) {
	t := strings.ToUpper(strings.TrimSpace(token))

	if t == "R" || t == "REST" {
		return NoteToken{Rest: true}, nil
	}

	m := noteRe.FindStringSubmatch(t)
	if m == nil {
		return NoteToken{}, fmt.Errorf("%w: %q", ErrInvalidNoteFormat, token)
	}

	pitch, accidental, octaveStr := m[1], m[2], m[3]

	// A trailing B is a flat: remap the letter and drop the accidental, the
	// sharp (if any) is now part of the remapped spelling.
	if accidental == "B" {
		pitch = flatToSharp[pitch]
		accidental = ""
	}

	offset, ok := pitchOffsets[pitch+accidental]
	if !ok {
		return NoteToken{}, fmt.Errorf("%w: %q", ErrInvalidPitch, pitch+accidental)
	}

	// Single digit, guaranteed by the regexp.
	octave := int(octaveStr[0] - '0')

	return NoteToken{Offset: offset, Octave: octave}, nil
}
