package converter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "song.txt")
	output := filepath.Join(dir, "song.mid")

	text := "C4 1.0\nC4,E4,G4 2.0 100\nR 1.0\n"
	if err := os.WriteFile(input, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewCompiler()
	if err := c.ConvertFile(input, output, 90); err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) < 4 || string(data[:4]) != "MThd" {
		t.Error("output is not a MIDI file")
	}
}

func TestConvertFileMissingInput(t *testing.T) {
	c := NewCompiler()
	err := c.ConvertFile(filepath.Join(t.TempDir(), "nope.txt"), "out.mid", 90)
	if err == nil {
		t.Error("ConvertFile() expected error for missing input")
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "song.txt")
	if err := os.WriteFile(input, []byte("C4 1.0\nbogus\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewCompiler()
	score, err := c.CheckFile(input, 90)
	if err != nil {
		t.Fatalf("CheckFile() error = %v", err)
	}
	if len(score.Events) != 1 {
		t.Errorf("events = %d, want 1", len(score.Events))
	}
	if len(score.Diagnostics) != 1 {
		t.Errorf("diagnostics = %d, want 1", len(score.Diagnostics))
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"song.txt", "song.mid"},
		{"dir/song.txt", "dir/song.mid"},
		{"song", "song.mid"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DefaultOutputPath(tt.input); got != tt.expected {
				t.Errorf("DefaultOutputPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
