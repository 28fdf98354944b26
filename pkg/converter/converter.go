package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConvertFile reads a notation text file and writes the compiled MIDI file.
func (c *Compiler) ConvertFile(inputPath, outputPath string, bpm int) error {
	text, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	data, err := c.Compile(string(text), bpm)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

// CheckFile parses a notation text file without encoding it, returning the
// parsed score with its diagnostics.
func (c *Compiler) CheckFile(inputPath string, bpm int) (*Score, error) {
	text, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return c.ParseScore(string(text), bpm), nil
}

// DefaultOutputPath derives a .mid path from the input filename.
func DefaultOutputPath(inputPath string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + ".mid"
}
