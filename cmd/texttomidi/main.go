// Package main is the entry point for texttomidi CLI
package main

import (
	"fmt"
	"os"

	"github.com/JustJoshinDev/TextToMidi/pkg/api"
	"github.com/JustJoshinDev/TextToMidi/pkg/converter"
	"github.com/JustJoshinDev/TextToMidi/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	outputFile string
	bpm        int
	program    int
	serverPort int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "texttomidi",
	Short: "Compile text music notation into MIDI files",
	Long: `texttomidi compiles a simple line-oriented music notation into
standard MIDI files.

Each non-blank line is one chord or rest:

  notes duration [velocity]

where notes is a comma-separated list of note tokens (C4, Bb3, F#5, ...)
or R/Rest, duration is in beats, and velocity is an optional 0-127
integer (default 64).

Examples:
  texttomidi convert song.txt -o song.mid --bpm 120
  texttomidi check song.txt
  texttomidi tui
  texttomidi serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var convertCmd = &cobra.Command{
	Use:   "convert <input.txt>",
	Short: "Compile a notation file to MIDI",
	Long:  `Reads a notation text file, compiles it and writes the MIDI file.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var checkCmd = &cobra.Command{
	Use:   "check <input.txt>",
	Short: "Parse a notation file and report problems",
	Long:  `Parses a notation text file without writing MIDI, printing the event count and every skipped line or dropped token.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().IntVarP(&bpm, "bpm", "b", converter.DefaultBPM, "Tempo in beats per minute")

	// Convert command
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path")
	convertCmd.Flags().IntVarP(&program, "program", "p", 0, "MIDI program/instrument number (0-127)")

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	// Add commands
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func getOutputPath(input string) string {
	if outputFile != "" {
		return outputFile
	}
	return converter.DefaultOutputPath(input)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input)

	comp := converter.NewCompiler()
	comp.Program = uint8(program)

	fmt.Printf("Converting %s -> %s (bpm %d)\n", input, output, bpm)
	if err := comp.ConvertFile(input, output, bpm); err != nil {
		return err
	}
	fmt.Println("Conversion complete!")
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	input := args[0]

	comp := converter.NewCompiler()
	score, err := comp.CheckFile(input, bpm)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d event(s)\n", input, len(score.Events))
	for _, d := range score.Diagnostics {
		fmt.Printf("  line %d: %s (%q)\n", d.Line, d.Reason, d.Token)
	}
	if len(score.Diagnostics) == 0 {
		fmt.Println("No problems found.")
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
