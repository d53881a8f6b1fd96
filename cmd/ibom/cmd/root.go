package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ibom",
	Short: "ibom - Interactive HTML BOM generator for KiCad boards",
	Long: `ibom converts a KiCad board into a single HTML page with an
interactive bill of materials: grouped components, their references and
footprints, per board side.

Examples:
  ibom generate board.kicad_pcb               # write bom/ibom.html and open it
  ibom generate board.kicad_pcb --no-browser  # write only
  ibom generate board.kicad_pcb --json -v     # also write ibom.json, debug logging`,
	Version:      "0.1.0",
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger creates a logger with short timestamps writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
