package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/ibom/internal/config"
	"github.com/OpenTraceLab/ibom/internal/output"
	"github.com/OpenTraceLab/ibom/pkg/ibom"
	"github.com/OpenTraceLab/ibom/pkg/ibom/board/kicad"
)

var (
	noBrowser    bool
	destDir      string
	configFile   string
	writeJSON    bool
	templateFile string
)

// openBrowser is replaced in tests.
var openBrowser = output.OpenBrowser

var generateCmd = &cobra.Command{
	Use:   "generate <board_file>",
	Short: "Generate the interactive BOM of a board",
	Long: `Reads a KiCad board file (.kicad_pcb, KiCad 4 or later) and writes the
interactive BOM page, by default to bom/ibom.html next to the board.

The board must have an outline on the Edge.Cuts layer.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(&noBrowser, "no-browser", false, "don't launch the browser")
	generateCmd.Flags().StringVar(&destDir, "dest-dir", "", "output directory, relative to the board file unless absolute")
	generateCmd.Flags().StringVar(&configFile, "config", "", "configuration file (.toml, .yaml)")
	generateCmd.Flags().BoolVar(&writeJSON, "json", false, "also write the document as ibom.json")
	generateCmd.Flags().StringVar(&templateFile, "template", "", "HTML template with a ///PCBDATA/// placeholder")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	filename := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level := cfg.Level()
	if verbose {
		level = log.DebugLevel
	}
	logger := newLogger(cmd.ErrOrStderr(), level)

	if info, err := os.Stat(filename); err != nil || info.IsDir() {
		return fmt.Errorf("file %s does not exist", filename)
	}
	path, err := filepath.Abs(filename)
	if err != nil {
		return fmt.Errorf("invalid board path: %w", err)
	}

	logger.Info("Loading board", "file", path)
	b, err := kicad.Open(path, logger)
	if err != nil {
		return err
	}

	doc, err := ibom.Generate(b, logger)
	if err != nil {
		return fmt.Errorf("error generating BOM: %w", err)
	}

	w := output.NewWriter(output.Options{
		Template:  cfg.Template,
		WriteJSON: cfg.WriteJSON,
	}, logger)
	written, err := w.Write(cfg.OutputPath(path), doc)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), written)

	if cfg.OpenBrowser {
		logger.Info("Opening file in browser")
		if err := openBrowser(written); err != nil {
			logger.Warn("Could not open browser", "err", err)
		}
	}
	return nil
}

// loadConfig merges the defaults, the optional config file and the flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("no-browser") {
		cfg.OpenBrowser = !noBrowser
	}
	if flags.Changed("dest-dir") {
		cfg.OutputDir = destDir
	}
	if flags.Changed("json") {
		cfg.WriteJSON = writeJSON
	}
	if flags.Changed("template") {
		cfg.Template = templateFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
