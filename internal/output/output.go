// Package output writes the generated BOM artifacts and opens them.
package output

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/OpenTraceLab/ibom/pkg/ibom/pcbdata"
)

// Template placeholders. Templates without CSS or script placeholders are
// used as they are.
const (
	PlaceholderCSS     = "///CSS///"
	PlaceholderPCBData = "///PCBDATA///"
	PlaceholderScript  = "///IBOMJS///"
)

// JSONName is the file name of the raw document written next to the HTML.
const JSONName = "ibom.json"

//go:embed web
var web embed.FS

// Options controls which artifacts Write produces.
type Options struct {
	Template  string // HTML template path, empty for the built-in one
	WriteJSON bool   // also write JSONName next to the HTML file
}

// Writer writes documents to disk.
type Writer struct {
	opts   Options
	logger *log.Logger
}

// NewWriter returns a writer. A nil logger discards diagnostics.
func NewWriter(opts Options, logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Writer{opts: opts, logger: logger}
}

// Write renders doc into the HTML file at path, creating its directory,
// and returns the path written.
func (w *Writer) Write(path string, doc *pcbdata.Document) (string, error) {
	tmpl, err := w.template()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	html, err := Render(tmpl, data)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	w.logger.Info("Created file", "path", path)

	if w.opts.WriteJSON {
		jsonPath := filepath.Join(filepath.Dir(path), JSONName)
		if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", jsonPath, err)
		}
		w.logger.Info("Created file", "path", jsonPath)
	}

	return path, nil
}

func (w *Writer) template() (string, error) {
	if w.opts.Template == "" {
		return DefaultTemplate()
	}
	data, err := os.ReadFile(w.opts.Template)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return string(data), nil
}

// DefaultTemplate returns the built-in viewer page.
func DefaultTemplate() (string, error) {
	data, err := web.ReadFile("web/ibom.html")
	if err != nil {
		return "", fmt.Errorf("failed to load built-in template: %w", err)
	}
	return string(data), nil
}

// Render fills a template with the built-in stylesheet and script and the
// encoded document. The document goes in last so its text is never
// searched for placeholders.
func Render(tmpl string, pcbdataJSON []byte) (string, error) {
	if !strings.Contains(tmpl, PlaceholderPCBData) {
		return "", fmt.Errorf("template lacks the %s placeholder", PlaceholderPCBData)
	}

	for _, asset := range []struct{ placeholder, file string }{
		{PlaceholderCSS, "web/ibom.css"},
		{PlaceholderScript, "web/ibom.js"},
	} {
		if !strings.Contains(tmpl, asset.placeholder) {
			continue
		}
		content, err := web.ReadFile(asset.file)
		if err != nil {
			return "", fmt.Errorf("failed to load %s: %w", asset.file, err)
		}
		tmpl = strings.ReplaceAll(tmpl, asset.placeholder, string(content))
	}

	return strings.Replace(tmpl, PlaceholderPCBData, "var pcbdata = "+string(pcbdataJSON), 1), nil
}

// startCommand launches a detached process.
var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// OpenBrowser opens a file with the desktop's default handler.
func OpenBrowser(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return startCommand("open", abs)
	case "linux", "freebsd", "openbsd", "netbsd":
		return startCommand("xdg-open", abs)
	case "windows":
		return startCommand("cmd", "/c", "start", "", abs)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
