package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cencenelec"
	"github.com/fwojciec/cencenelec/collect"
	"github.com/fwojciec/cencenelec/fs"
	"github.com/fwojciec/cencenelec/rod"
	locslog "github.com/fwojciec/cencenelec/slog"
	"github.com/fwojciec/cencenelec/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the document service.
	DB *sqlite.DB

	// Browser shared by download handles.
	Browser *rod.BrowserManager
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program. Every resource is closed even if an
// earlier one fails.
func (m *Main) Close() error {
	var errs []error
	if m.Browser != nil {
		errs = append(errs, m.Browser.Close())
	}
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cencenelec"),
		kong.Description("Harvest publications from the CEN/CENELEC standards portal"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cencenelec --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	deps.Logger = newLogger(stderr, cli.Verbose)

	switch kongCtx.Command() {
	case "collect":
		deps.Collector = collect.NewCollector(
			locslog.NewLoggingSource(collect.NewStaticSource(), deps.Logger),
			collect.WithDelay(cli.Collect.Delay),
			collect.WithLogger(deps.Logger),
		)
		deps.NewStore = func(dir string) cencenelec.DocumentStore {
			return fs.NewExporter(dir, cencenelec.SourceName)
		}
		if cli.Collect.Save {
			if err := m.openDB(cli.DB, deps, stderr); err != nil {
				return err
			}
		}

	case "docs":
		if err := m.openDB(cli.DB, deps, stderr); err != nil {
			return err
		}

	case "download <dir> <url>":
		opts := []rod.ManagerOption{rod.WithHeadless(!cli.Download.Headful)}
		if cli.Download.Chrome != "" {
			opts = append(opts, rod.WithBrowserBin(cli.Download.Chrome))
		}
		m.Browser, err = rod.NewBrowserManager(opts...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		deps.NewDriver = func(dir string) cencenelec.Driver {
			return rod.NewLoggingDriver(rod.NewDriver(m.Browser, dir), deps.Logger)
		}

		completer := fs.NewDownloadCompleter()
		completer.PageLoadTimeout = cli.Download.PageLoadTimeout
		completer.PollInterval = cli.Download.Poll
		completer.Timeout = cli.Download.Timeout
		completer.RetryDelays = fs.BackoffDelays(cli.Download.Retries)
		deps.Downloader = locslog.NewLoggingDownloader(completer, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// openDB opens the database at path and wires the document service.
func (m *Main) openDB(path string, deps *Dependencies, stderr io.Writer) error {
	if path == "" {
		path = defaultDBPath()
	}

	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CENCENELEC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}

	deps.Documents = locslog.NewLoggingDocumentService(sqlite.NewDocumentService(m.DB), deps.Logger)
	return nil
}

// newLogger returns a text logger on w. Debug records are enabled by verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cencenelec.db"
	}
	dir := filepath.Join(home, ".cencenelec")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "cencenelec.db")
}
