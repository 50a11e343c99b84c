package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/cencenelec"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Collector cencenelec.Collector
	Documents cencenelec.DocumentService
	NewStore  func(dir string) cencenelec.DocumentStore

	Downloader cencenelec.Downloader
	NewDriver  func(dir string) cencenelec.Driver
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `env:"CENCENELEC_DB" help:"SQLite database path (default ~/.cencenelec/cencenelec.db)"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Collect  CollectCmd  `cmd:"" help:"Run a collection pass and print found documents"`
	Download DownloadCmd `cmd:"" help:"Download a publication with a browser and wait for the file"`
	Docs     DocsCmd     `cmd:"" help:"List stored documents"`
}

// CollectCmd is the "collect" subcommand.
type CollectCmd struct {
	Delay  time.Duration `default:"500ms" env:"CENCENELEC_DELAY" help:"Pause after each found document"`
	Save   bool          `short:"s" help:"Store documents in the database"`
	Export string        `short:"e" type:"path" help:"Export documents as Markdown into a cen&cenelec subdirectory of this directory"`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	Dir             string        `arg:"" type:"path" help:"Download directory"`
	URL             string        `arg:"" help:"Publication URL"`
	Timeout         time.Duration `default:"5m" help:"Give up if the file has not appeared (0 waits forever)"`
	Poll            time.Duration `default:"1s" help:"Interval between file checks"`
	PageLoadTimeout time.Duration `default:"40s" help:"Page load timeout"`
	Retries         int           `default:"0" help:"Navigation retries with 1s, 2s, 4s... backoff"`
	Headful         bool          `help:"Show the browser window"`
	Chrome          string        `env:"CENCENELEC_CHROME" help:"Chrome binary to launch"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Limit  int    `short:"n" default:"0" help:"Maximum number of documents (0 for all)"`
	Offset int    `help:"Number of documents to skip"`
	Sort   string `default:"created_at" enum:"created_at,pub_date" help:"Sort order (created_at, pub_date)"`
}
