// Package main is the entry point for sheetstorm, a terminal spreadsheet
// for exploring tabular data.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/sheetstorm/internal/app"
	"github.com/dshills/sheetstorm/internal/renderer/backend"
	"github.com/dshills/sheetstorm/internal/source"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	flagConfig    string
	flagWatch     bool
	flagKeymap    string
	flagDebug     bool
	flagReadOnly  bool
	flagDelimiter string
	flagFiletype  string
	flagEncoding  string
	flagLogFile   string
	flagLogLevel  string
)

// errReported marks a failure already printed to stderr.
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:   "sheetstorm [files...]",
	Short: "Explore tabular data in the terminal",
	Long: `sheetstorm opens delimited text, JSON, YAML, SQLite and plain text files
as sheets. The last file given is shown first; standard input is read when
it is not a terminal.

Examples:
  sheetstorm sales.csv
  sheetstorm -d '|' export.txt
  ps aux | sheetstorm -d ' '`,
	Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), args)
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagConfig, "config", "c", "", "options file (TOML)")
	f.BoolVar(&flagWatch, "watch", false, "reload the options file when it changes")
	f.StringVar(&flagKeymap, "keymap", "", "key binding overrides (TOML)")
	f.BoolVar(&flagDebug, "debug", false, "stop on uncaught errors")
	f.BoolVar(&flagReadOnly, "readonly", false, "disallow cell and column edits")
	f.StringVarP(&flagDelimiter, "delimiter", "d", "", "field separator for delimited text")
	f.StringVarP(&flagFiletype, "filetype", "f", "", "format of every source, overriding file extensions")
	f.StringVar(&flagEncoding, "encoding", "", "text encoding of sources")
	f.StringVar(&flagLogFile, "log-file", "", "write logs to this file")
	f.StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	logger, closeLog, err := openLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	app.SetLogger(logger)

	srcOpts := source.Options{
		Filetype:  flagFiletype,
		Delimiter: flagDelimiter,
		Encoding:  flagEncoding,
	}
	sheets, err := openSources(ctx, args, os.Stdin, srcOpts)
	if err != nil {
		return err
	}
	if len(sheets) == 0 {
		return errors.New("no input: give a file or pipe data to standard input")
	}

	application, err := app.New(app.Options{
		ConfigPath: flagConfig,
		Watch:      flagWatch,
		KeymapPath: flagKeymap,
		Debug:      flagDebug,
		ReadOnly:   flagReadOnly,
		Version:    version,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer application.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := application.SetBackend(term); err != nil {
		return err
	}

	for _, sh := range sheets {
		application.Push(sh)
		if _, err := application.Load(ctx, sh); err != nil {
			logger.Warn("load %s: %v", sh.Name(), err)
		}
	}

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err := application.LastError(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return errReported
	}
	return nil
}

// openLogger builds the logger from --log-file and --log-level. The
// terminal owns stdout and stderr, so without a file logs are discarded.
func openLogger() (*app.Logger, func(), error) {
	cfg := app.DefaultLoggerConfig()
	cfg.Level = app.ParseLogLevel(flagLogLevel)
	closeFn := func() {}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		cfg.Output = f
		closeFn = func() { _ = f.Close() }
	} else {
		cfg.Output = io.Discard
	}
	return app.NewLogger(cfg), closeFn, nil
}
