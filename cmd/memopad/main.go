// Package main provides the memopad application: a small memo pad that runs
// entirely in the terminal, either as a full screen TUI or as a line-oriented
// command interface.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/memopad/pkg/config"
	"github.com/entrhq/memopad/pkg/controller"
	"github.com/entrhq/memopad/pkg/executor/cli"
	"github.com/entrhq/memopad/pkg/executor/tui"
	"github.com/entrhq/memopad/pkg/logging"
	"github.com/entrhq/memopad/pkg/memo"
	"github.com/entrhq/memopad/pkg/storage"
)

const version = "0.1.0" // Version of memopad

// options holds the command line flags
type options struct {
	ConfigPath  string
	CLI         bool
	Backend     string
	DataPath    string
	ShowVersion bool
	InitConfig  bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if opts.ShowVersion {
		fmt.Printf("memopad v%s\n", version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "memopad: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// parseFlags parses args into options. Usage and errors go to stderr.
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("memopad", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to the YAML configuration file (default: ~/.memopad/config.yaml)")
	fs.BoolVar(&opts.CLI, "cli", false, "Use the line-oriented interface instead of the TUI")
	fs.StringVar(&opts.Backend, "backend", "", "Storage backend override: file, sqlite or memory")
	fs.StringVar(&opts.DataPath, "data", "", "Storage path override")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Show version and exit")
	fs.BoolVar(&opts.InitConfig, "init-config", false, "Write the default configuration file and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "memopad - a terminal memo pad\n\n")
		fmt.Fprintf(stderr, "Usage: memopad [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  memopad                                  # Start the TUI\n")
		fmt.Fprintf(stderr, "  memopad -backend sqlite -data memos.db\n")
		fmt.Fprintf(stderr, "  printf 'add buy milk\\nlist\\n' | memopad -cli\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

// loadConfig reads the configuration file and applies flag overrides
func loadConfig(opts *options) (*config.Config, string, error) {
	path := opts.ConfigPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, "", err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}

	if opts.Backend != "" {
		cfg.Storage.Backend = opts.Backend
	}
	if opts.DataPath != "" {
		cfg.Storage.Path = opts.DataPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// run wires storage, the controller and the selected executor, then blocks
// until the executor returns.
func run(ctx context.Context, opts *options, stdin io.Reader, stdout io.Writer) error {
	cfg, path, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	if opts.InitConfig {
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote %s\n", path)
		return nil
	}

	logging.SetDirectory(cfg.Logging.Dir)
	logger, err := logging.NewLogger("memopad")
	if err != nil {
		// NewLogger falls back to stderr, which would corrupt the TUI
		logger = logging.New("memopad", io.Discard)
	}
	defer logger.Close()
	logger.Infof("starting memopad v%s (backend=%s)", version, cfg.Storage.Backend)

	kv, err := cfg.OpenKV()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	if closer, ok := kv.(io.Closer); ok {
		defer closer.Close()
	}

	adapter := storage.NewAdapter(kv, cfg.Storage.Key, logger.With("storage"))
	repo := memo.NewRepository(adapter, memo.WithMaxContentLength(cfg.Memos.MaxContentLength))
	ctl := controller.New(repo, nil, controller.WithLogger(logger.With("controller")))

	if opts.CLI {
		executor := cli.NewExecutor(ctl, repo, cli.WithReader(stdin), cli.WithWriter(stdout))
		return executor.Run(ctx)
	}

	executor := tui.NewExecutor(ctl,
		tui.WithLogger(logger.With("tui")),
		tui.WithMouse(cfg.UI.Mouse),
		tui.WithAltScreen(cfg.UI.AltScreen),
	)
	if err := executor.Run(ctx); err != nil {
		return fmt.Errorf("executor error: %w", err)
	}
	return nil
}
