package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/uzudt/config"
)

const (
	exitOK          = 0
	exitError       = 1
	exitHalted      = 2
	exitInterrupted = 130
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

// env is the state shared by all commands.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	ui     UI
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, ui)
	stop()

	os.Exit(code)
}

func run(ctx context.Context, args []string, ui UI) int {
	err := newApp(ui).RunContext(ctx, args)
	if err == nil {
		return exitOK
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		if msg := ec.Error(); msg != "" {
			fprintErr(ui.Err, ec)
		}
		return ec.ExitCode()
	}

	fprintErr(ui.Err, err)
	return exitError
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "uzudt: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:      "uzudt",
		Usage:     "build an auto-annotated Uzbek dependency treebank",
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file (default ./uzudt.yaml)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log diagnostics to stderr",
			},
		},
		// exit codes are mapped in run
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			annotateCommand(ui),
			downloadCommand(ui),
			metadataCommand(ui),
			categoriesCommand(ui),
			editCommand(ui),
			sampleCommand(ui),
			statCommand(ui),
			versionCommand(ui),
		},
	}
}

// setup loads the configuration and builds the diagnostic logger.
func setup(c *cli.Context, ui UI) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(ui.Err, cfg.Log.Level, c.Bool("verbose"))
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, ui: ui}, nil
}

func newLogger(w io.Writer, level string, verbose bool) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	// without --verbose only warnings and errors reach the terminal
	if verbose {
		l = min(l, slog.LevelDebug)
	} else {
		l = max(l, slog.LevelWarn)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}
