package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/shlex"

	"github.com/jpvetterli/argparse"
	"github.com/jpvetterli/argparse/manifest"
)

// errRejected is returned when the checked arguments have errors. The
// report has already shown them.
var errRejected = errors.New("arguments rejected")

// CLI is the command line interface of argcheck.
type CLI struct {
	Log logConfig `embed:"" group:"log" prefix:"log-"`

	Manifest string   `arg:"" help:"Flag definitions (.yaml, .yml or .toml)." type:"existingfile"`
	Args     []string `arg:"" help:"Arguments to check, without the program name." optional:""`

	Line   string `help:"Check a command line, split like a shell does, instead of ARGS." short:"l"`
	Output string `default:"text" enum:"text,yaml,json" help:"Report format." short:"o"`
	Color  bool   `default:"true" help:"Colorize the text report." negatable:""`
}

type logConfig struct {
	Level  string `default:"warn" enum:"debug,info,warn,error" help:"Set log level."`
	Format string `default:"text" enum:"text,json"             help:"Set log format."`
}

func (c logConfig) logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// run parses the argcheck command line and checks the arguments. Kong calls
// exit after printing help or a usage error.
func run(
	ctx context.Context,
	stdout, stderr io.Writer,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name("argcheck"),
		kong.Description("Check command line arguments against flag definitions."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, stderr),
		kong.ExplicitGroups([]kong.Group{{Key: "log", Title: "Logging options"}}),
	)
	if err != nil {
		return err
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	log := cli.Log.logger(stderr)
	log.DebugContext(ctx, "logger initialized",
		slog.String("level", cli.Log.Level),
		slog.String("format", cli.Log.Format),
	)

	return cli.check(ctx, stdout, log)
}

// check loads the manifest, parses the arguments and writes the report.
func (c *CLI) check(ctx context.Context, w io.Writer, log *slog.Logger) error {
	m, err := manifest.Load(c.Manifest)
	if err != nil {
		return err
	}
	a, err := m.Parser()
	if err != nil {
		return fmt.Errorf("%s: %w", c.Manifest, err)
	}
	a.SetLogger(log.With(slog.String("manifest", c.Manifest)))

	program := m.ProgramName()
	argv := append([]string{program}, c.Args...)
	if len(c.Line) > 0 {
		if argv, err = shlex.Split(c.Line); err != nil {
			return fmt.Errorf("cannot split command line: %w", err)
		}
		// the first word of the line is the program
		if len(argv) > 0 {
			program = argv[0]
		}
	}
	err = a.Parse(argv)

	var rejected argparse.Errors
	if err != nil && !errors.As(err, &rejected) {
		return err
	}

	log.InfoContext(ctx, "arguments parsed",
		slog.String("program", program),
		slog.Int("errors", len(rejected)),
	)

	rep := newReport(program, a)
	if err := rep.write(w, c.Output, c.Color); err != nil {
		return err
	}
	if len(rejected) > 0 {
		return fmt.Errorf("%w: %d error(s)", errRejected, len(rejected))
	}
	return nil
}
