package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3"
	"go.abhg.dev/docpack/internal/example"
	"go.abhg.dev/docpack/internal/flagvalue"
	"go.abhg.dev/docpack/internal/jsdoc"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// _envPrefix is the prefix for environment variables
// that may be used in place of flags.
const _envPrefix = "DOCPACK"

// params holds all arguments for docpack.
type params struct {
	version bool
	help    Help

	Raw        bool
	Parser     []flagvalue.KeyValue
	Selector   string
	DetectLang bool

	Out   string
	Jobs  int
	Watch bool
	Debug flagvalue.FileSwitch

	Files []string
}

// parserOptions builds the comment parser configuration
// from the -parser flags.
func (p *params) parserOptions() (jsdoc.Options, error) {
	var opts jsdoc.Options
	for _, o := range p.Parser {
		if err := opts.Set(o.Key, o.Value); err != nil {
			return opts, fmt.Errorf("-parser %v: %w", o.String(), err)
		}
	}
	return opts, nil
}

// cliParser parses the command line arguments for docpack.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("docpack", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		DefaultHelp.Write(cmd.Stderr)
	}

	var p params

	// Extraction:
	flag.BoolVar(&p.Raw, "raw", false, "")
	flag.Var(flagvalue.ListOf(&p.Parser), "parser", "")
	flag.StringVar(&p.Selector, "selector", example.DefaultSelector, "")
	flag.BoolVar(&p.DetectLang, "detect-lang", false, "")

	// Output:
	flag.StringVar(&p.Out, "out", "-", "")
	flag.IntVar(&p.Jobs, "j", 4, "")
	flag.BoolVar(&p.Watch, "watch", false, "")

	// Program-level:
	flag.String("config", "", "")
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()
	err := ff.Parse(flag, args,
		ff.WithEnvVarPrefix(_envPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		fmt.Fprintln(cmd.Stderr, err)
		return nil, err
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "docpack", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		var h Help
		if err := h.Set(args[0]); err == nil {
			p.help = h
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	// Reject unknown parser options before any work is done.
	if _, err := p.parserOptions(); err != nil {
		fmt.Fprintln(cmd.Stderr, err)
		return nil, errInvalidArguments
	}

	p.Files = args
	if len(p.Files) == 0 {
		fmt.Fprintln(cmd.Stderr, "Please provide at least one file.")
		UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}

	return p, nil
}
