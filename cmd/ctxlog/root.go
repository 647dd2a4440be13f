package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Geun-Oh/ctxlog/internal/circular"
	"github.com/Geun-Oh/ctxlog/internal/entry"
	"github.com/Geun-Oh/ctxlog/internal/filter"
	"github.com/Geun-Oh/ctxlog/internal/logging"
	"github.com/Geun-Oh/ctxlog/internal/monitor"
	"github.com/Geun-Oh/ctxlog/internal/pipeline"
	"github.com/Geun-Oh/ctxlog/internal/sink"
	"github.com/Geun-Oh/ctxlog/internal/source"
	"github.com/Geun-Oh/ctxlog/internal/tui"
)

type sourceOptions struct {
	file   string
	follow bool
	docker string
}

type options struct {
	src sourceOptions

	keywords   []string
	regexes    []string
	excludes   []string
	levels     []string
	ignoreCase bool
	all        bool

	before  int
	after   int
	context int

	format    string
	output    string
	color     bool
	stats     bool
	verbose   bool
	tail      int
	tailMode  string
	spike     float64
	spikeSpan time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "ctxlog [flags] [-- command [args...]]",
		Short: "ctxlog filters log lines and prints bounded context around matches",
		Long: `ctxlog reads log lines from stdin, a file, a Docker container or a command,
keeps only a fixed window of lines in memory, and prints every match together
with the lines before and after it, like grep -B/-A.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.src.file, "file", "f", "", "read from a file instead of stdin")
	pf.BoolVar(&opts.src.follow, "follow", false, "keep reading as the file or container grows")
	pf.StringVar(&opts.src.docker, "docker", "", "read logs of a Docker container")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")

	f := root.Flags()
	f.StringArrayVarP(&opts.keywords, "keyword", "k", nil, "match lines containing the keyword (repeatable)")
	f.StringArrayVarP(&opts.regexes, "regex", "e", nil, "match lines against a regular expression (repeatable)")
	f.StringArrayVarP(&opts.excludes, "exclude", "x", nil, "drop lines containing the pattern (repeatable)")
	f.StringSliceVarP(&opts.levels, "level", "l", nil, "match lines at these levels, e.g. error,warn")
	f.BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "case-insensitive keywords")
	f.BoolVar(&opts.all, "all", false, "require every filter to match instead of any")
	f.IntVarP(&opts.before, "before", "B", 0, "lines of context before each match")
	f.IntVarP(&opts.after, "after", "A", 0, "lines of context after each match")
	f.IntVarP(&opts.context, "context", "C", 0, "lines of context before and after each match")
	f.StringVar(&opts.format, "format", "text", "output format: text or json")
	f.StringVarP(&opts.output, "output", "o", "", "also append output to a file")
	f.BoolVar(&opts.color, "color", true, "colorize terminal output")
	f.BoolVar(&opts.stats, "stats", false, "print a summary when input ends")
	f.IntVar(&opts.tail, "tail", 0, "print only the last N output lines once input ends")
	f.StringVar(&opts.tailMode, "tail-mode", "floating", "tail eviction: floating (FIFO) or slot (round-robin slots)")
	f.Float64Var(&opts.spike, "spike", 0, "warn when matches per second exceed this multiple of the average (0 disables)")
	f.DurationVar(&opts.spikeSpan, "spike-window", 10*time.Second, "averaging window for --spike")

	root.AddCommand(newBrowseCmd(opts))
	return root
}

func newBrowseCmd(opts *options) *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "browse [flags] [-- command [args...]]",
		Short: "step through the input one window at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := buildSource(opts.src, args)
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return tui.Run(ctx, src, size)
		},
	}
	cmd.Flags().IntVarP(&size, "window", "w", 11, "window size; context of (size-1)/2 lines either side")
	return cmd
}

func runPipeline(cmd *cobra.Command, opts *options, args []string) error {
	log, err := logging.New(opts.verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	src, err := buildSource(opts.src, args)
	if err != nil {
		return err
	}
	chain, err := buildChain(opts)
	if err != nil {
		return err
	}
	sinks, err := buildSinks(opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	tailMode, err := circular.ParseMode(opts.tailMode)
	if err != nil {
		return err
	}

	before, after := opts.before, opts.after
	if !cmd.Flags().Changed("before") {
		before = opts.context
	}
	if !cmd.Flags().Changed("after") {
		after = opts.context
	}

	cfg := &pipeline.Config{
		Source:    src,
		Filters:   chain,
		Sinks:     sinks,
		Before:    before,
		After:     after,
		Tail:      opts.tail,
		TailMode:  tailMode,
		Stats:     monitor.NewStats(),
		ShowStats: opts.stats,
		Summary:   cmd.OutOrStdout(),
		Logger:    log,
	}
	if opts.spike > 0 {
		cfg.Rate = monitor.NewRateDetector(opts.spikeSpan, opts.spike)
	}

	log.Debug("filters", zap.String("chain", chain.Name()))

	ctx, stop := signalContext(cmd.Context())
	defer stop()
	return pipeline.Run(ctx, cfg)
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// buildSource picks the input: a command after "--", a Docker container, a
// file, or stdin.
func buildSource(opts sourceOptions, args []string) (source.Source, error) {
	set := 0
	for _, on := range []bool{len(args) > 0, opts.docker != "", opts.file != ""} {
		if on {
			set++
		}
	}
	if set > 1 {
		return nil, fmt.Errorf("choose one input: a command, --docker or --file")
	}

	switch {
	case len(args) > 0:
		return source.NewExecSource(args[0], args[1:]), nil
	case opts.docker != "":
		return source.NewDockerSource(opts.docker, opts.follow), nil
	case opts.file != "":
		return source.NewFileSource(opts.file, opts.follow), nil
	default:
		return source.NewStdinSource(), nil
	}
}

// buildChain combines the match filters. Exclusions always apply, so with
// --all off they are chained with AND around the OR of the match filters.
func buildChain(opts *options) (*filter.Chain, error) {
	mode := filter.MatchAny
	if opts.all {
		mode = filter.MatchAll
	}
	matches := filter.NewChain(mode)

	for _, k := range opts.keywords {
		if opts.ignoreCase {
			matches.Add(filter.NewFoldedKeywordFilter(k))
		} else {
			matches.Add(filter.NewKeywordFilter(k))
		}
	}
	for _, r := range opts.regexes {
		if opts.ignoreCase && !strings.HasPrefix(r, "(?i)") {
			r = "(?i)" + r
		}
		f, err := filter.NewRegexFilter(r)
		if err != nil {
			return nil, err
		}
		matches.Add(f)
	}
	if len(opts.levels) > 0 {
		levels := make([]entry.Level, 0, len(opts.levels))
		for _, name := range opts.levels {
			l := entry.ParseLevel(name)
			if l == entry.LevelUnknown {
				return nil, fmt.Errorf("unknown level %q", name)
			}
			levels = append(levels, l)
		}
		matches.Add(filter.NewLevelFilter(levels...))
	}

	if len(opts.excludes) == 0 {
		return matches, nil
	}
	chain := filter.NewChain(filter.MatchAll, filter.NewExcludeFilter(opts.excludes...))
	if matches.Len() > 0 {
		chain.Add(matches)
	}
	return chain, nil
}

func buildSinks(opts *options, out io.Writer) ([]sink.Sink, error) {
	var sinks []sink.Sink
	switch opts.format {
	case "text":
		sinks = append(sinks, sink.NewTerminalSink(out, opts.color))
	case "json":
		sinks = append(sinks, sink.NewJSONSink(out))
	default:
		return nil, fmt.Errorf("unknown format %q (want text or json)", opts.format)
	}

	if opts.output != "" {
		fs, err := sink.NewFileSink(opts.output, opts.format)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, fs)
	}
	return sinks, nil
}
