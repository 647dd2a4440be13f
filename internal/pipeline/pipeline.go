// Package pipeline orchestrates Source → Window → Filter → Sink processing.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Geun-Oh/ctxlog/internal/circular"
	"github.com/Geun-Oh/ctxlog/internal/entry"
	"github.com/Geun-Oh/ctxlog/internal/filter"
	"github.com/Geun-Oh/ctxlog/internal/logging"
	"github.com/Geun-Oh/ctxlog/internal/monitor"
	"github.com/Geun-Oh/ctxlog/internal/sink"
	"github.com/Geun-Oh/ctxlog/internal/source"
	"github.com/Geun-Oh/ctxlog/internal/window"
)

// Config holds pipeline configuration.
type Config struct {
	Source  source.Source
	Filters *filter.Chain // nil or empty matches every line
	Sinks   []sink.Sink

	// Before and After are the context lines printed around each match.
	Before int
	After  int

	// Tail > 0 keeps only the last Tail output lines and writes them once
	// the source is exhausted.
	Tail     int
	TailMode circular.Mode

	Stats     *monitor.Stats
	Rate      *monitor.RateDetector // optional spike detection on matches
	ShowStats bool
	Summary   io.Writer // defaults to os.Stdout
	Logger    *zap.Logger
}

// Run executes the pipeline: reads from source, filters, and writes to sinks.
// Blocks until the source is exhausted or ctx is cancelled.
func Run(ctx context.Context, cfg *Config) error {
	if cfg.Source == nil {
		return errors.New("pipeline: source is required")
	}
	if len(cfg.Sinks) == 0 {
		return errors.New("pipeline: at least one sink is required")
	}
	// Cancelling on return stops the source when a stage fails early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	stats := cfg.Stats
	if stats == nil {
		stats = monitor.NewStats()
	}
	defer closeSinks(cfg.Sinks, log)

	cc, err := filter.NewContext(cfg.Filters, cfg.Before, cfg.After)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	buf, err := window.New[entry.LogEntry](cc.WindowSize())
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	out, err := newOutput(cfg)
	if err != nil {
		return err
	}

	ch, err := cfg.Source.Start(ctx)
	if err != nil {
		return fmt.Errorf("pipeline: start source: %w", err)
	}
	if err := buf.Bind(annotate(window.FromChannel(ch), stats)); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	log.Debug("pipeline started",
		zap.String("source", cfg.Source.Name()),
		zap.Int("window", buf.Size()),
		zap.Int("before", cfg.Before),
		zap.Int("after", cfg.After),
		zap.Int("tail", cfg.Tail),
	)

	for w := range buf.All() {
		hunk, ok, err := cc.Process(w)
		if err != nil {
			return fmt.Errorf("pipeline: position %d: %w", w.Position(), err)
		}
		if !ok {
			continue
		}

		for _, l := range hunk.Lines {
			if !l.Match {
				continue
			}
			stats.RecordMatch()
			if cfg.Rate != nil && cfg.Rate.Record() {
				log.Warn("match rate spike",
					zap.Float64("rate", cfg.Rate.CurrentRate()),
					zap.Int64("last_second", cfg.Rate.LatestSecondRate()),
				)
			}
		}

		if err := out.hunk(hunk); err != nil {
			return err
		}
		stats.RecordEmitted(len(hunk.Lines))
	}

	if err := out.finish(); err != nil {
		return err
	}

	log.Debug("pipeline finished",
		zap.Uint64("lines", stats.Total()),
		zap.Uint64("matches", stats.Matched()),
		zap.Uint64("emitted", stats.Emitted()),
		zap.Duration("elapsed", stats.Elapsed()),
	)

	if cfg.ShowStats {
		w := cfg.Summary
		if w == nil {
			w = os.Stdout
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, stats.Summary())
	}
	return nil
}

// annotate counts every line pulled from src and fills in a detected level.
func annotate(src window.Source[entry.LogEntry], stats *monitor.Stats) window.Source[entry.LogEntry] {
	return window.SourceFunc[entry.LogEntry](func() (entry.LogEntry, bool) {
		e, ok := src.Next()
		if !ok {
			return e, false
		}
		stats.RecordLine()
		if e.Level == entry.LevelUnknown {
			e.Level = filter.DetectLevel(e.Message)
		}
		return e, true
	})
}

func closeSinks(sinks []sink.Sink, log *zap.Logger) {
	for _, s := range sinks {
		if err := s.Flush(); err != nil {
			log.Warn("flush sink", zap.String("sink", s.Name()), zap.Error(err))
		}
		if err := s.Close(); err != nil {
			log.Warn("close sink", zap.String("sink", s.Name()), zap.Error(err))
		}
	}
}
