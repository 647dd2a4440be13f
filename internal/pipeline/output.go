package pipeline

import (
	"fmt"

	"github.com/Geun-Oh/ctxlog/internal/circular"
	"github.com/Geun-Oh/ctxlog/internal/entry"
	"github.com/Geun-Oh/ctxlog/internal/filter"
	"github.com/Geun-Oh/ctxlog/internal/sink"
)

// output writes hunks either straight to the sinks or into a tail list that
// is written once at the end.
type output struct {
	sinks []sink.Sink
	tail  *circular.List[entry.Line]
}

func newOutput(cfg *Config) (*output, error) {
	o := &output{sinks: cfg.Sinks}
	if cfg.Tail < 0 {
		return nil, fmt.Errorf("pipeline: negative tail %d", cfg.Tail)
	}
	if cfg.Tail > 0 {
		tail, err := circular.New[entry.Line](cfg.Tail, cfg.TailMode)
		if err != nil {
			return nil, fmt.Errorf("pipeline: tail: %w", err)
		}
		o.tail = tail
	}
	return o, nil
}

func (o *output) hunk(h filter.Hunk) error {
	if o.tail != nil {
		for _, l := range h.Lines {
			o.tail.Append(l)
		}
		return nil
	}

	if h.Gap {
		for _, s := range o.sinks {
			if err := s.Separator(); err != nil {
				return fmt.Errorf("pipeline: write to %s: %w", s.Name(), err)
			}
		}
	}
	for i := range h.Lines {
		if err := o.write(&h.Lines[i]); err != nil {
			return err
		}
	}
	return nil
}

func (o *output) finish() error {
	if o.tail == nil {
		return nil
	}
	for _, l := range o.tail.All() {
		if err := o.write(&l); err != nil {
			return err
		}
	}
	return nil
}

func (o *output) write(l *entry.Line) error {
	for _, s := range o.sinks {
		if err := s.Write(l); err != nil {
			return fmt.Errorf("pipeline: write to %s: %w", s.Name(), err)
		}
	}
	return nil
}
