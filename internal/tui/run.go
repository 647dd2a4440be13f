package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Geun-Oh/ctxlog/internal/entry"
	"github.com/Geun-Oh/ctxlog/internal/filter"
	"github.com/Geun-Oh/ctxlog/internal/source"
	"github.com/Geun-Oh/ctxlog/internal/window"
)

// Run starts the browser over src with window size size.
// This function blocks until the user quits.
func Run(ctx context.Context, src source.Source, size int) error {
	// Stop the source when the browser exits.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	buf, err := window.New[entry.LogEntry](size)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	ch, err := src.Start(ctx)
	if err != nil {
		return fmt.Errorf("tui: start source: %w", err)
	}
	levelled := window.SourceFunc[entry.LogEntry](func() (entry.LogEntry, bool) {
		e, ok := <-ch
		if ok && e.Level == entry.LevelUnknown {
			e.Level = filter.DetectLevel(e.Message)
		}
		return e, ok
	})
	if err := buf.Bind(levelled); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	program := tea.NewProgram(NewBrowser(buf, src.Name()), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}
