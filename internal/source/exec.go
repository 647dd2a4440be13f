package source

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Geun-Oh/ctxlog/internal/entry"
)

// ExecSource executes a command and streams its stdout/stderr as LogEntry values.
type ExecSource struct {
	name    string
	command string
	args    []string
	parse   func(string) (time.Time, string, bool)
	seq     atomic.Uint64
}

// NewExecSource creates a source that runs the given command with arguments.
func NewExecSource(command string, args []string) *ExecSource {
	return &ExecSource{
		name:    fmt.Sprintf("exec:%s", command),
		command: command,
		args:    args,
	}
}

// NewDockerSource reads a container's logs through `docker logs`.
func NewDockerSource(container string, follow bool) *ExecSource {
	args := []string{"logs"}
	if follow {
		args = append(args, "--follow")
	}
	args = append(args, "--timestamps", container)

	s := NewExecSource("docker", args)
	s.name = fmt.Sprintf("docker:%s", container)
	s.parse = parseDockerTimestamp
	return s
}

// Name returns the source identifier.
func (s *ExecSource) Name() string {
	return s.name
}

// Args returns the command line the source runs.
func (s *ExecSource) Args() []string {
	return append([]string{s.command}, s.args...)
}

// Start executes the command and returns a channel of log entries.
// The channel is closed when the command exits or ctx is cancelled.
func (s *ExecSource) Start(ctx context.Context) (<-chan entry.LogEntry, error) {
	cmd := exec.CommandContext(ctx, s.command, s.args...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start command: %w", err)
	}

	ch := make(chan entry.LogEntry, chanSize)
	var wg sync.WaitGroup
	wg.Add(2)

	for stream, pipe := range map[string]io.Reader{"stdout": stdoutPipe, "stderr": stderrPipe} {
		sc := lineScanner{stream: stream, source: s.name, seq: &s.seq, now: time.Now, parse: s.parse}
		go func() {
			defer wg.Done()
			sc.scan(ctx, pipe, ch)
		}()
	}

	go func() {
		wg.Wait()
		_ = cmd.Wait()
		close(ch)
	}()

	return ch, nil
}
