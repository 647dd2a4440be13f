package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Geun-Oh/ctxlog/internal/entry"
	"github.com/Geun-Oh/ctxlog/internal/sink"
	"github.com/Geun-Oh/ctxlog/internal/source"
)

func TestBuildSource(t *testing.T) {
	src, err := buildSource(sourceOptions{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "stdin", src.Name())

	src, err = buildSource(sourceOptions{file: "app.log"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "file:app.log", src.Name())

	src, err = buildSource(sourceOptions{docker: "web", follow: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"docker", "logs", "--follow", "--timestamps", "web"}, src.(*source.ExecSource).Args())

	src, err = buildSource(sourceOptions{}, []string{"make", "test"})
	require.NoError(t, err)
	assert.Equal(t, "exec:make", src.Name())

	_, err = buildSource(sourceOptions{file: "a.log"}, []string{"make"})
	assert.Error(t, err)
}

func TestBuildChain(t *testing.T) {
	chain, err := buildChain(&options{keywords: []string{"timeout"}, levels: []string{"error"}})
	require.NoError(t, err)
	assert.True(t, chain.Match(&entry.LogEntry{Message: "client timeout"}))
	assert.True(t, chain.Match(&entry.LogEntry{Message: "ERROR disk"}))
	assert.False(t, chain.Match(&entry.LogEntry{Message: "INFO ok"}))

	chain, err = buildChain(&options{keywords: []string{"GET"}, excludes: []string{"/healthz"}})
	require.NoError(t, err)
	assert.True(t, chain.Match(&entry.LogEntry{Message: "GET /api"}))
	assert.False(t, chain.Match(&entry.LogEntry{Message: "GET /healthz"}))
	assert.False(t, chain.Match(&entry.LogEntry{Message: "POST /api"}))

	chain, err = buildChain(&options{regexes: []string{"fail"}, ignoreCase: true})
	require.NoError(t, err)
	assert.True(t, chain.Match(&entry.LogEntry{Message: "FAILED"}))

	_, err = buildChain(&options{levels: []string{"loud"}})
	assert.Error(t, err)
	_, err = buildChain(&options{regexes: []string{"("}})
	assert.Error(t, err)
}

func TestBuildSinks(t *testing.T) {
	var buf bytes.Buffer
	sinks, err := buildSinks(&options{format: "json"}, &buf)
	require.NoError(t, err)
	require.Len(t, sinks, 1)
	assert.IsType(t, &sink.JSONSink{}, sinks[0])

	_, err = buildSinks(&options{format: "xml"}, &buf)
	assert.Error(t, err)
}

func TestRootCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	lines := []string{"start", "INFO warmup", "ERROR first", "INFO a", "INFO b", "INFO c", "INFO d", "ERROR second"}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--file", path, "--level", "error", "-C", "1", "--color=false"})
	require.NoError(t, cmd.Execute())

	got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, got, 6)
	assert.True(t, strings.HasPrefix(got[0], "2-"))
	assert.True(t, strings.HasPrefix(got[1], "3:"))
	assert.True(t, strings.HasSuffix(got[1], "ERROR first"))
	assert.True(t, strings.HasPrefix(got[2], "4-"))
	assert.Equal(t, "--", got[3])
	assert.True(t, strings.HasPrefix(got[4], "7-"))
	assert.True(t, strings.HasPrefix(got[5], "8:"))
}

func TestRootCommand_Tail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\nd\n"), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--file", path, "--tail", "2", "--format", "json"})
	require.NoError(t, cmd.Execute())

	got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, got, 2)
	assert.Contains(t, got[0], `"message":"c"`)
	assert.Contains(t, got[1], `"message":"d"`)
}

func TestRootCommand_BadTailMode(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--file", "unused.log", "--tail-mode", "lru"})
	assert.Error(t, cmd.Execute())
}
