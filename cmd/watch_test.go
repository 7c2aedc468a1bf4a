package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umlgarden/umlgarden/internal/ui"
)

func TestWatchTargets(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.py")
	b := filepath.Join(dir, "sub", "b.py")

	targets, dirs, err := watchTargets([]string{a, b, a})
	require.NoError(t, err)

	assert.Len(t, targets, 2)
	assert.True(t, targets[a])
	assert.Equal(t, []string{dir, filepath.Join(dir, "sub")}, dirs)
}

func TestIsRelevantEvent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.py")
	targets := map[string]bool{target: true}

	assert.True(t, isRelevantEvent(fsnotify.Event{Name: target, Op: fsnotify.Write}, targets))
	assert.True(t, isRelevantEvent(fsnotify.Event{Name: target, Op: fsnotify.Create}, targets))
	assert.False(t, isRelevantEvent(fsnotify.Event{Name: target, Op: fsnotify.Chmod}, targets))
	assert.False(t, isRelevantEvent(fsnotify.Event{Name: filepath.Join(dir, "other.py"), Op: fsnotify.Write}, targets))
}

func TestRunWatch_RegeneratesOnWrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "zoo.py")
	require.NoError(t, os.WriteFile(src, []byte("class Zoo:\n    pass\n"), 0644))

	cfg := testConfig()
	cfg.Watch.Debounce = 20 * time.Millisecond

	runs := make(chan struct{}, 10)
	regenerate := func() { runs <- struct{}{} }

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, cfg, []string{src}, regenerate, discardLogger(), ui.NewPlainPrinter(&out))
	}()

	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("initial generation did not run")
	}

	require.NoError(t, os.WriteFile(src, []byte("class Zoo:\n    def open(self):\n        pass\n"), 0644))

	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("change did not trigger regeneration")
	}

	cancel()
	require.NoError(t, <-done)
	assert.Contains(t, out.String(), "Watching 1 file(s)\n")
}

func TestWatchRenderer(t *testing.T) {
	cfg := testConfig()
	cfg.Render.Command = "umlgarden-missing-renderer"

	var out bytes.Buffer
	p := ui.NewPlainPrinter(&out)

	assert.Nil(t, watchRenderer(cfg, false, p))
	assert.Contains(t, out.String(), "Rendering disabled: umlgarden-missing-renderer is not installed")

	out.Reset()
	assert.Nil(t, watchRenderer(cfg, true, p))
	assert.Empty(t, out.String())
}

func TestWatchRenderer_Available(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script renderer is POSIX only")
	}
	bin := filepath.Join(t.TempDir(), "fake-plantuml")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\nexit 0\n"), 0755))

	cfg := testConfig()
	cfg.Render.Command = bin

	assert.NotNil(t, watchRenderer(cfg, false, ui.NewPlainPrinter(io.Discard)))
}
