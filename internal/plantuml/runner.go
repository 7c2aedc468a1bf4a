// Package plantuml runs the external PlantUML renderer on a generated diagram.
package plantuml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultCommand is the renderer binary looked up on PATH.
const DefaultCommand = "plantuml"

// DefaultTimeout bounds a single render.
const DefaultTimeout = 60 * time.Second

// ErrRendererNotFound is returned when the renderer binary is not on PATH.
var ErrRendererNotFound = errors.New("plantuml renderer not found")

// Runner invokes the renderer as a subprocess.
type Runner struct {
	Command string
	Args    []string
	Timeout time.Duration
}

// NewRunner creates a runner for command with extra args placed before the input path.
func NewRunner(command string, args []string, timeout time.Duration) *Runner {
	if command == "" {
		command = DefaultCommand
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{Command: command, Args: args, Timeout: timeout}
}

// Available reports whether the renderer binary can be found.
func (r *Runner) Available() bool {
	_, err := exec.LookPath(r.Command)
	return err == nil
}

// Render runs the renderer on pumlPath. The image is written next to it by
// the renderer itself.
func (r *Runner) Render(ctx context.Context, pumlPath string) error {
	bin, err := exec.LookPath(r.Command)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRendererNotFound, r.Command)
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	args := append(append([]string{}, r.Args...), pumlPath)
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("render %s: %w: %s", pumlPath, err, msg)
		}
		return fmt.Errorf("render %s: %w", pumlPath, err)
	}
	return nil
}
