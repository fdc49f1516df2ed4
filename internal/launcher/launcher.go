// Package launcher starts the engine process and decides whether the
// settings UI should run in front of it.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// SkipFlag marks an engine start that must bypass the settings UI.
const SkipFlag = "--launch"

// DefaultExe is the engine executable name.
const DefaultExe = "diva.exe"

// ErrAlreadyRunning is returned by Launch when the engine process exists.
var ErrAlreadyRunning = errors.New("engine is already running")

// ShouldShowLauncher reports whether the UI runs for a process started with
// args. Any argument equal to SkipFlag disables it.
func ShouldShowLauncher(args []string) bool {
	return !slices.Contains(args, SkipFlag)
}

// Engine is the game executable the launcher fronts.
type Engine struct {
	Dir    string
	Exe    string
	Logger *slog.Logger
}

func (e *Engine) exe() string {
	if e.Exe == "" {
		return DefaultExe
	}
	return e.Exe
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// Path is the full path of the executable.
func (e *Engine) Path() string {
	return filepath.Join(e.Dir, e.exe())
}

// Command builds the engine invocation, always carrying SkipFlag so the
// engine does not show the launcher again.
func (e *Engine) Command() *exec.Cmd {
	cmd := exec.Command(e.Path(), SkipFlag)
	cmd.Dir = e.Dir
	detach(cmd)
	return cmd
}

// Launch starts the engine detached from this process and returns without
// waiting for it.
func (e *Engine) Launch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	running, err := e.Running(ctx)
	if err != nil {
		e.logger().Warn("could not check for a running engine", "error", err)
	}
	if running {
		return ErrAlreadyRunning
	}

	cmd := e.Command()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}

	e.logger().Info("started engine", "path", cmd.Path, "pid", cmd.Process.Pid)

	return cmd.Process.Release()
}

// Running reports whether a process with the engine's executable name exists.
func (e *Engine) Running(ctx context.Context) (bool, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list processes: %w", err)
	}

	want := e.exe()
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if strings.EqualFold(name, want) {
			return true, nil
		}
	}

	return false, nil
}

// EntryHook sits in front of the engine's entry point. Intercept either
// calls show to run the settings UI or lets the engine continue.
type EntryHook interface {
	Intercept(ctx context.Context, show func() error) error
}

// DirectHook is the in-process EntryHook used when the launcher is started
// as its own executable. With SkipFlag in Args it launches the engine
// without showing anything.
type DirectHook struct {
	Args   []string
	Engine *Engine
}

func (h DirectHook) Intercept(ctx context.Context, show func() error) error {
	if ShouldShowLauncher(h.Args) {
		return show()
	}
	return h.Engine.Launch(ctx)
}
