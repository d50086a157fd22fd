// Package task defines named command-list tasks and a sequential runner.
// External tools (git, poetry, flake8, isort, autopep8) are invoked as
// opaque commands; the interesting work lives in the Go func actions.
package task

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Action is one step of a task: either an external command (Argv) or a Go
// function (Func). Exactly one of the two is set.
type Action struct {
	Name string
	Argv []string
	Func func() error
}

// Cmd builds a command action from an argv list.
func Cmd(argv ...string) Action {
	return Action{Name: strings.Join(argv, " "), Argv: argv}
}

// Fn builds a function action with a short description for logging.
func Fn(name string, fn func() error) Action {
	return Action{Name: name, Func: fn}
}

// Task is a named, ordered list of actions. Actions run strictly
// sequentially and the task stops at the first failure.
type Task struct {
	Name    string
	Actions []Action
}

// Runner executes tasks in a working directory.
type Runner struct {
	Logger  *log.Logger
	WorkDir string
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewRunner creates a runner that streams command output to the process
// stdout/stderr.
func NewRunner(logger *log.Logger, workDir string) *Runner {
	return &Runner{
		Logger:  logger,
		WorkDir: workDir,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Run executes all actions of the task in order.
func (r *Runner) Run(ctx context.Context, t Task) error {
	r.Logger.Info("Running task", "task", t.Name, "actions", len(t.Actions))
	for _, action := range t.Actions {
		if err := r.runAction(ctx, t.Name, action); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runAction(ctx context.Context, taskName string, action Action) error {
	if action.Func != nil {
		r.Logger.Debug("Running action", "task", taskName, "action", action.Name)
		if err := action.Func(); err != nil {
			return fmt.Errorf("task %s: %s: %w", taskName, action.Name, err)
		}
		return nil
	}

	if len(action.Argv) == 0 {
		return fmt.Errorf("task %s: action %q has no command or function", taskName, action.Name)
	}

	cmd := exec.CommandContext(ctx, action.Argv[0], action.Argv[1:]...)
	cmd.Dir = r.WorkDir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	r.Logger.Info("Running command", "task", taskName, "command", action.Name)
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("task %s: %s: exit code %d", taskName, action.Name, exitErr.ExitCode())
		}
		return fmt.Errorf("task %s: %s: %w", taskName, action.Name, err)
	}
	return nil
}
