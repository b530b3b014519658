// Package process runs external tools as discrete argument vectors, either
// capturing their output (build tools) or handing the terminal over to them
// (the target program). Nothing here goes through a shell.
package process

import (
	"context"
	"strings"
	"time"
)

// Command is one external tool invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env is appended to the current environment.
	Env []string
}

// Argv returns the full argument vector, program name first.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Name)
	return append(argv, c.Args...)
}

// String renders the command for logs only; it is never executed in this form.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// Result is the captured outcome of a finished command.
type Result struct {
	ExitStatus int
	Stdout     []byte
	Stderr     []byte
	Duration   time.Duration
}

// Success reports whether the command exited with status zero.
func (r Result) Success() bool { return r.ExitStatus == 0 }

// Runner runs a command to completion and captures its output in full.
//
// A non-zero exit status is not an error: it is reported in Result. The error
// return is reserved for commands that could not be started or waited on.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Spawner runs a command attached to the current process's standard streams
// and returns its exit status.
type Spawner interface {
	Spawn(ctx context.Context, cmd Command) (int, error)
}
