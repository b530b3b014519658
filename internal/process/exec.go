package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"slices"
	"syscall"
	"time"
)

// ErrStart indicates the command could not be started (binary missing, bad
// working directory, permission denied).
var ErrStart = errors.New("process: start failed")

// ExecRunner runs commands with os/exec and buffers stdout and stderr.
type ExecRunner struct{}

// NewExecRunner returns the default Runner.
func NewExecRunner() *ExecRunner { return &ExecRunner{} }

func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...) //nolint:gosec // argv comes from harness configuration, never a shell string
	cmd.Dir = c.Dir
	cmd.Env = environ(c.Env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitStatus = ExitStatus(exitErr)
		return res, nil
	}
	res.ExitStatus = -1
	return res, fmt.Errorf("%w: %s: %w", ErrStart, c.Name, err)
}

// ExecSpawner starts commands with inherited stdin, stdout and stderr and
// waits for them.
//
// While the child runs, signals in Relay are forwarded to it and signals in
// Absorb are caught and dropped. A terminal interrupt already reaches the
// child through the process group, so it is absorbed rather than sent twice.
// Cancelling ctx sends SIGTERM to the child. Either way the child's own exit
// status is what Spawn reports.
type ExecSpawner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Relay  []os.Signal
	Absorb []os.Signal
}

// NewExecSpawner returns a Spawner wired to the process's standard streams.
// SIGTERM and SIGHUP sent to the harness are relayed; SIGINT is absorbed.
func NewExecSpawner() *ExecSpawner {
	return &ExecSpawner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Relay:  []os.Signal{syscall.SIGTERM, syscall.SIGHUP},
		Absorb: []os.Signal{os.Interrupt},
	}
}

func (s *ExecSpawner) Spawn(ctx context.Context, c Command) (int, error) {
	cmd := exec.Command(c.Name, c.Args...) //nolint:gosec // argv is assembled from discrete tokens
	cmd.Dir = c.Dir
	cmd.Env = environ(c.Env)
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	// Registered before Start so nothing sent while the child runs can
	// terminate the harness first.
	sigs := make(chan os.Signal, 4)
	if watched := append(append([]os.Signal{}, s.Relay...), s.Absorb...); len(watched) > 0 {
		signal.Notify(sigs, watched...)
		defer signal.Stop(sigs)
	}

	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("%w: %s: %w", ErrStart, c.Name, err)
	}

	done := make(chan struct{})
	relayed := make(chan struct{})
	go func() {
		defer close(relayed)
		s.relay(ctx, cmd.Process, sigs, done)
	}()

	err := cmd.Wait()
	close(done)
	<-relayed

	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ExitStatus(exitErr), nil
	}
	return -1, fmt.Errorf("wait for %s: %w", c.Name, err)
}

func (s *ExecSpawner) relay(ctx context.Context, proc *os.Process, sigs <-chan os.Signal, done <-chan struct{}) {
	cancelled := ctx.Done()
	for {
		select {
		case <-done:
			return
		case <-cancelled:
			_ = proc.Signal(syscall.SIGTERM)
			cancelled = nil
		case sig := <-sigs:
			if slices.Contains(s.Relay, sig) {
				_ = proc.Signal(sig)
			}
		}
	}
}

// ExitStatus extracts the status a shell would report: the exit code, or
// 128+signal for a child killed by a signal.
func ExitStatus(exitErr *exec.ExitError) int {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return exitErr.ExitCode()
}

func environ(extra []string) []string {
	if len(extra) == 0 {
		return nil // inherit
	}
	return append(os.Environ(), extra...)
}
