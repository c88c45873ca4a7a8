// Package shell provides a pty-backed executor for running toolchain commands.
package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/zerr"
)

// Process represents a running command.
type Process interface {
	Wait() error
}

type ptyProcess struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	ioDone <-chan struct{}
}

func (p *ptyProcess) Wait() error {
	// Wait for the command to exit, then for the IO copy loop to drain
	// whatever the pty still buffers.
	err := p.cmd.Wait()

	<-p.ioDone

	return err
}

// Executor implements ports.Executor using os/exec and pty.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Start launches the command in a PTY and returns a Process to wait on.
// Output is streamed line-buffered into the structured logger and raw into
// the provided writers.
func (e *Executor) Start(
	ctx context.Context,
	command []string,
	dir string,
	env []string,
	stdout, stderr io.Writer,
) (Process, error) {
	// Combined writers:
	// 1. Structural Logger (info/error)
	// 2. Output Writers (Span, log file, etc.)
	stdoutLog := &logWriter{logger: e.logger, level: "info"}
	stderrLog := &logWriter{logger: e.logger, level: "error"}

	finalStdout := io.MultiWriter(stdoutLog, stdout)
	finalStderr := io.MultiWriter(stderrLog, stderr)

	return start(ctx, command, dir, env, finalStdout, finalStderr, stdoutLog, stderrLog)
}

func start(
	ctx context.Context,
	command []string,
	dir string,
	env []string,
	stdout, _ io.Writer,
	stdoutLog, stderrLog *logWriter,
) (Process, error) {
	if len(command) == 0 {
		return nil, nil
	}

	name := command[0]
	args := command[1:]

	// Construct the final environment
	cmdEnv := resolveEnvironment(os.Environ(), env)

	// Resolve the executable path against the merged PATH
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command

	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}

	if dir != "" {
		cmd.Dir = dir
	}

	cmd.Env = cmdEnv

	// pty.Start allows running with a PTY
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to start pty")
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		// Ensure any remaining buffered logs are flushed when IO is done
		defer func() {
			_ = stdoutLog.Close()
			_ = stderrLog.Close()
		}()

		// The PTY merges stdout and stderr into a single stream; io.Copy
		// moves it through the MultiWriter into the logger and the sink.
		_, _ = io.Copy(stdout, ptmx)
	}()

	return &ptyProcess{
		cmd:    cmd,
		ptmx:   ptmx,
		ioDone: ioDone,
	}, nil
}

// Execute runs the command and waits for it to complete.
func (e *Executor) Execute(ctx context.Context, command []string, dir string, env []string, stdout, stderr io.Writer) error {
	proc, err := e.Start(ctx, command, dir, env, stdout, stderr)
	if err != nil {
		return err
	}
	if proc == nil {
		return nil // Empty command
	}

	if err := proc.Wait(); err != nil {
		// Capture exit code if possible
		var exitCode int
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}

	return nil
}

type logWriter struct {
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	// Scan for newlines
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		line := w.buf[:i]
		w.logLine(line)

		// Advance buffer
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := string(line)
	// PTYs may introduce \r. Remove it.
	msg = strings.TrimSuffix(msg, "\r")

	if w.level == "info" {
		w.logger.Info(msg)
	} else {
		w.logger.Error(zerr.New(msg))
	}
}

// allowListedEnvVars are the system environment variables that are allowed to
// be inherited by toolchain commands. This keeps synthesis hermetic and
// reproducible while basic system tools keep working.
var allowListedEnvVars = map[string]struct{}{
	"HOME": {},
	"TERM": {},
	"USER": {},
	"PATH": {},
}

// resolveEnvironment merges environment variables with the defined priority.
func resolveEnvironment(sysEnv, vendorEnv []string) []string {
	// 1. Start with System Environment (Allow-list only)
	envMap := filterSystemEnv(sysEnv)

	// 2. Apply Vendor Environment (Prepend PATH)
	applyVendorEnv(envMap, vendorEnv)

	// Convert to slice
	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

func filterSystemEnv(sysEnv []string) map[string]string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			if _, allowed := allowListedEnvVars[k]; allowed {
				envMap[k] = v
			}
		}
	}
	return envMap
}

func applyVendorEnv(envMap map[string]string, vendorEnv []string) {
	for _, entry := range vendorEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			if k == "PATH" {
				if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
					envMap[k] = v + string(os.PathListSeparator) + sysPath
				} else {
					envMap[k] = v
				}
			} else {
				envMap[k] = v
			}
		}
	}
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env.
func lookPath(file string, env []string) (string, error) {
	// Find PATH in env
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
