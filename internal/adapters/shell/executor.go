// Package shell provides an os/exec based executor for compiler and generator tools.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/ccdrive/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Run starts the command, waits for it and returns its captured output.
//
// Stdout is streamed to the logger line by line unless the command captures it.
// Stderr is held back: on success it is logged as warnings, on failure it is
// returned in the result so the caller can report it.
func (e *Executor) Run(ctx context.Context, cmd domain.Command) (domain.CommandResult, error) {
	if len(cmd.Args) == 0 {
		res := domain.CommandResult{ExitCode: -1}
		return res, zerr.With(zerr.Wrap(domain.ErrToolInvocationFailed, "empty command"), "step", cmd.Step)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	stdoutLog := &logWriter{logger: e.logger, level: "info"}

	var stdout io.Writer = &stdoutBuf
	if !cmd.CaptureStdout {
		stdout = io.MultiWriter(&stdoutBuf, stdoutLog)
	}

	name := cmd.Args[0]
	cmdEnv := resolveEnvironment(os.Environ(), cmd.Env)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args[1:]...) //nolint:gosec // toolchain provided command
	if len(c.Args) > 0 {
		c.Args[0] = name
	}
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	c.Env = cmdEnv
	c.Stdout = stdout
	c.Stderr = &stderrBuf

	err := c.Run()
	_ = stdoutLog.Close()

	res := domain.CommandResult{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
		}
		return res, zerr.With(zerr.Wrap(err, "command failed"), "exit_code", res.ExitCode)
	}

	stderrLog := &logWriter{logger: e.logger, level: "warn"}
	_, _ = stderrLog.Write(stderrBuf.Bytes())
	_ = stderrLog.Close()

	return res, nil
}

type logWriter struct {
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		w.logLine(w.buf[:i])
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
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}

	switch w.level {
	case "info":
		w.logger.Info(msg)
	case "warn":
		w.logger.Warn(msg)
	default:
		w.logger.Error(zerr.New(msg))
	}
}

// resolveEnvironment merges the process environment with the command overrides.
// Compilers need the full environment (LIBRARY_PATH, SDKROOT, CCACHE_DIR, ...).
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
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
