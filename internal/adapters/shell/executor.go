// Package shell runs the external stylesheet compiler and transform engine.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/prerender/internal/core/domain"
	"go.trai.ch/prerender/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor runs external commands with the toolchain environment applied.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// invocation describes one external command run.
type invocation struct {
	argv  []string
	dir   string
	tools domain.Toolchain
	// stdout receives standard output. Nil streams it to the debug log.
	stdout io.Writer
}

// run executes inv and waits for it to finish.
// Standard error is buffered: it becomes part of the error on failure and is
// logged as warnings on success.
//
// The environment is merged with the following priority (low to high):
// 1. os.Environ() (System base)
// 2. tools.Path (prepended to PATH)
// 3. tools.Environment (User-defined overrides)
func (e *Executor) run(ctx context.Context, inv invocation) error {
	if len(inv.argv) == 0 || inv.argv[0] == "" {
		return domain.ErrEmptyCommand
	}

	name := inv.argv[0]
	args := inv.argv[1:]

	cmdEnv := resolveEnvironment(os.Environ(), inv.tools.Path, inv.tools.Environment)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command

	// Keep the name as invoked in Args[0].
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}

	cmd.Dir = inv.dir
	cmd.Env = cmdEnv

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	debug := &logWriter{logger: e.logger}
	if inv.stdout != nil {
		cmd.Stdout = inv.stdout
	} else {
		cmd.Stdout = debug
	}

	err := cmd.Run()
	debug.Flush()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		cause := err
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			cause = zerr.Wrap(err, msg)
		}
		return zerr.With(zerr.With(zerr.Wrap(cause, "command failed"), "exit_code", exitCode), "command", name)
	}

	for _, line := range splitLines(stderr.String()) {
		e.logger.Warn(line)
	}

	return nil
}

// logWriter forwards complete lines to the debug log.
type logWriter struct {
	logger ports.Logger
	mu     sync.Mutex
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logger.Debug(strings.TrimSuffix(string(w.buf[:i]), "\r"))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush logs any trailing partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.logger.Debug(string(w.buf))
		w.buf = nil
	}
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\r\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// resolveEnvironment merges environment variables with the defined priority.
func resolveEnvironment(sysEnv, toolPath []string, overrides map[string]string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	if len(toolPath) > 0 {
		prefix := strings.Join(toolPath, string(os.PathListSeparator))
		if sysPath := envMap["PATH"]; sysPath != "" {
			envMap["PATH"] = prefix + string(os.PathListSeparator) + sysPath
		} else {
			envMap["PATH"] = prefix
		}
	}

	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
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
