package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/ccdrive/internal/adapters/logger"
	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Info("compile src/a.cc")

	g := goldie.New(t)
	g.Assert(t, "info_basic", buf.Bytes())
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("library search paths reset")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name: "zerr chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("root cause"), "middle layer"),
				"outer layer",
			),
			goldenName: "error_chain",
		},
		{
			name: "tool failure",
			err: func() error {
				err := zerr.Wrap(errors.Join(domain.ErrCompilationFailed, errors.New("exit status 1")), "compile x.cc\nx.cc:1:1: error: boom")
				err = zerr.With(err, "argv", "g++ -c x.cc")
				err = zerr.With(err, "exit_code", 1)
				return zerr.With(err, "source", "x.cc")
			}(),
			goldenName: "error_tool_failure",
		},
		{
			name: "failed build step",
			err: func() error {
				tool := zerr.Wrap(errors.Join(domain.ErrCompilationFailed, errors.New("exit status 1")), "compile x.cc\nx.cc:1:1: error: boom")
				tool = zerr.With(tool, "argv", "g++ -c x.cc")
				tool = zerr.With(tool, "exit_code", 1)
				tool = zerr.With(tool, "source", "x.cc")
				return zerr.With(zerr.Wrap(tool, domain.ErrBuildExecutionFailed.Error()), "step", "compile")
			}(),
			goldenName: "error_build_step",
		},
		{
			name: "sorted metadata keys",
			err: func() error {
				e := zerr.New("toolchain check failed")
				e = zerr.With(e, "zebra", "z")
				e = zerr.With(e, "alpha", "a")
				return zerr.With(e, "key", "build.compiler.cc")
			}(),
			goldenName: "error_metadata_sorted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_SetJSON_KeepsToolAttrs(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	err := zerr.With(zerr.With(zerr.New("link failed"), "argv", "g++ -o demo a.o"), "exit_code", 2)
	lg.Error(zerr.With(zerr.Wrap(err, "build execution failed"), "step", "link"))

	out := buf.String()
	assert.Contains(t, out, `"step":"link"`)
	assert.Contains(t, out, `"argv":"g++ -o demo a.o"`)
	assert.Contains(t, out, `"exit_code":2`)
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String(), "Expected no output for nil error")
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(zerr.With(zerr.New("link failed"), "output", "build/bin/wvrgcal"))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error":"link failed"`)
	assert.Contains(t, out, `"output":"build/bin/wvrgcal"`)
	assert.NotContains(t, out, "✗")

	buf.Reset()
	lg.SetJSON(false)
	lg.Info("back to pretty")
	assert.Equal(t, "back to pretty\n", buf.String())
}

func TestLogger_SetPlain(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("COLORTERM", "truecolor")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	lg.SetPlain(true)

	lg.Warn("plain")
	assert.Equal(t, "! plain\n", buf.String())
}
