package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name      string
		sysEnv    []string
		overrides map[string]string
		expected  []string
	}{
		{
			name:     "system only",
			sysEnv:   []string{"USER=test", "PATH=/bin", "LIBRARY_PATH=/opt/lib"},
			expected: []string{"LIBRARY_PATH=/opt/lib", "PATH=/bin", "USER=test"},
		},
		{
			name:      "override",
			sysEnv:    []string{"USER=test", "PATH=/bin"},
			overrides: map[string]string{"USER": "ccdrive", "CCACHE_DIR": "/tmp/cc"},
			expected:  []string{"CCACHE_DIR=/tmp/cc", "PATH=/bin", "USER=ccdrive"},
		},
		{
			name:     "malformed entries skipped",
			sysEnv:   []string{"NOEQUALS", "A=1=2"},
			expected: []string{"A=1=2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveEnvironment(tt.sysEnv, tt.overrides))
		})
	}
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "mycc")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755)) //nolint:gosec // test executable
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notexec"), []byte("x"), 0o600))

	got, err := lookPath("mycc", []string{"PATH=" + dir})
	require.NoError(t, err)
	assert.Equal(t, exe, got)

	_, err = lookPath("notexec", []string{"PATH=" + dir})
	require.Error(t, err)

	_, err = lookPath("mycc", nil)
	require.Error(t, err)
}

type recordingLogger struct {
	infos, warns []string
	errors       []error
}

func (r *recordingLogger) Info(msg string) { r.infos = append(r.infos, msg) }
func (r *recordingLogger) Warn(msg string) { r.warns = append(r.warns, msg) }
func (r *recordingLogger) Error(err error) { r.errors = append(r.errors, err) }

func TestLogWriter(t *testing.T) {
	rec := &recordingLogger{}
	w := &logWriter{logger: rec, level: "warn"}

	_, _ = w.Write([]byte("first\r\nsec"))
	_, _ = w.Write([]byte("ond\n\nthird"))
	_ = w.Close()

	assert.Equal(t, []string{"first", "second", "third"}, rec.warns)

	w = &logWriter{logger: rec, level: "error"}
	_, _ = w.Write([]byte("bad\n"))
	require.Len(t, rec.errors, 1)
	assert.Equal(t, "bad", rec.errors[0].Error())
}
