package process

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if err := CheckExecutable("sh"); err != nil {
		t.Skip(err)
	}
}

func TestExecRunner_Success(t *testing.T) {
	skipWithoutShell(t)

	var stdout, stderr bytes.Buffer
	r := NewExecRunner(nil)
	err := r.Run(context.Background(), []string{"sh", "-c", "echo out; echo err >&2"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	skipWithoutShell(t)

	var stderr bytes.Buffer
	r := NewExecRunner(nil)
	err := r.Run(context.Background(), []string{"sh", "-c", "echo broken reference >&2; exit 3"}, nil, &stderr)
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode)
	assert.Equal(t, "broken reference", exitErr.Stderr)
	assert.Contains(t, err.Error(), "exited with status 3")
	assert.Equal(t, "broken reference\n", stderr.String(), "stderr still streamed to the sink")
}

func TestExecRunner_NoShellInterpretation(t *testing.T) {
	skipWithoutShell(t)

	var stdout bytes.Buffer
	r := NewExecRunner(nil)
	require.NoError(t, r.Run(context.Background(), []string{"echo", "$HOME;", "|", "x"}, &stdout, nil))
	assert.Equal(t, "$HOME; | x\n", stdout.String())
}

func TestExecRunner_MissingBinary(t *testing.T) {
	r := NewExecRunner(nil)
	err := r.Run(context.Background(), []string{"definitely-not-a-real-engine-binary"}, nil, nil)
	require.Error(t, err)
	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
}

func TestExecRunner_EmptyCommand(t *testing.T) {
	err := NewExecRunner(nil).Run(context.Background(), nil, nil, nil)
	assert.EqualError(t, err, "empty command")
}

func TestTailBuffer(t *testing.T) {
	tb := &tailBuffer{max: 8}
	tb.Write([]byte("0123456789"))
	assert.Equal(t, "23456789", tb.String())
	tb.Write([]byte("ab"))
	assert.Equal(t, "456789ab", tb.String())
}

func TestStreams_AppendsToLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")
	require.NoError(t, os.WriteFile(logPath, []byte("existing\n"), 0644))

	stdout, stderr, closeFn, err := Streams{LogFile: logPath}.Open()
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, stdout)
	_, err = stderr.Write([]byte("engine line\n"))
	require.NoError(t, err)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, "existing\nengine line\n", string(data))
}

func TestStreams_Capture(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")

	stdout, stderr, closeFn, err := Streams{LogFile: logPath, Capture: true}.Open()
	require.NoError(t, err)
	stdout.Write([]byte("out\n"))
	stderr.Write([]byte("err\n"))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "out\nerr\n"))
}

func TestStreams_Inherited(t *testing.T) {
	stdout, stderr, closeFn, err := Streams{}.Open()
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, stdout)
	assert.Equal(t, os.Stderr, stderr)
	assert.NoError(t, closeFn())
}
