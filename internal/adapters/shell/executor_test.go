package shell_test

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ccdrive/internal/adapters/shell"
	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/ccdrive/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestExecutor_Run_StreamsStdout(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	gomock.InOrder(
		logger.EXPECT().Info("line1"),
		logger.EXPECT().Info("line2"),
	)

	executor := shell.NewExecutor(logger)
	cmd := domain.NewCommand("test", "sh", "-c", "echo line1; echo line2")
	cmd.Dir = t.TempDir()

	res, err := executor.Run(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\n", res.Stdout)
	assert.Zero(t, res.ExitCode)
}

func TestExecutor_Run_FragmentedOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info("part1part2")

	executor := shell.NewExecutor(logger)
	res, err := executor.Run(context.Background(), domain.NewCommand("test", "sh", "-c", "printf part1; sleep 0.1; echo part2"))
	require.NoError(t, err)
	assert.Equal(t, "part1part2\n", res.Stdout)
}

func TestExecutor_Run_CaptureStdout(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := shell.NewExecutor(mocks.NewMockLogger(ctrl))

	cmd := domain.NewCommand("capture", "sh", "-c", "printf 'task_a task_b'")
	cmd.CaptureStdout = true

	res, err := executor.Run(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "task_a task_b", res.Stdout)
}

func TestExecutor_Run_StderrWarnsOnSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn("warning: unused variable")

	executor := shell.NewExecutor(logger)
	res, err := executor.Run(context.Background(), domain.NewCommand("test", "sh", "-c", "echo 'warning: unused variable' >&2"))
	require.NoError(t, err)
	assert.Equal(t, "warning: unused variable\n", res.Stderr)
}

func TestExecutor_Run_Environment(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info("test-value-123")

	t.Setenv("CCDRIVE_INHERITED", "inherited")

	executor := shell.NewExecutor(logger)
	cmd := domain.NewCommand("env", "sh", "-c", "echo $MY_TEST_VAR")
	cmd.Env = map[string]string{"MY_TEST_VAR": "test-value-123"}

	_, err := executor.Run(context.Background(), cmd)
	require.NoError(t, err)

	inherited := domain.NewCommand("env", "sh", "-c", "printf $CCDRIVE_INHERITED")
	inherited.CaptureStdout = true
	res, err := executor.Run(context.Background(), inherited)
	require.NoError(t, err)
	assert.Equal(t, "inherited", res.Stdout)
}

func TestExecutor_Run_NonZeroExit(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := shell.NewExecutor(mocks.NewMockLogger(ctrl))

	res, err := executor.Run(context.Background(), domain.NewCommand("fail", "sh", "-c", "echo 'x.cc:1: error: boom' >&2; exit 3"))
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "x.cc:1: error: boom", res.Diagnostics())

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
}

func TestExecutor_Run_InvalidCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := shell.NewExecutor(mocks.NewMockLogger(ctrl))

	res, err := executor.Run(context.Background(), domain.NewCommand("missing", "this-command-does-not-exist-ccdrive"))
	require.Error(t, err)
	assert.Equal(t, -1, res.ExitCode)
}

func TestExecutor_Run_EmptyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := shell.NewExecutor(mocks.NewMockLogger(ctrl))

	res, err := executor.Run(context.Background(), domain.Command{Step: "compile"})
	require.ErrorIs(t, err, domain.ErrToolInvocationFailed)
	assert.Equal(t, -1, res.ExitCode)
	assert.Contains(t, err.Error(), "empty command")
}

func TestExecutor_Run_ContextCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := shell.NewExecutor(mocks.NewMockLogger(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := executor.Run(ctx, domain.NewCommand("sleep", "sleep", "5"))
	require.Error(t, err)
}
