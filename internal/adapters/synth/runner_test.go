package synth_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fab/internal/adapters/synth"
	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTestRunner(t *testing.T) (*synth.Runner, *mocks.MockExecutor) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockExecutor := mocks.NewMockExecutor(ctrl)

	return synth.NewRunner(mockLogger, mockExecutor), mockExecutor
}

func testTarget(patches ...domain.FeaturePatch) domain.BoardTarget {
	return domain.BoardTarget{
		Target:       "kc705",
		Variant:      "nist_clock",
		SynthCommand: []string{"python", "-m", "gateware.targets.kc705", "-V", "nist_clock"},
		Patches:      patches,
	}
}

func TestRunner_RunsSynthCommand(t *testing.T) {
	runner, mockExecutor := newTestRunner(t)
	root := t.TempDir()
	target := testTarget()
	tree := domain.NewBuildTree(filepath.Join(root, ".fab", "build"), target.Target, target.Variant)
	env := []string{"FAB_VENDOR_DIR=/cache"}

	mockExecutor.EXPECT().
		Execute(gomock.Any(), target.SynthCommand, root, env, gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	var sink bytes.Buffer
	require.NoError(t, runner.Synthesize(t.Context(), root, target, tree, env, &sink))

	// The tree and its log exist even when the tool printed nothing
	assert.DirExists(t, tree.GatewareDir())
	assert.FileExists(t, tree.SynthesisLogPath())
}

func TestRunner_StreamsOutputToSinkAndLog(t *testing.T) {
	runner, mockExecutor := newTestRunner(t)
	root := t.TempDir()
	target := testTarget()
	tree := domain.NewBuildTree(filepath.Join(root, ".fab", "build"), target.Target, target.Variant)

	mockExecutor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []string, _ string, _ []string, stdout, _ io.Writer) error {
			_, err := stdout.Write([]byte("Bitstream generation completed\n"))
			return err
		}).
		Times(1)

	var sink bytes.Buffer
	require.NoError(t, runner.Synthesize(t.Context(), root, target, tree, nil, &sink))

	assert.Contains(t, sink.String(), "Bitstream generation completed")

	logContent, err := os.ReadFile(tree.SynthesisLogPath())
	require.NoError(t, err)
	assert.Contains(t, string(logContent), "Bitstream generation completed")
}

func TestRunner_AppliesPatchesBeforeSynthesis(t *testing.T) {
	runner, mockExecutor := newTestRunner(t)
	root := t.TempDir()
	target := testTarget(
		domain.FeaturePatch{Feature: "sed", Path: "/patches/sed.diff"},
		domain.FeaturePatch{Feature: "sawg", Path: "/patches/sawg.diff"},
	)
	tree := domain.NewBuildTree(filepath.Join(root, ".fab", "build"), target.Target, target.Variant)

	first := mockExecutor.EXPECT().
		Execute(gomock.Any(), []string{"patch", "-N", "-p1", "-i", "/patches/sed.diff"}, root, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	second := mockExecutor.EXPECT().
		Execute(gomock.Any(), []string{"patch", "-N", "-p1", "-i", "/patches/sawg.diff"}, root, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		After(first)
	mockExecutor.EXPECT().
		Execute(gomock.Any(), target.SynthCommand, root, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		After(second)

	var sink bytes.Buffer
	require.NoError(t, runner.Synthesize(t.Context(), root, target, tree, nil, &sink))
}

func TestRunner_PatchFailureStopsRun(t *testing.T) {
	runner, mockExecutor := newTestRunner(t)
	root := t.TempDir()
	target := testTarget(domain.FeaturePatch{Feature: "sed", Path: "/patches/sed.diff"})
	tree := domain.NewBuildTree(filepath.Join(root, ".fab", "build"), target.Target, target.Variant)

	mockExecutor.EXPECT().
		Execute(gomock.Any(), []string{"patch", "-N", "-p1", "-i", "/patches/sed.diff"}, root, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(os.ErrPermission).
		Times(1)

	var sink bytes.Buffer
	err := runner.Synthesize(t.Context(), root, target, tree, nil, &sink)
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrPatchFailed.Error())
	require.ErrorContains(t, err, "sed")
}

func TestRunner_SynthFailure(t *testing.T) {
	runner, mockExecutor := newTestRunner(t)
	root := t.TempDir()
	target := testTarget()
	tree := domain.NewBuildTree(filepath.Join(root, ".fab", "build"), target.Target, target.Variant)

	mockExecutor.EXPECT().
		Execute(gomock.Any(), target.SynthCommand, root, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []string, _ string, _ []string, stdout, _ io.Writer) error {
			_, _ = stdout.Write([]byte("ERROR: Place and route failed\n"))
			return os.ErrInvalid
		}).
		Times(1)

	var sink bytes.Buffer
	err := runner.Synthesize(t.Context(), root, target, tree, nil, &sink)
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrSynthesisFailed.Error())
	require.ErrorContains(t, err, "kc705@nist_clock")

	// The captured log survives the failure for the scanner to read
	logContent, readErr := os.ReadFile(tree.SynthesisLogPath())
	require.NoError(t, readErr)
	assert.Contains(t, string(logContent), "Place and route failed")
}

func TestRunner_NilSink(t *testing.T) {
	runner, mockExecutor := newTestRunner(t)
	root := t.TempDir()
	target := testTarget()
	tree := domain.NewBuildTree(filepath.Join(root, ".fab", "build"), target.Target, target.Variant)

	mockExecutor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []string, _ string, _ []string, stdout, _ io.Writer) error {
			_, err := stdout.Write([]byte("quiet run\n"))
			return err
		}).
		Times(1)

	require.NoError(t, runner.Synthesize(t.Context(), root, target, tree, nil, nil))

	logContent, err := os.ReadFile(tree.SynthesisLogPath())
	require.NoError(t, err)
	assert.Contains(t, string(logContent), "quiet run")
}
