package commands_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/fab/cmd/fab/commands"
	"go.trai.ch/fab/internal/app"
	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type cliMocks struct {
	loader     *mocks.MockConfigLoader
	vendorer   *mocks.MockVendorer
	synth      *mocks.MockSynthesizer
	classifier *mocks.MockLogClassifier
	collector  *mocks.MockCollector
	executor   *mocks.MockExecutor
	rig        *mocks.MockRig
}

func newTestCLI(t *testing.T) (*commands.CLI, cliMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := cliMocks{
		loader:     mocks.NewMockConfigLoader(ctrl),
		vendorer:   mocks.NewMockVendorer(ctrl),
		synth:      mocks.NewMockSynthesizer(ctrl),
		classifier: mocks.NewMockLogClassifier(ctrl),
		collector:  mocks.NewMockCollector(ctrl),
		executor:   mocks.NewMockExecutor(ctrl),
		rig:        mocks.NewMockRig(ctrl),
	}

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	a := app.New(m.loader, m.vendorer, m.synth, m.classifier, m.collector, m.executor, m.rig, mockLogger)
	return commands.New(a), m
}

func testCatalog(root string) *domain.Catalog {
	return &domain.Catalog{
		BuildDir:  filepath.Join(root, ".fab", "build"),
		VendorDir: filepath.Join(root, ".fab", "vendor"),
		DistDir:   filepath.Join(root, "dist"),
		Targets: map[string]domain.TargetConfig{
			"kc705": {Variants: []string{"nist_clock"}, RigResource: "kc705-1"},
		},
		Rig: domain.RigSpec{Host: "rpi-1"},
	}
}

func TestBuild_Success(t *testing.T) {
	cli, m := newTestCLI(t)
	root := t.TempDir()
	catalog := testCatalog(root)

	m.loader.EXPECT().DiscoverRoot(".").Return(root, nil)
	m.loader.EXPECT().Load(".").Return(catalog, nil)
	m.loader.EXPECT().LoadLock(".").Return(&domain.DependencyLock{}, nil)

	m.vendorer.EXPECT().Vendor(gomock.Any(), catalog.VendorDir, gomock.Any()).Return(nil)
	m.vendorer.EXPECT().Env(catalog.VendorDir).Return(nil)
	m.synth.EXPECT().
		Synthesize(gomock.Any(), root, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ domain.BoardTarget, tree domain.BuildTree, _ []string, _ io.Writer) error {
			require.NoError(t, os.MkdirAll(tree.GatewareDir(), 0o750))
			return os.WriteFile(tree.SynthesisLogPath(), []byte("ok\n"), 0o644)
		})
	m.classifier.EXPECT().Scan(gomock.Any()).Return(nil)
	m.collector.EXPECT().
		Collect(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.ArtifactSet{}, nil)

	cli.SetArgs([]string{"build", "kc705@nist_clock", "--output-mode", "plain"})
	require.NoError(t, cli.Execute(t.Context()))
}

func TestBuild_NoTargetsShowsHelp(t *testing.T) {
	cli, _ := newTestCLI(t)

	cli.SetArgs([]string{"build"})
	require.NoError(t, cli.Execute(t.Context()))
}

func TestBuild_ConstraintViolationFails(t *testing.T) {
	cli, m := newTestCLI(t)
	root := t.TempDir()
	catalog := testCatalog(root)

	m.loader.EXPECT().DiscoverRoot(".").Return(root, nil)
	m.loader.EXPECT().Load(".").Return(catalog, nil)
	m.loader.EXPECT().LoadLock(".").Return(&domain.DependencyLock{}, nil)

	m.vendorer.EXPECT().Vendor(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.vendorer.EXPECT().Env(gomock.Any()).Return(nil)
	m.synth.EXPECT().
		Synthesize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ domain.BoardTarget, tree domain.BuildTree, _ []string, _ io.Writer) error {
			require.NoError(t, os.MkdirAll(tree.GatewareDir(), 0o750))
			return os.WriteFile(tree.SynthesisLogPath(), []byte("Timing constraints are not met\n"), 0o644)
		})
	m.classifier.EXPECT().Scan(gomock.Any()).Return(domain.ErrConstraintViolation)
	// Collect must never run for a violating log.

	cli.SetArgs([]string{"build", "kc705@nist_clock", "--output-mode", "plain"})
	err := cli.Execute(t.Context())
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	require.ErrorIs(t, err, domain.ErrConstraintViolation)
}

func TestHITL_LockUnavailableNeverTouchesBoard(t *testing.T) {
	cli, m := newTestCLI(t)
	root := t.TempDir()
	catalog := testCatalog(root)

	artifactDir := filepath.Join(root, "dist", "kc705", "nist_clock")
	require.NoError(t, os.MkdirAll(artifactDir, 0o750))
	manifest := `{"target":"kc705","variant":"nist_clock","role":"runtime","products":[]}`
	require.NoError(t, os.WriteFile(filepath.Join(artifactDir, domain.ManifestFileName), []byte(manifest), 0o644))

	m.loader.EXPECT().Load(".").Return(catalog, nil)

	ctrl := gomock.NewController(t)
	lock := mocks.NewMockRigLock(ctrl)
	lock.EXPECT().Acquire(gomock.Any()).Return(domain.ErrLockUnavailable)

	m.rig.EXPECT().Session("rpi-1", "kc705-1").Return(lock)
	// The executor is never invoked: no flash, no test run.

	cli.SetArgs([]string{"hitl", "kc705@nist_clock", "-d", artifactDir})
	err := cli.Execute(t.Context())
	require.ErrorIs(t, err, domain.ErrLockUnavailable)
}

func TestClean_RemovesBuildTreesByDefault(t *testing.T) {
	cli, m := newTestCLI(t)
	root := t.TempDir()
	catalog := testCatalog(root)
	require.NoError(t, os.MkdirAll(catalog.BuildDir, 0o750))

	m.loader.EXPECT().Load(".").Return(catalog, nil)

	cli.SetArgs([]string{"clean"})
	require.NoError(t, cli.Execute(t.Context()))
	require.NoDirExists(t, catalog.BuildDir)
}

func TestRoot_Help(t *testing.T) {
	cli, _ := newTestCLI(t)

	cli.SetArgs([]string{"--help"})
	require.NoError(t, cli.Execute(t.Context()))
}
