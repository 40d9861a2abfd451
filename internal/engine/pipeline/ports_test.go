package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/ccdrive/internal/core/ports"
	"go.trai.ch/ccdrive/internal/core/ports/mocks"
	"go.trai.ch/ccdrive/internal/engine/driver"
	"go.trai.ch/ccdrive/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

// mocked wires a pipeline where every port is a mock.
type mocked struct {
	pipeline  *pipeline.Pipeline
	executor  *mocks.MockExecutor
	store     *mocks.MockObjectStore
	hasher    *mocks.MockHasher
	resolver  *mocks.MockSourceResolver
	verifier  *mocks.MockOutputVerifier
	generator *mocks.MockSourceGenerator
	copier    *mocks.MockCopier
	tracer    *mocks.MockTracer
	cache     *mocks.MockLibraryCache
	logger    *mocks.MockLogger
}

func newMocked(t *testing.T) *mocked {
	t.Helper()
	t.Chdir(t.TempDir())

	ctrl := gomock.NewController(t)
	m := &mocked{
		executor:  mocks.NewMockExecutor(ctrl),
		store:     mocks.NewMockObjectStore(ctrl),
		hasher:    mocks.NewMockHasher(ctrl),
		resolver:  mocks.NewMockSourceResolver(ctrl),
		verifier:  mocks.NewMockOutputVerifier(ctrl),
		generator: mocks.NewMockSourceGenerator(ctrl),
		copier:    mocks.NewMockCopier(ctrl),
		tracer:    mocks.NewMockTracer(ctrl),
		cache:     mocks.NewMockLibraryCache(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	m.pipeline = pipeline.New(
		m.executor, m.store, m.hasher, m.resolver, m.verifier,
		m.generator, m.copier, m.tracer, m.logger,
	)
	return m
}

// quietTracer accepts any span activity.
func (m *mocked) quietTracer(t *testing.T) {
	t.Helper()
	span := mocks.NewMockSpan(gomock.NewController(t))
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	m.tracer.EXPECT().EmitPlan(gomock.Any(), pipeline.Steps)
	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()
}

func (m *mocked) build(manifest *domain.Manifest) pipeline.Build {
	tc := toolchain()
	drv := driver.New(tc, linux, driver.ProfileFromManifest(manifest, linux.OS), m.cache, m.executor, m.logger)
	return pipeline.Build{Manifest: manifest, Toolchain: tc, Driver: drv}
}

func sourcesManifest() *domain.Manifest {
	return &domain.Manifest{Name: "demo", Sources: []string{"src"}}
}

func TestRun_ValidRecordSkipsCompile(t *testing.T) {
	m := newMocked(t)
	m.quietTracer(t)

	m.resolver.EXPECT().ResolveSources([]string{"src"}).Return([]string{"src/a.cc"}, nil)
	m.hasher.EXPECT().ComputeInputHash(gomock.Any(), []string{"src/a.cc"}).Return("h1", nil)
	m.store.EXPECT().Get("build/temp/src/a.o").Return(&domain.ObjectInfo{Object: "build/temp/src/a.o", InputHash: "h1"}, nil)
	m.verifier.EXPECT().VerifyOutputs([]string{"build/temp/src/a.o"}).Return(true, nil)

	report, err := m.pipeline.Run(context.Background(), m.build(sourcesManifest()), pipeline.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.StepStatusCached, m.pipeline.Status(pipeline.StepCompile))
	assert.Equal(t, "0 compiled, 1 cached", report.Steps[3].Detail)
}

func TestRun_MissingOutputForcesRecompile(t *testing.T) {
	m := newMocked(t)
	m.quietTracer(t)

	m.resolver.EXPECT().ResolveSources(gomock.Any()).Return([]string{"src/a.cc"}, nil)
	m.hasher.EXPECT().ComputeInputHash(gomock.Any(), gomock.Any()).Return("h1", nil)
	m.store.EXPECT().Get("build/temp/src/a.o").Return(&domain.ObjectInfo{InputHash: "h1"}, nil)
	m.verifier.EXPECT().VerifyOutputs([]string{"build/temp/src/a.o"}).Return(false, nil)
	m.executor.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) (domain.CommandResult, error) {
			assert.Equal(t, "compile src/a.cc", cmd.Step)
			return domain.CommandResult{}, nil
		})
	m.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(info domain.ObjectInfo) error {
		assert.Equal(t, "src/a.cc", info.Source)
		assert.Equal(t, "h1", info.InputHash)
		return nil
	})

	_, err := m.pipeline.Run(context.Background(), m.build(sourcesManifest()), pipeline.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.StepStatusCompleted, m.pipeline.Status(pipeline.StepCompile))
	assert.DirExists(t, "build/temp/src")
}

func TestRun_UnreadableRecordRecompiles(t *testing.T) {
	m := newMocked(t)
	m.quietTracer(t)

	m.resolver.EXPECT().ResolveSources(gomock.Any()).Return([]string{"src/a.cc"}, nil)
	m.hasher.EXPECT().ComputeInputHash(gomock.Any(), gomock.Any()).Return("h1", nil)
	m.store.EXPECT().Get(gomock.Any()).Return(nil, errors.New("corrupt record"))
	m.executor.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.CommandResult{}, nil)
	m.store.EXPECT().Put(gomock.Any()).Return(nil)

	_, err := m.pipeline.Run(context.Background(), m.build(sourcesManifest()), pipeline.Options{})
	require.NoError(t, err)
}

func TestRun_StoreWriteFailureFailsCompile(t *testing.T) {
	m := newMocked(t)
	m.quietTracer(t)

	m.resolver.EXPECT().ResolveSources(gomock.Any()).Return([]string{"src/a.cc"}, nil)
	m.hasher.EXPECT().ComputeInputHash(gomock.Any(), gomock.Any()).Return("h1", nil)
	m.store.EXPECT().Get(gomock.Any()).Return(nil, nil)
	m.executor.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.CommandResult{}, nil)
	m.store.EXPECT().Put(gomock.Any()).Return(errors.New("disk full"))

	_, err := m.pipeline.Run(context.Background(), m.build(sourcesManifest()), pipeline.Options{})
	require.ErrorContains(t, err, "failed to store object record")
	assert.Equal(t, domain.StepStatusFailed, m.pipeline.Status(pipeline.StepCompile))
}

func TestRun_PortFailuresAbortTheirStep(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		step     string
		manifest func() *domain.Manifest
		setup    func(m *mocked)
	}{
		{
			name:     "resolver",
			step:     pipeline.StepCompile,
			manifest: sourcesManifest,
			setup: func(m *mocked) {
				m.resolver.EXPECT().ResolveSources(gomock.Any()).Return(nil, boom)
			},
		},
		{
			name:     "hasher",
			step:     pipeline.StepCompile,
			manifest: sourcesManifest,
			setup: func(m *mocked) {
				m.resolver.EXPECT().ResolveSources(gomock.Any()).Return([]string{"src/a.cc"}, nil)
				m.hasher.EXPECT().ComputeInputHash(gomock.Any(), gomock.Any()).Return("", boom)
			},
		},
		{
			name: "version file",
			step: pipeline.StepVersion,
			manifest: func() *domain.Manifest {
				return &domain.Manifest{Name: "demo", Version: &domain.VersionSpec{
					Script: "scripts/rev", Template: "version.cc.in", Output: "generated/version.cc", Prefix: "DEMO",
				}}
			},
			setup: func(m *mocked) {
				m.executor.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.CommandResult{Stdout: "6.1.0-rc.12\n"}, nil)
				m.generator.EXPECT().WriteVersionFile(gomock.Any(), gomock.Any()).DoAndReturn(
					func(spec domain.VersionSpec, v domain.Version) error {
						assert.Equal(t, "generated/version.cc", spec.Output)
						assert.Equal(t, "6.1.0.12", v.String())
						return boom
					})
			},
		},
		{
			name: "package init",
			step: pipeline.StepInit,
			manifest: func() *domain.Manifest {
				return &domain.Manifest{Name: "demo", Package: domain.PackageInit{Imports: []string{"from .x import y"}}}
			},
			setup: func(m *mocked) {
				m.generator.EXPECT().WritePackageInit("build/lib/demo", "demo", gomock.Any(), gomock.Nil()).Return(boom)
			},
		},
		{
			name: "private script",
			step: pipeline.StepCopy,
			manifest: func() *domain.Manifest {
				return &domain.Manifest{Name: "demo", PrivateScripts: []string{"scripts/run.sh"}}
			},
			setup: func(m *mocked) {
				m.copier.EXPECT().CopyFile("scripts/run.sh", "build/lib/demo/private").Return(boom)
			},
		},
		{
			name: "private module",
			step: pipeline.StepCopy,
			manifest: func() *domain.Manifest {
				return &domain.Manifest{Name: "demo", PrivateModules: []string{"modules/helpers"}}
			},
			setup: func(m *mocked) {
				m.copier.EXPECT().CopyTree("modules/helpers", "build/lib/demo/private/helpers").Return(boom)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocked(t)
			m.quietTracer(t)
			tt.setup(m)

			_, err := m.pipeline.Run(context.Background(), m.build(tt.manifest()), pipeline.Options{})
			require.ErrorIs(t, err, boom)
			assert.ErrorContains(t, err, domain.ErrBuildExecutionFailed.Error())
			assert.Equal(t, domain.StepStatusFailed, m.pipeline.Status(tt.step))
		})
	}
}

func TestRun_LinkUsesLibraryCache(t *testing.T) {
	m := newMocked(t)
	m.quietTracer(t)

	m.resolver.EXPECT().ResolveSources(gomock.Any()).Return([]string{"src/a.cc"}, nil)
	m.hasher.EXPECT().ComputeInputHash(gomock.Any(), gomock.Any()).Return("h1", nil)
	m.store.EXPECT().Get(gomock.Any()).Return(&domain.ObjectInfo{InputHash: "h1"}, nil)
	m.verifier.EXPECT().VerifyOutputs(gomock.Any()).Return(true, nil)
	m.cache.EXPECT().Translate([]string{"tools"}).Return([]string{"tools.cpython-36m"})
	m.cache.EXPECT().SearchPaths().Return([]string{"build/lib/casatools"})

	var argv []string
	m.executor.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) (domain.CommandResult, error) {
			argv = cmd.Args
			return domain.CommandResult{}, nil
		})

	manifest := sourcesManifest()
	manifest.Executable = &domain.ExecutableTarget{Name: "wvrgcal", Libraries: []string{"tools"}}

	_, err := m.pipeline.Run(context.Background(), m.build(manifest), pipeline.Options{})
	require.NoError(t, err)
	assert.Contains(t, argv, "-ltools.cpython-36m")
	assert.Contains(t, argv, "-Lbuild/lib/casatools")
	assert.DirExists(t, "build/lib/demo/private/bin")
}

func TestRun_OneSpanPerStep(t *testing.T) {
	m := newMocked(t)
	ctrl := gomock.NewController(t)
	root := mocks.NewMockSpan(ctrl)
	step := mocks.NewMockSpan(ctrl)

	var started []string
	m.tracer.EXPECT().EmitPlan(gomock.Any(), pipeline.Steps)
	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, name string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			started = append(started, name)
			if name == "build demo" {
				return ctx, root
			}
			return ctx, step
		}).Times(len(pipeline.Steps) + 1)

	root.EXPECT().End()
	step.EXPECT().End().Times(len(pipeline.Steps))
	step.EXPECT().SetAttribute(domain.StepStatusAttribute, string(domain.StepStatusSkipped)).Times(len(pipeline.Steps))

	_, err := m.pipeline.Run(context.Background(), m.build(&domain.Manifest{Name: "demo"}), pipeline.Options{})
	require.NoError(t, err)
	assert.Equal(t, append([]string{"build demo"}, pipeline.Steps...), started)
}

func TestRun_FailedStepRecordsErrorOnSpans(t *testing.T) {
	m := newMocked(t)
	ctrl := gomock.NewController(t)
	span := mocks.NewMockSpan(ctrl)
	boom := errors.New("boom")

	m.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any())
	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()
	span.EXPECT().End().AnyTimes()
	span.EXPECT().SetAttribute(domain.StepStatusAttribute, string(domain.StepStatusFailed))
	span.EXPECT().SetAttribute(domain.StepStatusAttribute, gomock.Any()).AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).Times(2)

	m.resolver.EXPECT().ResolveSources(gomock.Any()).Return(nil, boom)

	_, err := m.pipeline.Run(context.Background(), m.build(sourcesManifest()), pipeline.Options{})
	require.ErrorIs(t, err, boom)
}
