// Package app implements the application layer for ccdrive.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"slices"

	"go.trai.ch/ccdrive/internal/adapters/detector" //nolint:depguard // App layer selects output mode
	"go.trai.ch/ccdrive/internal/adapters/libcache" //nolint:depguard // App layer opens the library caches
	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/ccdrive/internal/core/ports"
	"go.trai.ch/ccdrive/internal/engine/driver"
	"go.trai.ch/ccdrive/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	logger       ports.Logger
	pipeline     *pipeline.Pipeline
	caches       ports.CacheBackendFactory
	store        ports.ObjectStore
	platform     domain.Platform
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	log ports.Logger,
	pipe *pipeline.Pipeline,
	caches ports.CacheBackendFactory,
	store ports.ObjectStore,
	platform domain.Platform,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		logger:       log,
		pipeline:     pipe,
		caches:       caches,
		store:        store,
		platform:     platform,
	}
}

// Paths locates the configuration of a run.
type Paths struct {
	Toolchain string
	Manifest  string
	// CacheTag overrides the runtime tag of the library cache files.
	CacheTag string
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	Paths
	NoCache bool
	DryRun  bool
	Out     io.Writer
}

// CompileOptions configuration for the Compile method.
type CompileOptions struct {
	Paths
	Source       string
	Object       string
	CompilerArgs []string
	DryRun       bool
	Out          io.Writer
}

// LinkOptions configuration for the Link method.
type LinkOptions struct {
	Paths
	Kind               domain.TargetKind
	Output             string
	Objects            []string
	Libraries          []string
	LibraryDirs        []string
	RuntimeLibraryDirs []string
	PreArgs            []string
	PostArgs           []string
	Narrow             bool
	Language           string
	DryRun             bool
	Out                io.Writer
}

// LogOptions configuration for the ConfigureLogging method.
type LogOptions struct {
	JSON  bool
	Color string
}

type logConfigurer interface {
	SetJSON(enable bool)
	SetPlain(plain bool)
}

// ConfigureLogging applies the output flags to the logger.
func (a *App) ConfigureLogging(opts LogOptions) {
	l, ok := a.logger.(logConfigurer)
	if !ok {
		return
	}
	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.Color)
	l.SetPlain(mode == detector.ModePlain)
	l.SetJSON(opts.JSON)
}

// Build runs the full pipeline of the manifest.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	tc, err := a.configLoader.LoadToolchain(opts.Toolchain)
	if err != nil {
		return zerr.Wrap(err, "failed to load toolchain")
	}

	m, err := a.configLoader.LoadManifest(opts.Manifest)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	drv := a.newDriver(tc, m, a.openCache(tc, opts.Paths))
	report, err := a.pipeline.Run(ctx, pipeline.Build{Manifest: m, Toolchain: tc, Driver: drv}, pipeline.Options{
		NoCache: opts.NoCache,
		DryRun:  opts.DryRun,
	})
	if err != nil {
		return err
	}

	if opts.DryRun {
		return printCommands(out(opts.Out), report.Commands)
	}
	a.logger.Info(fmt.Sprintf("built %s", m.Name))
	return nil
}

// Compile compiles one source file with the manifest's profile.
func (a *App) Compile(ctx context.Context, opts CompileOptions) error {
	tc, m, err := a.loadConfig(opts.Paths)
	if err != nil {
		return err
	}

	object := opts.Object
	if object == "" {
		object = m.ObjectPath(opts.Source)
	}
	req := domain.CompileRequest{
		Object:       object,
		Source:       opts.Source,
		CompilerArgs: opts.CompilerArgs,
	}

	drv := a.newDriver(tc, m, a.openCache(tc, opts.Paths))
	if opts.DryRun {
		cmd, err := drv.CompileCommand(req)
		if err != nil {
			return err
		}
		return printCommands(out(opts.Out), []domain.Command{cmd})
	}
	return drv.Compile(ctx, req)
}

// Link links objects into the requested target.
func (a *App) Link(ctx context.Context, opts LinkOptions) error {
	tc, m, err := a.loadConfig(opts.Paths)
	if err != nil {
		return err
	}

	req := domain.LinkRequest{
		Kind:               opts.Kind,
		Objects:            opts.Objects,
		Output:             opts.Output,
		Libraries:          opts.Libraries,
		LibraryDirs:        opts.LibraryDirs,
		RuntimeLibraryDirs: opts.RuntimeLibraryDirs,
		PreArgs:            opts.PreArgs,
		PostArgs:           opts.PostArgs,
		DebugLevel:         1,
		BuildTempDir:       m.Layout().TempDir,
		TargetLanguage:     opts.Language,
		NarrowSearch:       opts.Narrow,
	}

	drv := a.newDriver(tc, m, a.openCache(tc, opts.Paths))
	if opts.DryRun {
		plan, err := drv.PlanLink(req)
		if err != nil {
			return err
		}
		return printCommands(out(opts.Out), plan.Commands)
	}

	plan, err := drv.Link(ctx, req)
	if err != nil {
		return err
	}
	a.logger.Info("linked " + plan.Output)
	return nil
}

// CacheShow prints the library caches of the configured toolchain.
func (a *App) CacheShow(w io.Writer, paths Paths) error {
	tc, err := a.configLoader.LoadToolchain(paths.Toolchain)
	if err != nil {
		return zerr.Wrap(err, "failed to load toolchain")
	}
	cache := a.openCache(tc, paths)
	w = out(w)

	if _, err := fmt.Fprintf(w, "location: %s\n", cache.Location()); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "search paths:")
	for _, dir := range cache.SearchPaths() {
		_, _ = fmt.Fprintf(w, "  %s\n", dir)
	}
	_, _ = fmt.Fprintln(w, "libraries:")
	names := cache.Names()
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "  %s -> %s\n", k, names[k])
	}
	return nil
}

// CacheClean removes the library caches and the object records.
func (a *App) CacheClean(_ context.Context, paths Paths) error {
	tc, err := a.configLoader.LoadToolchain(paths.Toolchain)
	if err != nil {
		return zerr.Wrap(err, "failed to load toolchain")
	}

	var errs error
	cache := a.openCache(tc, paths)
	a.logger.Info("removing library caches at " + cache.Location())
	if err := cache.Clear(); err != nil {
		errs = errors.Join(errs, zerr.Wrap(err, "failed to remove library caches"))
	}

	a.logger.Info("removing object records")
	if err := a.store.Clear(); err != nil {
		errs = errors.Join(errs, zerr.Wrap(err, "failed to remove object records"))
	}
	return errs
}

// loadConfig loads the toolchain and, when present, the manifest. Without a
// manifest the driver runs with the default profile.
func (a *App) loadConfig(paths Paths) (*domain.ToolchainConfig, *domain.Manifest, error) {
	tc, err := a.configLoader.LoadToolchain(paths.Toolchain)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load toolchain")
	}

	if _, statErr := os.Stat(paths.Manifest); errors.Is(statErr, fs.ErrNotExist) {
		return tc, &domain.Manifest{Name: "ccdrive", BaseFlags: []string{"-fPIC"}}, nil
	}

	m, err := a.configLoader.LoadManifest(paths.Manifest)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load manifest")
	}
	return tc, m, nil
}

func (a *App) openCache(tc *domain.ToolchainConfig, paths Paths) *libcache.Cache {
	tag := paths.CacheTag
	if tag == "" {
		tag = libcache.RuntimeTag(runtime.Version(), tc.Compilers()...)
	}
	return libcache.Open(a.caches.Open(tag), a.logger)
}

func (a *App) newDriver(tc *domain.ToolchainConfig, m *domain.Manifest, cache ports.LibraryCache) *driver.Driver {
	return driver.New(tc, a.platform, driver.ProfileFromManifest(m, a.platform.OS), cache, a.executor, a.logger)
}

func printCommands(w io.Writer, commands []domain.Command) error {
	for _, cmd := range commands {
		if _, err := fmt.Fprintln(w, cmd.String()); err != nil {
			return zerr.Wrap(err, "failed to print command")
		}
	}
	return nil
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
