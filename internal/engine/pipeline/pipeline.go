// Package pipeline runs the build steps of a manifest in order.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/ccdrive/internal/core/ports"
	"go.trai.ch/ccdrive/internal/engine/driver"
	"go.trai.ch/zerr"
)

// Step names, in execution order.
const (
	StepLex     = "lex"
	StepYacc    = "yacc"
	StepVersion = "version"
	StepCompile = "compile"
	StepLink    = "link"
	StepClosure = "closure"
	StepXML     = "xml"
	StepTasks   = "tasks"
	StepInit    = "init"
	StepCopy    = "copy"
)

// Steps lists every step in execution order.
var Steps = []string{
	StepLex, StepYacc, StepVersion, StepCompile, StepLink,
	StepClosure, StepXML, StepTasks, StepInit, StepCopy,
}

// Build bundles the inputs of one pipeline run.
type Build struct {
	Manifest  *domain.Manifest
	Toolchain *domain.ToolchainConfig
	Driver    *driver.Driver
}

// Options controls a pipeline run.
type Options struct {
	// NoCache recompiles every object even when its record matches.
	NoCache bool
	// DryRun collects the commands without running anything.
	DryRun bool
}

// StepReport is the outcome of one step.
type StepReport struct {
	Name   string
	Status domain.StepStatus
	// Detail summarizes what the step did, such as "3 compiled, 2 cached".
	Detail string
}

// Report summarizes a pipeline run.
type Report struct {
	Steps []StepReport
	// Commands holds the planned commands of a dry run.
	Commands []domain.Command
	// Tasks holds the task names reported by the task generator.
	Tasks []string
}

// Pipeline runs the build steps strictly in order, checking each exit status
// before the next step starts.
type Pipeline struct {
	executor  ports.Executor
	store     ports.ObjectStore
	hasher    ports.Hasher
	resolver  ports.SourceResolver
	verifier  ports.OutputVerifier
	generator ports.SourceGenerator
	copier    ports.Copier
	tracer    ports.Tracer
	logger    ports.Logger

	mu         sync.RWMutex
	stepStatus map[string]domain.StepStatus
}

// New creates a Pipeline with the given dependencies.
func New(
	executor ports.Executor,
	store ports.ObjectStore,
	hasher ports.Hasher,
	resolver ports.SourceResolver,
	verifier ports.OutputVerifier,
	generator ports.SourceGenerator,
	copier ports.Copier,
	tracer ports.Tracer,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		executor:   executor,
		store:      store,
		hasher:     hasher,
		resolver:   resolver,
		verifier:   verifier,
		generator:  generator,
		copier:     copier,
		tracer:     tracer,
		logger:     logger,
		stepStatus: make(map[string]domain.StepStatus),
	}
}

func (p *Pipeline) initStepStatuses() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, step := range Steps {
		p.stepStatus[step] = domain.StepStatusPending
	}
}

func (p *Pipeline) updateStatus(step string, status domain.StepStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stepStatus[step] = status
}

// Status returns the current status of a step.
func (p *Pipeline) Status(step string) domain.StepStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if s, ok := p.stepStatus[step]; ok {
		return s
	}
	return domain.StepStatusPending
}

// run carries the mutable state of one pipeline run.
type run struct {
	p       *Pipeline
	build   Build
	opts    Options
	layout  domain.BuildLayout
	report  Report
	objects []string
}

type stepFunc func(ctx context.Context) (domain.StepStatus, string, error)

// Run executes every step of the manifest. The first failing step aborts the
// build; its error names the step.
func (p *Pipeline) Run(ctx context.Context, build Build, opts Options) (Report, error) {
	if err := build.Manifest.Validate(build.Toolchain); err != nil {
		return Report{}, err
	}

	r := &run{
		p:      p,
		build:  build,
		opts:   opts,
		layout: build.Manifest.Layout(),
	}

	p.initStepStatuses()

	ctx, span := p.tracer.Start(ctx, "build "+build.Manifest.Name,
		ports.WithAttribute("ccdrive.dry_run", opts.DryRun),
		ports.WithAttribute("ccdrive.no_cache", opts.NoCache),
	)
	defer span.End()

	p.tracer.EmitPlan(ctx, Steps)

	steps := map[string]stepFunc{
		StepLex:     r.lex,
		StepYacc:    r.yacc,
		StepVersion: r.version,
		StepCompile: r.compile,
		StepLink:    r.link,
		StepClosure: r.closure,
		StepXML:     r.upgradeXML,
		StepTasks:   r.tasks,
		StepInit:    r.packageInit,
		StepCopy:    r.copyPrivate,
	}

	for _, name := range Steps {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return r.report, err
		}
		if err := r.runStep(ctx, name, steps[name]); err != nil {
			span.RecordError(err)
			return r.report, err
		}
	}

	return r.report, nil
}

func (r *run) runStep(ctx context.Context, name string, fn stepFunc) error {
	ctx, span := r.p.tracer.Start(ctx, name)
	defer span.End()

	r.p.updateStatus(name, domain.StepStatusRunning)

	status, detail, err := fn(ctx)
	if err != nil {
		r.p.updateStatus(name, domain.StepStatusFailed)
		span.SetAttribute(domain.StepStatusAttribute, string(domain.StepStatusFailed))
		span.RecordError(err)
		r.report.Steps = append(r.report.Steps, StepReport{Name: name, Status: domain.StepStatusFailed})
		return zerr.With(zerr.Wrap(err, domain.ErrBuildExecutionFailed.Error()), "step", name)
	}

	r.p.updateStatus(name, status)
	span.SetAttribute(domain.StepStatusAttribute, string(status))
	if detail != "" {
		span.SetAttribute("ccdrive.step.detail", detail)
	}
	r.report.Steps = append(r.report.Steps, StepReport{Name: name, Status: status, Detail: detail})
	return nil
}

// exec runs cmd, or records it when dry-running. A failure becomes an error of kind.
func (r *run) exec(ctx context.Context, kind error, cmd domain.Command) (domain.CommandResult, error) {
	if r.opts.DryRun {
		r.report.Commands = append(r.report.Commands, cmd)
		return domain.CommandResult{}, nil
	}

	res, err := r.p.executor.Run(ctx, cmd)
	if err != nil {
		return res, driver.ToolFailure(kind, cmd, res, err)
	}
	return res, nil
}

func (r *run) mkdir(dir string) error {
	if r.opts.DryRun {
		return nil
	}
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dir)
	}
	return nil
}

func (r *run) lex(ctx context.Context) (domain.StepStatus, string, error) {
	return r.generateParsers(ctx, r.build.Manifest.Lex, func(file, base, out string) domain.Command {
		target := filepath.Join(out, base+".lcc")
		return domain.NewCommand("lex "+file, r.build.Toolchain.String(domain.KeyFlex), "-P"+base, "-o", target, file)
	})
}

func (r *run) yacc(ctx context.Context) (domain.StepStatus, string, error) {
	return r.generateParsers(ctx, r.build.Manifest.Yacc, func(file, base, out string) domain.Command {
		target := filepath.Join(out, base+".ycc")
		return domain.NewCommand("yacc "+file, r.build.Toolchain.String(domain.KeyBison), "-y", "-p", base, "-o", target, file)
	})
}

func (r *run) generateParsers(
	ctx context.Context,
	files []string,
	command func(file, base, out string) domain.Command,
) (domain.StepStatus, string, error) {
	if len(files) == 0 {
		return domain.StepStatusSkipped, "", nil
	}

	out := r.build.Manifest.OutputDir()
	if err := r.mkdir(out); err != nil {
		return "", "", err
	}

	for _, file := range files {
		base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		if _, err := r.exec(ctx, domain.ErrGenerationFailed, command(file, base, out)); err != nil {
			return "", "", err
		}
	}
	return domain.StepStatusCompleted, plural(len(files), "file"), nil
}

func (r *run) version(ctx context.Context) (domain.StepStatus, string, error) {
	spec := r.build.Manifest.Version
	if spec == nil {
		return domain.StepStatusSkipped, "", nil
	}

	cmd := domain.NewCommand("version", append([]string{spec.Script}, spec.Args...)...)
	cmd.Dir = spec.Dir
	cmd.CaptureStdout = true

	res, err := r.exec(ctx, domain.ErrGenerationFailed, cmd)
	if err != nil {
		return "", "", err
	}
	if r.opts.DryRun {
		return domain.StepStatusCompleted, "", nil
	}

	v, err := domain.ParseVersion(res.Stdout, spec.Desc)
	if err != nil {
		return "", "", err
	}
	if err := r.p.generator.WriteVersionFile(*spec, v); err != nil {
		return "", "", err
	}
	return domain.StepStatusCompleted, v.String(), nil
}

func (r *run) sources() ([]string, error) {
	m := r.build.Manifest

	var sources []string
	if len(m.Sources) > 0 {
		resolved, err := r.p.resolver.ResolveSources(m.Sources)
		if err != nil {
			return nil, err
		}
		sources = resolved
	}

	if m.Version != nil && !slices.Contains(sources, filepath.Clean(m.Version.Output)) {
		sources = append(sources, filepath.Clean(m.Version.Output))
	}
	return sources, nil
}

func (r *run) compile(ctx context.Context) (domain.StepStatus, string, error) {
	sources, err := r.sources()
	if err != nil {
		return "", "", err
	}
	if len(sources) == 0 {
		return domain.StepStatusSkipped, "", nil
	}

	var compiled, cached int
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}

		hit, err := r.compileOne(ctx, src)
		if err != nil {
			return "", "", err
		}
		if hit {
			cached++
		} else {
			compiled++
		}
	}

	detail := plural(compiled, "compiled")
	if cached > 0 {
		detail += ", " + plural(cached, "cached")
	}
	if compiled == 0 {
		return domain.StepStatusCached, detail, nil
	}
	return domain.StepStatusCompleted, detail, nil
}

// compileOne compiles src unless its object record is still valid. It
// reports whether the object was reused.
func (r *run) compileOne(ctx context.Context, src string) (bool, error) {
	drv := r.build.Driver
	obj := r.build.Manifest.ObjectPath(src)
	r.objects = append(r.objects, obj)

	req := domain.CompileRequest{Object: obj, Source: src, CompilerArgs: []string{"-c"}}
	cmd, err := drv.CompileCommand(req)
	if err != nil {
		return false, err
	}

	if r.opts.DryRun {
		r.report.Commands = append(r.report.Commands, cmd)
		return false, nil
	}

	hash, err := r.p.hasher.ComputeInputHash(cmd, []string{src})
	if err != nil {
		return false, err
	}

	if !r.opts.NoCache && r.objectValid(obj, hash) {
		return true, nil
	}

	if err := r.mkdir(filepath.Dir(obj)); err != nil {
		return false, err
	}
	if err := drv.Compile(ctx, req); err != nil {
		return false, err
	}

	info := domain.ObjectInfo{Source: src, Object: obj, InputHash: hash, Timestamp: time.Now()}
	if err := r.p.store.Put(info); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to store object record"), "object", obj)
	}
	return false, nil
}

func (r *run) objectValid(obj, hash string) bool {
	info, err := r.p.store.Get(obj)
	if err != nil {
		r.p.logger.Warn("ignoring unreadable object record for " + obj)
		return false
	}
	if info == nil || info.InputHash != hash {
		return false
	}
	ok, err := r.p.verifier.VerifyOutputs([]string{obj})
	return err == nil && ok
}

func (r *run) link(ctx context.Context) (domain.StepStatus, string, error) {
	exe := r.build.Manifest.Executable
	if exe == nil {
		return domain.StepStatusSkipped, "", nil
	}

	req := domain.LinkRequest{
		Kind:               domain.TargetExecutable,
		Objects:            r.objects,
		Output:             filepath.Join(r.layout.BinDir, exe.Name),
		Libraries:          exe.Libraries,
		LibraryDirs:        exe.LibraryDirs,
		RuntimeLibraryDirs: exe.RuntimeLibraryDirs,
		PreArgs:            exe.PreArgs,
		PostArgs:           exe.PostArgs,
		DebugLevel:         1,
		BuildTempDir:       r.layout.TempDir,
		TargetLanguage:     "c++",
	}

	if r.opts.DryRun {
		plan, err := r.build.Driver.PlanLink(req)
		if err != nil {
			return "", "", err
		}
		r.report.Commands = append(r.report.Commands, plan.Commands...)
		return domain.StepStatusCompleted, plan.Output, nil
	}

	if err := r.mkdir(r.layout.BinDir); err != nil {
		return "", "", err
	}
	plan, err := r.build.Driver.Link(ctx, req)
	if err != nil {
		return "", "", err
	}
	return domain.StepStatusCompleted, plan.Output, nil
}

func (r *run) closure(ctx context.Context) (domain.StepStatus, string, error) {
	spec := r.build.Manifest.Closure
	if spec == nil || !isExecutable(spec.Script) {
		return domain.StepStatusSkipped, "", nil
	}
	if done, err := r.p.verifier.VerifyOutputs([]string{domain.ClosureMarkerFile}); err == nil && done {
		return domain.StepStatusCached, "", nil
	}

	cmd := domain.NewCommand("closure", spec.Script, r.layout.ModuleDir, "lib="+r.layout.LibDir)
	if _, err := r.exec(ctx, domain.ErrGenerationFailed, cmd); err != nil {
		return "", "", err
	}
	if r.opts.DryRun {
		return domain.StepStatusCompleted, "", nil
	}

	if err := os.WriteFile(domain.ClosureMarkerFile, nil, domain.FilePerm); err != nil {
		return "", "", zerr.With(zerr.Wrap(err, "failed to write closure marker"), "path", domain.ClosureMarkerFile)
	}
	return domain.StepStatusCompleted, "", nil
}

func (r *run) upgradeXML(ctx context.Context) (domain.StepStatus, string, error) {
	var upgraded int
	for _, conv := range r.build.Manifest.XMLConversions {
		if exists, err := r.p.verifier.VerifyOutputs([]string{conv.Dest}); err == nil && exists {
			continue
		}

		r.p.logger.Info("upgrading " + conv.Source)
		cmd := domain.NewCommand("upgrade "+conv.Source, r.build.Toolchain.String(domain.KeyXMLCasa), "-upgrade", conv.Source)
		cmd.CaptureStdout = true

		res, err := r.exec(ctx, domain.ErrGenerationFailed, cmd)
		if err != nil {
			return "", "", zerr.With(err, "dest", conv.Dest)
		}
		upgraded++
		if r.opts.DryRun {
			continue
		}

		if err := r.mkdir(filepath.Dir(conv.Dest)); err != nil {
			return "", "", err
		}
		if err := os.WriteFile(conv.Dest, []byte(res.Stdout), domain.FilePerm); err != nil {
			return "", "", zerr.With(zerr.Wrap(err, "failed to write upgraded xml"), "path", conv.Dest)
		}
	}

	if upgraded == 0 {
		return domain.StepStatusSkipped, "", nil
	}
	return domain.StepStatusCompleted, plural(upgraded, "file"), nil
}

func (r *run) tasks(ctx context.Context) (domain.StepStatus, string, error) {
	xml := r.build.Manifest.TaskXML
	if len(xml) == 0 {
		return domain.StepStatusSkipped, "", nil
	}

	args := append([]string{
		r.build.Toolchain.String(domain.KeyXMLCasa),
		"output-task=" + r.layout.ModuleDir,
		"-task",
	}, xml...)
	cmd := domain.NewCommand("generate tasks", args...)
	cmd.CaptureStdout = true

	if err := r.mkdir(r.layout.ModuleDir); err != nil {
		return "", "", err
	}
	res, err := r.exec(ctx, domain.ErrGenerationFailed, cmd)
	if err != nil {
		return "", "", err
	}

	r.report.Tasks = strings.Fields(res.Stdout)
	return domain.StepStatusCompleted, plural(len(r.report.Tasks), "task"), nil
}

func (r *run) packageInit(_ context.Context) (domain.StepStatus, string, error) {
	m := r.build.Manifest
	if len(m.TaskXML) == 0 && len(m.Package.Imports) == 0 && m.Package.FileName == "" {
		return domain.StepStatusSkipped, "", nil
	}
	if r.opts.DryRun {
		return domain.StepStatusCompleted, "", nil
	}

	if err := r.p.generator.WritePackageInit(r.layout.ModuleDir, m.Name, m.Package, r.report.Tasks); err != nil {
		return "", "", err
	}
	return domain.StepStatusCompleted, "", nil
}

func (r *run) copyPrivate(_ context.Context) (domain.StepStatus, string, error) {
	m := r.build.Manifest
	if len(m.PrivateScripts) == 0 && len(m.PrivateModules) == 0 {
		return domain.StepStatusSkipped, "", nil
	}
	if r.opts.DryRun {
		return domain.StepStatusCompleted, "", nil
	}

	for _, script := range m.PrivateScripts {
		if err := r.p.copier.CopyFile(script, r.layout.PrivateDir); err != nil {
			return "", "", err
		}
	}
	for _, mod := range m.PrivateModules {
		dst := filepath.Join(r.layout.PrivateDir, filepath.Base(mod))
		if err := r.p.copier.CopyTree(mod, dst); err != nil {
			return "", "", err
		}
	}
	return domain.StepStatusCompleted, plural(len(m.PrivateScripts)+len(m.PrivateModules), "item"), nil
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

func plural(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 && !strings.HasSuffix(noun, "ed") {
		s += "s"
	}
	return s
}
