package driver

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/zerr"
)

// PlanLink computes the commands of a link without running them or touching the caches.
// A generic target named lib*.so is linked as a shared library.
func (d *Driver) PlanLink(req domain.LinkRequest) (domain.LinkPlan, error) {
	if len(req.Objects) == 0 {
		return domain.LinkPlan{}, zerr.With(zerr.Wrap(domain.ErrNoObjects, "cannot link "+req.Output), "output", req.Output)
	}

	kind := req.Kind
	if kind == domain.TargetSharedObject && domain.IsLibraryName(req.Output) {
		kind = domain.TargetSharedLibrary
	}

	if key, ok := linkerKey(kind, req.TargetLanguage); ok {
		if err := d.toolchain.Require(key); err != nil {
			return domain.LinkPlan{}, zerr.With(err, "output", req.Output)
		}
	}

	switch kind {
	case domain.TargetExecutable:
		return d.planExecutable(req), nil
	case domain.TargetSharedLibrary:
		return d.planSharedLibrary(req), nil
	case domain.TargetSharedObject:
		return d.planSharedObject(req, req.Output, req.PostArgs, d.platform.SharedObjectFlags()), nil
	case domain.TargetStaticLibrary:
		return d.planStatic(req), nil
	default:
		return domain.LinkPlan{}, zerr.With(zerr.Wrap(domain.ErrUnknownTargetKind, "cannot link "+req.Output), "kind", int(kind))
	}
}

// Link records shared libraries in the cache, then runs the link commands in order.
// A recorded library is planned again so its own search directory is on the command line.
func (d *Driver) Link(ctx context.Context, req domain.LinkRequest) (domain.LinkPlan, error) {
	plan, err := d.PlanLink(req)
	if err != nil {
		return plan, err
	}

	if plan.RecordsLibrary() {
		d.record(plan)
		if plan, err = d.PlanLink(req); err != nil {
			return plan, err
		}
	}

	for _, cmd := range plan.Commands {
		res, err := d.executor.Run(ctx, cmd)
		if err != nil {
			return plan, zerr.With(ToolFailure(domain.ErrLinkFailed, cmd, res, err), "output", plan.Output)
		}
	}
	return plan, nil
}

// record persists the produced library; cache write failures only warn.
func (d *Driver) record(plan domain.LinkPlan) {
	if err := d.cache.RecordSearchPath(plan.SearchDir); err != nil {
		d.logger.Warn("library search path not persisted: " + err.Error())
	}
	if plan.LibraryKey == "" {
		return
	}
	if err := d.cache.RecordLibrary(plan.LibraryKey, plan.LibraryName); err != nil {
		d.logger.Warn("library name not persisted: " + err.Error())
	}
}

func (d *Driver) planExecutable(req domain.LinkRequest) domain.LinkPlan {
	args := []string{d.toolchain.String(domain.KeyCXX), "-o", req.Output}
	args = append(args, d.executableLinkFlags()...)
	if d.profile.RPath != "" {
		args = append(args, d.platform.RPathFlag(d.profile.RPath))
	}
	if req.DebugLevel > 0 {
		args = append(args, "-g")
	}
	args = append(args, req.PreArgs...)
	args = append(args, req.Objects...)
	args = append(args, d.profile.StaticArchives...)
	for _, lib := range d.cache.Translate(req.Libraries) {
		if !d.vendored(lib) {
			args = append(args, "-l"+lib)
		}
	}
	for _, dir := range d.searchDirs(req) {
		args = append(args, "-L"+dir)
	}
	for _, dir := range req.RuntimeLibraryDirs {
		args = append(args, d.platform.RuntimeDirFlag(dir))
	}
	args = append(args, req.PostArgs...)

	return domain.LinkPlan{
		Kind:     domain.TargetExecutable,
		Output:   req.Output,
		Commands: []domain.Command{domain.NewCommand("link "+req.Output, args...)},
	}
}

// executableLinkFlags returns the platform-specific flags of an executable link.
// Only linux links the OpenMP runtime.
func (d *Driver) executableLinkFlags() []string {
	var flags []string
	if d.platform.OS == domain.OSLinux {
		flags = append(flags, d.toolchain.Strings(domain.KeyLinkOpenMP)...)
	}
	return append(flags, d.profile.LinkFlags[d.platform.OS]...)
}

func (d *Driver) planSharedLibrary(req domain.LinkRequest) domain.LinkPlan {
	output := req.Output
	post := req.PostArgs
	if d.platform.Bundling() {
		if trimmed, ok := strings.CutSuffix(output, ".so"); ok {
			output = trimmed + d.platform.SharedSuffix()
		}
		base := filepath.Base(output)
		post = make([]string, len(req.PostArgs))
		for i, arg := range req.PostArgs {
			post[i] = strings.ReplaceAll(arg, "%s", base)
		}
	}

	plan := d.planSharedObject(req, output, post, d.platform.DynamicLibraryFlags())
	plan.Kind = domain.TargetSharedLibrary
	plan.SearchDir = filepath.Dir(output)
	if key, mangled, ok := domain.MangledLibraryName(req.Output); ok {
		plan.LibraryKey = key
		plan.LibraryName = mangled
	}
	return plan
}

func (d *Driver) planSharedObject(req domain.LinkRequest, output string, post, flags []string) domain.LinkPlan {
	args := []string{d.linker(req.TargetLanguage)}
	args = append(args, flags...)
	args = append(args, req.PreArgs...)
	if req.DebugLevel > 0 {
		args = append(args, "-g")
	}
	args = append(args, req.Objects...)
	args = append(args, d.libraryOptions(req)...)
	args = append(args, "-o", output)
	args = append(args, post...)

	return domain.LinkPlan{
		Kind:     domain.TargetSharedObject,
		Output:   output,
		Commands: []domain.Command{domain.NewCommand("link "+output, args...)},
	}
}

func (d *Driver) planStatic(req domain.LinkRequest) domain.LinkPlan {
	archive := []string{d.toolchain.Archiver(), "-cr", req.Output}
	archive = append(archive, req.Objects...)

	commands := []domain.Command{domain.NewCommand("archive "+req.Output, archive...)}
	if d.platform.Bundling() {
		commands = append(commands, domain.NewCommand("ranlib "+req.Output, d.toolchain.Ranlib(), req.Output))
	}

	return domain.LinkPlan{
		Kind:     domain.TargetStaticLibrary,
		Output:   req.Output,
		Commands: commands,
	}
}

// libraryOptions renders -L, runtime directory and -l options in toolchain order.
func (d *Driver) libraryOptions(req domain.LinkRequest) []string {
	var opts []string
	for _, dir := range d.searchDirs(req) {
		opts = append(opts, "-L"+dir)
	}
	for _, dir := range req.RuntimeLibraryDirs {
		opts = append(opts, d.platform.RuntimeDirFlag(dir))
	}
	for _, lib := range d.cache.Translate(req.Libraries) {
		opts = append(opts, "-l"+lib)
	}
	return opts
}

// searchDirs merges configured, caller and discovered directories, first wins.
func (d *Driver) searchDirs(req domain.LinkRequest) []string {
	if req.NarrowSearch {
		return d.toolchain.LinkDirs()
	}
	return domain.MergeSearchDirs(d.toolchain.LinkDirs(), req.LibraryDirs, d.cache.SearchPaths())
}

func (d *Driver) linker(language string) string {
	return d.toolchain.String(linkerFor(language))
}

func linkerFor(language string) string {
	if language == "c++" {
		return domain.KeyCXX
	}
	return domain.KeyCC
}

// linkerKey names the toolchain key that drives the link of kind.
// Archives fall back to a default archiver and need none.
func linkerKey(kind domain.TargetKind, language string) (string, bool) {
	switch kind {
	case domain.TargetExecutable:
		return domain.KeyCXX, true
	case domain.TargetSharedLibrary, domain.TargetSharedObject:
		return linkerFor(language), true
	default:
		return "", false
	}
}

func (d *Driver) vendored(lib string) bool {
	return slices.ContainsFunc(d.profile.VendoredFragments, func(fragment string) bool {
		return fragment != "" && strings.Contains(lib, fragment)
	})
}
