package driver

import (
	"context"
	"fmt"

	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/zerr"
)

// CompileCommand computes the full compile command for one source file.
// It is a pure function of the request, the toolchain, the profile and the platform.
func (d *Driver) CompileCommand(req domain.CompileRequest) (domain.Command, error) {
	ext := req.ExtensionOf()
	if domain.IsFortran(ext) {
		return d.fortranCommand(req, ext)
	}

	if err := d.toolchain.Require(compilerKey(ext)); err != nil {
		return domain.Command{}, zerr.With(err, "source", req.Source)
	}

	args := d.compilerProfile(ext)
	args = append(args, d.profile.FlagTable.Match(req.Source)...)
	if d.toolchain.OptionEnabled(domain.KeyOptionGRPC) {
		args = append(args, "-DUSE_GRPC")
	}
	args = append(args, req.PreprocessorOpts...)
	args = append(args, req.CompilerArgs...)
	args = append(args, req.Source, "-o", req.Object)
	args = append(args, req.ExtraArgs...)

	return domain.NewCommand("compile "+req.Source, args...), nil
}

func (d *Driver) fortranCommand(req domain.CompileRequest, ext string) (domain.Command, error) {
	if !d.platform.SupportsFortran() {
		return domain.Command{}, domain.UnsupportedPlatformError(d.platform)
	}
	if err := d.toolchain.Require(domain.KeyFortran); err != nil {
		return domain.Command{}, zerr.With(err, "source", req.Source)
	}

	args := []string{d.toolchain.String(domain.KeyFortran), "-O3", "-fPIC", "-c"}
	if ext == ".f90" {
		args = append(args, "-ffree-form", "-ffree-line-length-none")
	} else {
		args = append(args, "-fno-automatic", "-ffixed-line-length-none")
	}

	if flag, ok := d.platform.WordSizeFlag(); ok {
		args = append(args, flag)
	} else {
		d.logger.Warn(fmt.Sprintf("platform has architecture %q which is unknown, proceed with caution", d.platform.Arch))
	}

	args = append(args, req.Source, "-o", req.Object)
	args = append(args, req.ExtraArgs...)

	return domain.NewCommand("compile "+req.Source, args...), nil
}

// compilerProfile returns the C or C++ compiler prefix without optimization flags.
func (d *Driver) compilerProfile(ext string) []string {
	args := d.toolchain.CCache()
	args = append(args, d.toolchain.String(compilerKey(ext)), "-g")
	if ext != ".c" {
		args = append(args, "-std="+d.profile.Standard)
	}
	args = append(args, domain.IncludeFlags(d.profile.IncludeDirs)...)
	args = append(args, d.toolchain.CompileFlags()...)
	args = append(args, d.profile.BaseFlags...)
	return domain.StripOptimization(args)
}

func compilerKey(ext string) string {
	if ext == ".c" {
		return domain.KeyCC
	}
	return domain.KeyCXX
}

// Compile runs the compile command for one source file.
func (d *Driver) Compile(ctx context.Context, req domain.CompileRequest) error {
	cmd, err := d.CompileCommand(req)
	if err != nil {
		return err
	}

	res, err := d.executor.Run(ctx, cmd)
	if err != nil {
		return zerr.With(ToolFailure(domain.ErrCompilationFailed, cmd, res, err), "source", req.Source)
	}
	return nil
}
