// Package driver computes and runs compile and link commands for mixed
// C, C++ and Fortran sources.
package driver

import (
	"errors"
	"slices"
	"strings"

	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/ccdrive/internal/core/ports"
	"go.trai.ch/zerr"
)

// Profile holds the project settings the driver applies on top of the toolchain.
type Profile struct {
	IncludeDirs []string
	BaseFlags   []string
	Standard    string
	FlagTable   domain.PathFlagTable
	// LinkFlags holds per-OS extra flags for executable links.
	LinkFlags         map[string][]string
	RPath             string
	StaticArchives    []string
	VendoredFragments []string
}

// ProfileFromManifest derives the driver profile for the given host OS.
func ProfileFromManifest(m *domain.Manifest, goos string) Profile {
	p := Profile{
		IncludeDirs: slices.Clone(m.IncludeDirs),
		BaseFlags:   slices.Clone(m.BaseFlags),
		Standard:    m.Standard(),
		FlagTable:   m.FlagTable(goos),
	}
	if exe := m.Executable; exe != nil {
		p.LinkFlags = exe.LinkFlags
		p.RPath = exe.RPath
		p.StaticArchives = slices.Clone(exe.StaticArchives)
		p.VendoredFragments = slices.Clone(exe.VendoredFragments)
	}
	return p
}

// Driver builds command vectors from immutable inputs and runs them.
// The only state it touches is the library cache handle it was given.
type Driver struct {
	toolchain *domain.ToolchainConfig
	platform  domain.Platform
	profile   Profile
	cache     ports.LibraryCache
	executor  ports.Executor
	logger    ports.Logger
}

// New creates a Driver.
func New(
	toolchain *domain.ToolchainConfig,
	platform domain.Platform,
	profile Profile,
	cache ports.LibraryCache,
	executor ports.Executor,
	logger ports.Logger,
) *Driver {
	if profile.Standard == "" {
		profile.Standard = domain.DefaultLanguageStandard
	}
	return &Driver{
		toolchain: toolchain,
		platform:  platform,
		profile:   profile,
		cache:     cache,
		executor:  executor,
		logger:    logger,
	}
}

// Platform returns the host the driver builds for.
func (d *Driver) Platform() domain.Platform {
	return d.platform
}

// ToolFailure turns a failed invocation into an error of the given kind that
// names the step and carries the tool's diagnostics.
func ToolFailure(kind error, cmd domain.Command, res domain.CommandResult, cause error) error {
	msg := cmd.Step
	if diag := res.Diagnostics(); diag != "" {
		msg += "\n" + diag
	}
	err := zerr.Wrap(errors.Join(kind, cause), msg)
	err = zerr.With(err, "argv", strings.Join(cmd.Args, " "))
	return zerr.With(err, "exit_code", res.ExitCode)
}
