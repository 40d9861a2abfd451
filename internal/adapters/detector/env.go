// Package detector inspects the host: its platform and how output should be rendered.
package detector

import (
	"os"
	"runtime"
	"strings"

	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// HostOverrideEnv names the variable that replaces the detected host, as "os/arch".
const HostOverrideEnv = "CCDRIVE_HOST"

// OutputMode represents the rendering mode of the log output.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModePretty renders colored output.
	ModePretty
	// ModePlain renders output without escape codes.
	ModePlain
)

// DetectEnvironment returns the recommended output mode based on the environment.
// It checks if stderr is a TTY and if CI environment variables are set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd())) //nolint:gosec // file descriptors fit in int

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModePretty
}

// ResolveMode applies the user's --color flag to auto-detection.
// userFlag should be one of: "auto", "always", "never", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "always":
		return ModePretty
	case "never":
		return ModePlain
	default:
		return autoDetected
	}
}

// HostPlatform returns the platform the driver builds for.
func HostPlatform() (domain.Platform, error) {
	if override := os.Getenv(HostOverrideEnv); override != "" {
		return ParsePlatform(override)
	}
	return domain.NewPlatform(runtime.GOOS, runtime.GOARCH), nil
}

// ParsePlatform parses an "os/arch" pair.
func ParsePlatform(s string) (domain.Platform, error) {
	goos, arch, ok := strings.Cut(s, "/")
	if !ok || goos == "" || arch == "" {
		return domain.Platform{}, zerr.With(zerr.Wrap(domain.ErrUnsupportedPlatform, "invalid host, expected os/arch"), "host", s)
	}
	return domain.NewPlatform(goos, arch), nil
}
