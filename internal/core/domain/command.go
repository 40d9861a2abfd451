package domain

import (
	"slices"
	"strings"
)

// Command is one external tool invocation.
type Command struct {
	// Step names the build step for logs, spans and errors.
	Step string
	// Args is the full argument vector; Args[0] is the program.
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env holds per-command environment overrides.
	Env map[string]string
	// CaptureStdout keeps stdout out of the log so callers can parse it.
	CaptureStdout bool
}

// NewCommand builds a command with empty arguments removed.
func NewCommand(step string, args ...string) Command {
	return Command{Step: step, Args: CleanArgs(args)}
}

// Program returns the executable name.
func (c Command) Program() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// Clone returns a deep copy.
func (c Command) Clone() Command {
	out := c
	out.Args = slices.Clone(c.Args)
	if c.Env != nil {
		out.Env = make(map[string]string, len(c.Env))
		for k, v := range c.Env {
			out.Env[k] = v
		}
	}
	return out
}

// String renders the argument vector for display, quoting arguments with spaces.
func (c Command) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t\"'$") {
			parts[i] = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
			continue
		}
		parts[i] = a
	}
	return strings.Join(parts, " ")
}

// CommandResult holds the captured output of a finished command.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Diagnostics returns the tool's diagnostic text, preferring stderr.
func (r CommandResult) Diagnostics() string {
	if s := strings.TrimSpace(r.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(r.Stdout)
}
