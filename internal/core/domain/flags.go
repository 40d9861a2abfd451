package domain

import (
	"slices"
	"strings"
)

// PathFlags associates a path substring with extra compiler flags.
type PathFlags struct {
	Pattern string
	Flags   []string
}

// PathFlagTable is an ordered list of path patterns and their flags.
// Every entry whose pattern occurs in a source path contributes its flags.
type PathFlagTable struct {
	entries []PathFlags
}

// NewPathFlagTable creates a table keeping the given order.
func NewPathFlagTable(entries ...PathFlags) PathFlagTable {
	t := PathFlagTable{entries: make([]PathFlags, len(entries))}
	for i, e := range entries {
		t.entries[i] = PathFlags{Pattern: e.Pattern, Flags: slices.Clone(e.Flags)}
	}
	return t
}

// WithPlatformFlags returns a copy of the table with flags appended to every entry.
func (t PathFlagTable) WithPlatformFlags(flags []string) PathFlagTable {
	out := NewPathFlagTable(t.entries...)
	for i := range out.entries {
		out.entries[i].Flags = append(out.entries[i].Flags, flags...)
	}
	return out
}

// Match folds over every entry in order and concatenates the flags of each
// entry whose pattern is a substring of path. Flags are not deduplicated.
func (t PathFlagTable) Match(path string) []string {
	var flags []string
	for _, e := range t.entries {
		if strings.Contains(path, e.Pattern) {
			flags = append(flags, e.Flags...)
		}
	}
	return flags
}

// Entries returns a copy of the table entries.
func (t PathFlagTable) Entries() []PathFlags {
	return NewPathFlagTable(t.entries...).entries
}

// Len returns the number of entries.
func (t PathFlagTable) Len() int {
	return len(t.entries)
}

// CleanArgs drops empty-string arguments.
func CleanArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// StripOptimization drops every -O flag.
func StripOptimization(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if !strings.HasPrefix(a, "-O") {
			out = append(out, a)
		}
	}
	return out
}

// IncludeFlags turns directories into -I flags.
func IncludeFlags(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d != "" {
			out = append(out, "-I"+d)
		}
	}
	return out
}
