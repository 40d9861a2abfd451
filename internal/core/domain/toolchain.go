package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Toolchain property keys.
const (
	KeyCC       = "build.compiler.cc"
	KeyCXX      = "build.compiler.cxx"
	KeyFortran  = "build.compiler.fortran"
	KeyFlex     = "build.compiler.flex"
	KeyBison    = "build.compiler.bison"
	KeyXMLCasa  = "build.compiler.xml-casa"
	KeyCCache   = "build.compiler.ccache"
	KeyAr       = "build.compiler.ar"
	KeyRanlib   = "build.compiler.ranlib"
	KeyNumpyDir = "build.python.numpy_dir"

	// KeyCompileFlagsPrefix selects every property contributing to the C/C++ flag list.
	KeyCompileFlagsPrefix = "build.flags.compile"
	// KeyLinkFlagsPrefix selects every property contributing to the link flag list.
	KeyLinkFlagsPrefix = "build.flags.link"
	// KeyLinkOpenMP holds the OpenMP runtime link flags.
	KeyLinkOpenMP = "build.flags.link.openmp"

	KeyOptionGRPC  = "option.grpc"
	KeyOptionBoost = "option.boost"
)

// ToolchainEntry is one property of the toolchain provider.
type ToolchainEntry struct {
	Key    string
	Values []string
}

// ToolchainConfig is the immutable, ordered toolchain property set.
// It is read once at startup and never mutated.
type ToolchainConfig struct {
	entries []ToolchainEntry
	index   map[string]int
}

// NewToolchainConfig builds a config from entries in provider order.
// A repeated key keeps its first position and takes the later value.
func NewToolchainConfig(entries []ToolchainEntry) *ToolchainConfig {
	c := &ToolchainConfig{
		entries: make([]ToolchainEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		values := slices.Clone(e.Values)
		if i, ok := c.index[e.Key]; ok {
			c.entries[i].Values = values
			continue
		}
		c.index[e.Key] = len(c.entries)
		c.entries = append(c.entries, ToolchainEntry{Key: e.Key, Values: values})
	}
	return c
}

// Entries returns a copy of all properties in provider order.
func (c *ToolchainConfig) Entries() []ToolchainEntry {
	out := make([]ToolchainEntry, len(c.entries))
	for i, e := range c.entries {
		out[i] = ToolchainEntry{Key: e.Key, Values: slices.Clone(e.Values)}
	}
	return out
}

// Lookup returns the values stored under key.
func (c *ToolchainConfig) Lookup(key string) ([]string, bool) {
	i, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(c.entries[i].Values), true
}

// String returns the value of key, joining list values with a space.
func (c *ToolchainConfig) String(key string) string {
	values, _ := c.Lookup(key)
	return strings.Join(values, " ")
}

// Strings returns the list value of key.
func (c *ToolchainConfig) Strings(key string) []string {
	values, _ := c.Lookup(key)
	return values
}

// Has reports whether key is present with a non-empty value.
func (c *ToolchainConfig) Has(key string) bool {
	return c.String(key) != ""
}

// Require fails with ErrConfigurationMissing on the first absent or empty key.
func (c *ToolchainConfig) Require(keys ...string) error {
	for _, key := range keys {
		if !c.Has(key) {
			return zerr.With(zerr.Wrap(ErrConfigurationMissing, "toolchain check failed"), "key", key)
		}
	}
	return nil
}

// PrefixScan concatenates the values of every key starting with prefix, in provider order.
func (c *ToolchainConfig) PrefixScan(prefix string) []string {
	var out []string
	for _, e := range c.entries {
		if strings.HasPrefix(e.Key, prefix) {
			out = append(out, e.Values...)
		}
	}
	return out
}

// OptionEnabled reports whether a feature toggle is present and not "0".
func (c *ToolchainConfig) OptionEnabled(key string) bool {
	values, ok := c.Lookup(key)
	if !ok {
		return false
	}
	return strings.Join(values, " ") != "0"
}

// CompileFlags returns the aggregated C/C++ compile flags.
// The numpy include directory, when configured, comes first.
func (c *ToolchainConfig) CompileFlags() []string {
	flags := c.PrefixScan(KeyCompileFlagsPrefix)
	if dir := c.String(KeyNumpyDir); dir != "" {
		flags = append([]string{"-I" + dir}, flags...)
	}
	return flags
}

// LinkFlags returns the aggregated link flags without empty entries.
func (c *ToolchainConfig) LinkFlags() []string {
	return CleanArgs(c.PrefixScan(KeyLinkFlagsPrefix))
}

// LinkDirs returns the directories named by -L link flags, first occurrence wins.
func (c *ToolchainConfig) LinkDirs() []string {
	var dirs []string
	for _, flag := range c.LinkFlags() {
		if dir, ok := strings.CutPrefix(flag, "-L"); ok && dir != "" && !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// CCache returns the ccache prefix, empty when unset.
func (c *ToolchainConfig) CCache() []string {
	if cc := c.String(KeyCCache); cc != "" {
		return []string{cc}
	}
	return nil
}

// Archiver returns the static archiver, defaulting to ar.
func (c *ToolchainConfig) Archiver() string {
	if ar := c.String(KeyAr); ar != "" {
		return ar
	}
	return "ar"
}

// Ranlib returns the archive indexer, defaulting to ranlib.
func (c *ToolchainConfig) Ranlib() string {
	if r := c.String(KeyRanlib); r != "" {
		return r
	}
	return "ranlib"
}

// Compilers returns the configured compiler paths, used to key the library caches.
func (c *ToolchainConfig) Compilers() []string {
	return []string{c.String(KeyCC), c.String(KeyCXX), c.String(KeyFortran)}
}
