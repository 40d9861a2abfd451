package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+).*?(\d+).?`)

// Version is a parsed project version.
type Version struct {
	Major   string
	Minor   string
	Patch   string
	Feature string
	Desc    string
}

// ParseVersion extracts major, minor, patch and feature from the first line of output.
func ParseVersion(output, desc string) (Version, error) {
	line, _, _ := strings.Cut(strings.TrimLeft(output, "\r\n"), "\n")
	m := versionPattern.FindStringSubmatch(line)
	if len(m) < 5 {
		return Version{}, zerr.With(zerr.Wrap(ErrVersionParseFailed, "unexpected revision output"), "line", line)
	}
	return Version{Major: m[1], Minor: m[2], Patch: m[3], Feature: m[4], Desc: desc}, nil
}

// Replacements maps @<PREFIX>_MAJOR@ style placeholders to their values.
func (v Version) Replacements(prefix string) map[string]string {
	p := "@" + prefix + "_"
	return map[string]string{
		p + "MAJOR@":   v.Major,
		p + "MINOR@":   v.Minor,
		p + "PATCH@":   v.Patch,
		p + "FEATURE@": v.Feature,
		p + "DESC@":    v.Desc,
	}
}

// Apply substitutes the placeholders in text.
func (v Version) Apply(prefix, text string) string {
	pairs := make([]string, 0, 10)
	for k, val := range v.Replacements(prefix) {
		pairs = append(pairs, k, val)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// String renders major.minor.patch.feature.
func (v Version) String() string {
	return v.Major + "." + v.Minor + "." + v.Patch + "." + v.Feature
}
