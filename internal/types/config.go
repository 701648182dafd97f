package types

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// MirrorConfig identifies the repository coordinates used to locate the
// Packages index and package archives. It is constructed once by the CLI
// and passed explicitly to everything that needs it.
type MirrorConfig struct {
	Mirror       string `yaml:"mirror"`
	Distribution string `yaml:"dist"`
	Component    string `yaml:"component"`
	Architecture string `yaml:"architecture"`
}

const (
	DefaultMirror       = "http://ftp.debian.org/debian"
	DefaultDistribution = "stable"
	DefaultComponent    = "main"
	DefaultArchitecture = "amd64"
)

// DefaultMirrorConfig returns the stock Debian stable/main/amd64 coordinates.
func DefaultMirrorConfig() MirrorConfig {
	return MirrorConfig{
		Mirror:       DefaultMirror,
		Distribution: DefaultDistribution,
		Component:    DefaultComponent,
		Architecture: DefaultArchitecture,
	}
}

// Normalized returns a copy with whitespace trimmed, the mirror URL stripped
// of a trailing slash, and empty fields filled with defaults.
func (c MirrorConfig) Normalized() MirrorConfig {
	out := MirrorConfig{
		Mirror:       strings.TrimRight(strings.TrimSpace(c.Mirror), "/"),
		Distribution: strings.TrimSpace(c.Distribution),
		Component:    strings.TrimSpace(c.Component),
		Architecture: strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(c.Architecture), "binary-")),
	}
	if out.Mirror == "" {
		out.Mirror = DefaultMirror
	}
	if out.Distribution == "" {
		out.Distribution = DefaultDistribution
	}
	if out.Component == "" {
		out.Component = DefaultComponent
	}
	if out.Architecture == "" {
		out.Architecture = DefaultArchitecture
	}
	return out
}

// Validate rejects configurations that cannot form a usable index URL.
func (c MirrorConfig) Validate() error {
	if strings.TrimSpace(c.Mirror) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("mirror URL is required")
	}
	if !strings.HasPrefix(c.Mirror, "http://") && !strings.HasPrefix(c.Mirror, "https://") {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("mirror URL must be http or https")
	}
	if strings.TrimSpace(c.Distribution) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("distribution is required")
	}
	if strings.TrimSpace(c.Architecture) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("architecture is required")
	}
	return nil
}

// IndexURL returns the URL of the compressed Packages index.
func (c MirrorConfig) IndexURL() string {
	return fmt.Sprintf("%s/dists/%s/%s/binary-%s/Packages.gz",
		strings.TrimRight(c.Mirror, "/"), c.Distribution, c.Component, c.Architecture)
}

// PlainIndexURL returns the URL of the uncompressed Packages index, used as
// a fallback when the mirror does not publish Packages.gz.
func (c MirrorConfig) PlainIndexURL() string {
	return fmt.Sprintf("%s/dists/%s/%s/binary-%s/Packages",
		strings.TrimRight(c.Mirror, "/"), c.Distribution, c.Component, c.Architecture)
}

// ArchiveURL returns the download URL for a record's Filename field.
func (c MirrorConfig) ArchiveURL(filename string) string {
	return strings.TrimRight(c.Mirror, "/") + "/" + strings.TrimLeft(filename, "/")
}

// CacheKey returns a filename-safe identifier for the index described by
// this configuration, used by the on-disk index cache.
func (c MirrorConfig) CacheKey() string {
	return fmt.Sprintf("%s_%s_binary-%s", c.Distribution, c.Component, c.Architecture)
}
