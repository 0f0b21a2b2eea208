package themekit

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// MinimumVersion is the oldest Theme Kit release whose deploy flag surface
// matches what this package assembles.
const MinimumVersion = "1.0.4"

var versionPattern = regexp.MustCompile(`v?(\d+\.\d+\.\d+)`)

// Version runs `theme version` and parses the reported release.
func (c *CLI) Version(ctx context.Context) (*semver.Version, error) {
	result, err := c.run(ctx, []string{"version"})
	if err != nil {
		return nil, fmt.Errorf("theme version: %w", err)
	}

	match := versionPattern.FindStringSubmatch(result.Stdout)
	if match == nil {
		return nil, fmt.Errorf("unrecognized theme version output: %q", result.Stdout)
	}

	v, err := semver.NewVersion(match[1])
	if err != nil {
		return nil, fmt.Errorf("parse theme version %q: %w", match[1], err)
	}
	return v, nil
}

// MeetsMinimum reports whether v satisfies MinimumVersion.
func MeetsMinimum(v *semver.Version) bool {
	constraint, err := semver.NewConstraint(">= " + MinimumVersion)
	if err != nil {
		return false
	}
	return constraint.Check(v)
}
