package config

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/pysharp/errors"
	"github.com/teranos/pysharp/version"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Output.Extension == "" {
		return errors.New("output.extension cannot be empty (omit for default \"cs\")")
	}
	if strings.ContainsAny(c.Output.Extension, `/\`) {
		return errors.Newf("output.extension must be a bare extension, got %q", c.Output.Extension)
	}

	// Workers: 0 = one per CPU, negative = invalid
	if c.Build.Workers < 0 {
		return errors.Newf("build.workers must be >= 0, got %d", c.Build.Workers)
	}

	// Debounce: 0 = retranslate on every event, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	return c.checkRequires(version.Version)
}

// checkRequires verifies the running version against the requires
// constraint. Development builds satisfy any constraint.
func (c *Config) checkRequires(running string) error {
	if c.Requires == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return errors.Wrapf(err, "invalid requires constraint %q", c.Requires)
	}

	ver, err := semver.NewVersion(running)
	if err != nil {
		// dev or otherwise untagged build
		return nil
	}

	if !constraint.Check(ver) {
		return errors.WithHintf(
			errors.Newf("config requires pysharp %s, but running %s", c.Requires, running),
			"upgrade pysharp or relax the requires constraint")
	}
	return nil
}
