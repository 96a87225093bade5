package manifest

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed semantic version.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Metadata   string
}

// ParseVersion parses "1.2.3", "v1.2.3-beta.0" or "1.2.3+build".
func ParseVersion(v string) (*Version, error) {
	if v == "" {
		return nil, fmt.Errorf("version string cannot be empty")
	}
	v = strings.TrimPrefix(v, "v")

	var out Version
	if core, meta, ok := strings.Cut(v, "+"); ok {
		if meta == "" {
			return nil, fmt.Errorf("invalid version %q: empty build metadata", v)
		}
		v, out.Metadata = core, meta
	}
	if core, pre, ok := strings.Cut(v, "-"); ok {
		if pre == "" {
			return nil, fmt.Errorf("invalid version %q: empty prerelease", v)
		}
		v, out.Prerelease = core, pre
	}

	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid version format: expected major.minor.patch, got %s", v)
	}
	nums := [3]*int{&out.Major, &out.Minor, &out.Patch}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid version component %q in %s", p, v)
		}
		*nums[i] = n
	}
	return &out, nil
}

// String renders the version without a "v" prefix.
func (v *Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Metadata != "" {
		s += "+" + v.Metadata
	}
	return s
}

// IsPrerelease reports whether v carries a prerelease tag.
func (v *Version) IsPrerelease() bool {
	return v.Prerelease != ""
}
