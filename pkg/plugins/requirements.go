package plugins

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Requirement is a parsed version requirement such as ">=1.2.0 <2.0.0 || 3.x"
type Requirement struct {
	raw        string
	constraint *semver.Constraints
}

// ParseRequirement parses a version requirement. An empty requirement or "*"
// matches every version. Space separated comparators must all hold; "||"
// separates alternatives.
func ParseRequirement(requirement string) (*Requirement, error) {
	raw := strings.TrimSpace(requirement)
	if raw == "" {
		raw = "*"
	}
	constraint, err := semver.NewConstraint(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid version requirement %q: %w", requirement, err)
	}
	return &Requirement{raw: raw, constraint: constraint}, nil
}

// Check reports whether version satisfies the requirement
func (r *Requirement) Check(version string) (bool, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("invalid version %q: %w", version, err)
	}
	return r.constraint.Check(v), nil
}

func (r *Requirement) String() string {
	return r.raw
}

// Satisfies reports whether version satisfies requirement
func Satisfies(version, requirement string) (bool, error) {
	r, err := ParseRequirement(requirement)
	if err != nil {
		return false, err
	}
	return r.Check(version)
}
