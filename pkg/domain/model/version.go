package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/m-mizutani/goerr/v2"

	"github.com/ltth-app/siteops/pkg/domain/types"
)

// Version is a parsed MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD] identifier.
// It is a value type; the zero value is 0.0.0.
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease string
	Build      string
}

// vendorPrefix matches one leading "<vendor>_" segment. Dots are excluded so
// an underscore inside a version never starts a prefix.
var vendorPrefix = regexp.MustCompile(`^[A-Za-z0-9-]+_`)

// ParseVersion parses s as a strict semantic version. A single vendor prefix
// of the form "<vendor>_" is stripped first when present; anything else,
// including a second underscore, is a parse error.
func ParseVersion(s string) (Version, error) {
	return parseStrict(s, vendorPrefix.ReplaceAllString(s, ""))
}

// ParsePrefixedVersion parses a candidate directory name of the form
// "<prefix>_<version>". Exactly that prefix is removed before the grammar
// check.
func ParsePrefixedVersion(name, prefix string) (Version, error) {
	rest, ok := strings.CutPrefix(name, prefix+"_")
	if !ok {
		return Version{}, goerr.New("missing vendor prefix",
			goerr.V("input", name),
			goerr.V("prefix", prefix),
			goerr.T(types.ErrTagParse),
		)
	}
	return parseStrict(name, rest)
}

func parseStrict(raw, s string) (Version, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, goerr.Wrap(err, "invalid semantic version",
			goerr.V("input", raw),
			goerr.T(types.ErrTagParse),
		)
	}

	return Version{
		Major:      v.Major(),
		Minor:      v.Minor(),
		Patch:      v.Patch(),
		Prerelease: v.Prerelease(),
		Build:      v.Metadata(),
	}, nil
}

// MustParseVersion is ParseVersion for literals known to be valid.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Core renders MAJOR.MINOR.PATCH.
func (v Version) Core() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// String renders the full canonical form, so parsing the result yields an
// equal Version.
func (v Version) String() string {
	s := v.Core()
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// IsPrerelease reports whether v carries a prerelease tag.
func (v Version) IsPrerelease() bool {
	return v.Prerelease != ""
}

// Compare returns -1, 0 or +1. Core numbers are compared first; at equal
// core a final release sorts above any prerelease and two prereleases are
// compared as plain strings. Build metadata is ignored.
func (v Version) Compare(o Version) int {
	if c := cmpUint(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmpUint(v.Minor, o.Minor); c != 0 {
		return c
	}
	if c := cmpUint(v.Patch, o.Patch); c != 0 {
		return c
	}

	switch {
	case v.Prerelease == o.Prerelease:
		return 0
	case v.Prerelease == "":
		return 1
	case o.Prerelease == "":
		return -1
	case v.Prerelease < o.Prerelease:
		return -1
	default:
		return 1
	}
}

// Less reports whether v orders before o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// Equal reports whether v and o have the same precedence.
func (v Version) Equal(o Version) bool { return v.Compare(o) == 0 }

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
