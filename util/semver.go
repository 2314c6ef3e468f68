package util

import (
	"fmt"
	"strconv"
	"strings"
)

// Semver is a MAJOR.MINOR.PATCH version with an optional "-tag.N"
// prerelease such as 1.2.0-beta.3.
type Semver struct {
	Major      int
	Minor      int
	Patch      int
	Tag        string
	Prerelease int
}

func number(part, name, semver string) (int, error) {
	n, err := strconv.Atoi(part)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s version in %q", name, semver)
	}
	return n, nil
}

func ParseSemver(semver string) (Semver, error) {
	s := Semver{}
	core, pre, hasPre := strings.Cut(semver, "-")
	split := strings.Split(core, ".")
	if len(split) != 3 {
		return Semver{}, fmt.Errorf("invalid version %q: want MAJOR.MINOR.PATCH", semver)
	}

	var err error
	if s.Major, err = number(split[0], "major", semver); err != nil {
		return Semver{}, err
	}
	if s.Minor, err = number(split[1], "minor", semver); err != nil {
		return Semver{}, err
	}
	if s.Patch, err = number(split[2], "patch", semver); err != nil {
		return Semver{}, err
	}

	if hasPre {
		tag, num, ok := strings.Cut(pre, ".")
		if !ok || tag == "" {
			return Semver{}, fmt.Errorf("invalid prerelease in %q: want tag.N", semver)
		}
		s.Tag = tag
		if s.Prerelease, err = number(num, "prerelease", semver); err != nil {
			return Semver{}, err
		}
	}

	return s, nil
}

func (s Semver) String() string {
	str := strconv.Itoa(s.Major) + "." + strconv.Itoa(s.Minor) + "." + strconv.Itoa(s.Patch)
	if s.Tag != "" {
		str += "-" + s.Tag + "." + strconv.Itoa(s.Prerelease)
	}
	return str
}

// Compare returns -1, 0 or 1. A prerelease sorts before its release; tags
// are compared as strings.
func (s Semver) Compare(o Semver) int {
	for _, d := range [...]int{s.Major - o.Major, s.Minor - o.Minor, s.Patch - o.Patch} {
		if d != 0 {
			return sign(d)
		}
	}
	switch {
	case s.Tag == o.Tag:
		return sign(s.Prerelease - o.Prerelease)
	case s.Tag == "":
		return 1
	case o.Tag == "":
		return -1
	default:
		return strings.Compare(s.Tag, o.Tag)
	}
}

func sign(d int) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}
