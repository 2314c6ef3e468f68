package lualex

import "fmt"

// Version selects the set of PICO-8 dialect extensions that are active.
// Version 0 is plain Lua 5.2.
type Version int

// DefaultVersion is used when no dialect version is configured.
const DefaultVersion Version = 8

type Feature int

const (
	FeatureBangNotEqual Feature = iota
	FeatureCompoundAssign
	FeatureShortIf
	FeatureBinaryLiterals
)

var featureSince = map[Feature]Version{
	FeatureBangNotEqual:   1,
	FeatureCompoundAssign: 1,
	FeatureShortIf:        1,
	FeatureBinaryLiterals: 2,
}

var featureNames = map[Feature]string{
	FeatureBangNotEqual:   "!= inequality",
	FeatureCompoundAssign: "compound assignment",
	FeatureShortIf:        "one-line if",
	FeatureBinaryLiterals: "binary literals",
}

// Features lists every known extension in display order.
func Features() []Feature {
	return []Feature{FeatureBangNotEqual, FeatureCompoundAssign, FeatureShortIf, FeatureBinaryLiterals}
}

// Since is the first dialect version that enables f.
func (f Feature) Since() Version {
	return featureSince[f]
}

func (f Feature) String() string {
	if name, ok := featureNames[f]; ok {
		return name
	}
	return fmt.Sprintf("feature(%d)", int(f))
}

// Has reports whether the dialect version enables the feature.
func (v Version) Has(f Feature) bool {
	since, ok := featureSince[f]
	return ok && v >= since
}
