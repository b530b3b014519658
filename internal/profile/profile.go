// Package profile defines the build profiles and the toolchain commands that
// configure and compile each of them.
package profile

import (
	"git.home.luguber.info/inful/askygg/internal/foundation/normalization"
)

// Profile is a named build variant with its own build directory and flags.
type Profile string

const (
	Debug   Profile = "debug"
	Release Profile = "release"
)

var profileNormalizer = normalization.NewNormalizer("build type", map[string]Profile{
	"debug":   Debug,
	"release": Release,
})

// Parse converts raw input into a Profile, rejecting unknown names.
func Parse(raw string) (Profile, error) {
	return profileNormalizer.Parse(raw)
}

// DefaultOrder is the order setup builds profiles in: debug first, then
// release. Nothing depends on the order beyond reproducible output.
func DefaultOrder() []Profile {
	return []Profile{Debug, Release}
}

func (p Profile) String() string { return string(p) }

// DirName is the build directory name for the profile, e.g. build_debug.
func (p Profile) DirName() string {
	return "build_" + string(p)
}

// CMakeBuildType is the CMAKE_BUILD_TYPE value for the profile.
func (p Profile) CMakeBuildType() string {
	switch p {
	case Debug:
		return "Debug"
	case Release:
		return "Release"
	default:
		return ""
	}
}

// Title is the capitalized profile name used in progress banners.
func (p Profile) Title() string {
	return p.CMakeBuildType()
}

// Valid reports whether p is one of the known profiles.
func (p Profile) Valid() bool {
	return p == Debug || p == Release
}
