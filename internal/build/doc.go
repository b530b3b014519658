// Package build runs the configure and compile phases for each build profile.
//
// Profiles are built strictly one after another and each profile's compile
// phase only starts after its configure phase succeeded. The first non-zero
// exit status aborts the whole run with a *Failure naming the phase, the
// profile and the exit status; artifacts of profiles that already finished
// stay on disk.
package build
