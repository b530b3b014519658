// Package layout resolves where build trees and the built target program live.
package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/askygg/internal/profile"
)

// DefaultAppName is the target program name. The build system emits it as
// <build_dir>/<app>/<app>, and that nesting must be preserved.
const DefaultAppName = "askygg_editor"

// Layout maps profiles onto directories under a single root.
type Layout struct {
	Root    string
	AppName string
}

// New returns a Layout rooted at root. An empty appName selects DefaultAppName.
func New(root, appName string) Layout {
	if appName == "" {
		appName = DefaultAppName
	}
	return Layout{Root: root, AppName: appName}
}

// BuildDir is <root>/build_<profile>.
func (l Layout) BuildDir(p profile.Profile) string {
	return filepath.Join(l.Root, p.DirName())
}

// ExecutablePath is <root>/build_<profile>/<app>/<app>.
func (l Layout) ExecutablePath(p profile.Profile) string {
	return filepath.Join(l.BuildDir(p), l.AppName, l.AppName)
}

// ResolveRoot returns override as an absolute path when set, otherwise the
// directory holding the running executable with symlinks resolved.
func ResolveRoot(override string) (string, error) {
	if override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("resolve root %q: %w", override, err)
		}
		return abs, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
