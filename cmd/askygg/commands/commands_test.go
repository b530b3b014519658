package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/askygg/internal/config"
	foundationerrors "git.home.luguber.info/inful/askygg/internal/foundation/errors"
	"git.home.luguber.info/inful/askygg/internal/process"
)

type fakeRunner struct {
	calls []process.Command
	fail  map[string]int // key: base(dir)/name
}

func (f *fakeRunner) Run(_ context.Context, c process.Command) (process.Result, error) {
	f.calls = append(f.calls, c)
	status := f.fail[filepath.Base(c.Dir)+"/"+c.Name]
	return process.Result{ExitStatus: status, Stdout: []byte("ok " + c.Name)}, nil
}

type fakeSpawner struct {
	calls []process.Command
	code  int
}

func (f *fakeSpawner) Spawn(_ context.Context, c process.Command) (int, error) {
	f.calls = append(f.calls, c)
	return f.code, nil
}

type harness struct {
	root    string
	runner  *fakeRunner
	spawner *fakeSpawner
	stdout  bytes.Buffer
	stderr  bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	chdirForTest(t, t.TempDir())
	t.Setenv("ASKYGG_LOG_LEVEL", "")
	return &harness{
		root:    t.TempDir(),
		runner:  &fakeRunner{fail: map[string]int{}},
		spawner: &fakeSpawner{},
	}
}

func (h *harness) global() *Global {
	return &Global{
		Runner:  h.runner,
		Spawner: h.spawner,
		Stdout:  &h.stdout,
		Stderr:  &h.stderr,
	}
}

// execute parses args and runs the selected command, returning the process
// exit code main would use.
func (h *harness) execute(t *testing.T, args ...string) (int, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("askygg"), kong.Exit(func(int) {}), kong.Vars{"version": "test"})
	require.NoError(t, err)

	kctx, err := parser.Parse(append([]string{"--root", h.root}, args...))
	if err != nil {
		return 2, err
	}
	g := h.global()
	if err := kctx.Run(g, &cli); err != nil {
		adapter := foundationerrors.NewCLIErrorAdapter(false, nil).WithOutput(&h.stderr)
		return adapter.Report(err), err
	}
	return g.ExitCode, nil
}

func (h *harness) writeSettings(t *testing.T, values map[string]any) string {
	t.Helper()
	data, err := json.Marshal(values)
	require.NoError(t, err)
	path := filepath.Join(h.root, "settings.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func (h *harness) installTarget(t *testing.T, buildType string) string {
	t.Helper()
	dir := filepath.Join(h.root, "build_"+buildType, "askygg_editor")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	exe := filepath.Join(dir, "askygg_editor")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))
	return exe
}

func TestParse_RunFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    RunCmd
	}{
		{name: "defaults", args: []string{"run", "--mode", "headless"}, want: RunCmd{Mode: "headless", BuildType: "release", Settings: "settings.json"}},
		{name: "explicit", args: []string{"run", "--mode", "editor", "--build_type", "debug", "--settings", "s.json"}, want: RunCmd{Mode: "editor", BuildType: "debug", Settings: "s.json"}},
		{name: "missing mode", args: []string{"run"}, wantErr: true},
		{name: "unknown mode", args: []string{"run", "--mode", "batch"}, wantErr: true},
		{name: "unknown build type", args: []string{"run", "--mode", "editor", "--build_type", "profile"}, wantErr: true},
		{name: "setup takes no flags", args: []string{"setup", "--build_type", "debug"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli CLI
			parser, err := kong.New(&cli, kong.Exit(func(int) {}), kong.Vars{"version": "test"})
			require.NoError(t, err)

			_, err = parser.Parse(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cli.Run)
		})
	}
}

func TestParse_FlagEnvironmentFromDotEnv(t *testing.T) {
	chdirForTest(t, t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("ASKYGG_SETTINGS=from-dotenv.json\nASKYGG_ROOT=/srv/askygg\n"), 0o600))
	for _, k := range []string{"ASKYGG_SETTINGS", "ASKYGG_ROOT"} {
		t.Setenv(k, "") // restores the original value on cleanup
		require.NoError(t, os.Unsetenv(k))
	}

	config.LoadEnvFiles()

	var cli CLI
	parser, err := kong.New(&cli, kong.Exit(func(int) {}), kong.Vars{"version": "test"})
	require.NoError(t, err)
	_, err = parser.Parse([]string{"run", "--mode", "headless"})
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv.json", cli.Run.Settings)
	assert.Equal(t, "/srv/askygg", cli.Root)
}

func TestSetup_BuildsBothProfiles(t *testing.T) {
	h := newHarness(t)

	code, err := h.execute(t, "setup")
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	require.Len(t, h.runner.calls, 4)
	wantDirs := []string{"build_debug", "build_debug", "build_release", "build_release"}
	wantTools := []string{"cmake", "ninja", "cmake", "ninja"}
	for i, c := range h.runner.calls {
		assert.Equal(t, filepath.Join(h.root, wantDirs[i]), c.Dir)
		assert.Equal(t, wantTools[i], c.Name)
	}
	assert.DirExists(t, filepath.Join(h.root, "build_debug"))
	assert.DirExists(t, filepath.Join(h.root, "build_release"))
	assert.Contains(t, h.stdout.String(), "Configuring Debug Build...")
	assert.Contains(t, h.stdout.String(), "Building Release Targets...")
	assert.Contains(t, h.stdout.String(), "Build completed successfully.")
}

func TestSetup_ConfigureFailure(t *testing.T) {
	h := newHarness(t)
	h.runner.fail["build_debug/cmake"] = 3

	code, err := h.execute(t, "setup")
	require.Error(t, err)
	assert.Equal(t, 11, code)
	assert.Len(t, h.runner.calls, 1, "compile and release must not run")

	classified, ok := foundationerrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, foundationerrors.CategoryBuild, classified.Category())
	assert.Equal(t, "configure", classified.Context()["phase"])
	assert.Equal(t, 3, classified.Context()["exit_status"])
	assert.NotContains(t, h.stdout.String(), "Build completed successfully.")
}

func TestSetup_ReleaseCompileFailure(t *testing.T) {
	h := newHarness(t)
	h.runner.fail["build_release/ninja"] = 1

	code, err := h.execute(t, "setup")
	require.Error(t, err)
	assert.Equal(t, 11, code)
	assert.Len(t, h.runner.calls, 4)
	assert.Contains(t, h.stderr.String(), "release build failed")
}

func TestSetup_UsesConfiguredToolchainAndMetrics(t *testing.T) {
	h := newHarness(t)
	textfile := filepath.Join(h.root, "metrics", "askygg.prom")
	cfgPath := filepath.Join(h.root, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
toolchain:
  generator: Unix Makefiles
  build_tool: make
metrics:
  textfile: `+textfile+`
`), 0o600))

	_, err := h.execute(t, "--config", cfgPath, "setup")
	require.NoError(t, err)

	require.Len(t, h.runner.calls, 4)
	assert.Contains(t, h.runner.calls[0].Args, "Unix Makefiles")
	assert.Equal(t, "make", h.runner.calls[1].Name)

	data, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `askygg_build_outcomes_total{outcome="success"} 1`)
}

func TestExplicitConfigMustExist(t *testing.T) {
	h := newHarness(t)

	code, err := h.execute(t, "--config", filepath.Join(h.root, "absent.yaml"), "setup")
	require.Error(t, err)
	assert.Equal(t, 4, code)
	assert.Empty(t, h.runner.calls)
}

func TestRun_EndToEnd(t *testing.T) {
	h := newHarness(t)
	exe := h.installTarget(t, "release")
	settingsPath := h.writeSettings(t, map[string]any{"input_dir": "/a", "output_dir": "/b", "config_file": "/c.json"})
	h.spawner.code = 7

	code, err := h.execute(t, "run", "--mode", "editor", "--build_type", "release", "--settings", settingsPath)
	require.NoError(t, err)
	assert.Equal(t, 7, code)

	require.Len(t, h.spawner.calls, 1)
	assert.Equal(t, []string{exe, "--editor", "--input_dir", "/a", "--output_dir", "/b", "--config_file", "/c.json"},
		h.spawner.calls[0].Argv())
}

func TestRun_DefaultSettingsPath(t *testing.T) {
	h := newHarness(t)
	h.installTarget(t, "release")
	data, err := json.Marshal(map[string]string{"input_dir": "in", "output_dir": "out", "config_file": "cfg"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile("settings.json", data, 0o600))

	code, err := h.execute(t, "run", "--mode", "headless")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	require.Len(t, h.spawner.calls, 1)
	assert.Equal(t, "--headless", h.spawner.calls[0].Args[0])
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
		target   string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "incomplete settings",
			settings: map[string]any{"input_dir": "/a", "config_file": "/c.json"},
			target:   "release",
			wantCode: 7,
			wantMsg:  "output_dir",
		},
		{
			name:     "malformed settings",
			settings: map[string]any{"input_dir": 1, "output_dir": "/b", "config_file": "/c.json"},
			target:   "release",
			wantCode: 7,
			wantMsg:  "input_dir",
		},
		{
			name:     "missing executable",
			settings: map[string]any{"input_dir": "/a", "output_dir": "/b", "config_file": "/c.json"},
			target:   "debug",
			wantCode: 4,
			wantMsg:  "run setup first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.installTarget(t, tt.target)
			settingsPath := h.writeSettings(t, tt.settings)

			code, err := h.execute(t, "run", "--mode", "headless", "--settings", settingsPath)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, h.stderr.String(), tt.wantMsg)
			assert.Empty(t, h.spawner.calls)
		})
	}
}

func TestRun_MissingSettingsFile(t *testing.T) {
	h := newHarness(t)
	h.installTarget(t, "release")

	code, err := h.execute(t, "run", "--mode", "editor", "--settings", filepath.Join(h.root, "nope.json"))
	require.Error(t, err)
	assert.Equal(t, 7, code)
	assert.Empty(t, h.spawner.calls)
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+): it changes the working
// directory and restores the previous one when the test finishes.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
