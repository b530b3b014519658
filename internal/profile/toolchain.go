package profile

import (
	"git.home.luguber.info/inful/askygg/internal/process"
)

// Toolchain names the generator/build-tool pair and compilers used to build
// every profile.
type Toolchain struct {
	ConfigureTool string   `yaml:"configure_tool"`
	Generator     string   `yaml:"generator"`
	CCompiler     string   `yaml:"c_compiler"`
	CXXCompiler   string   `yaml:"cxx_compiler"`
	BuildTool     string   `yaml:"build_tool"`
	SourceDir     string   `yaml:"source_dir"`
	ConfigureArgs []string `yaml:"configure_args,omitempty"`
	CompileArgs   []string `yaml:"compile_args,omitempty"`
}

// DefaultToolchain is CMake generating Ninja files with gcc/g++, the source
// tree being the parent of each build directory.
func DefaultToolchain() Toolchain {
	return Toolchain{
		ConfigureTool: "cmake",
		Generator:     "Ninja",
		CCompiler:     "gcc",
		CXXCompiler:   "g++",
		BuildTool:     "ninja",
		SourceDir:     "..",
	}
}

// WithDefaults fills empty fields from DefaultToolchain.
func (t Toolchain) WithDefaults() Toolchain {
	def := DefaultToolchain()
	if t.ConfigureTool == "" {
		t.ConfigureTool = def.ConfigureTool
	}
	if t.Generator == "" {
		t.Generator = def.Generator
	}
	if t.CCompiler == "" {
		t.CCompiler = def.CCompiler
	}
	if t.CXXCompiler == "" {
		t.CXXCompiler = def.CXXCompiler
	}
	if t.BuildTool == "" {
		t.BuildTool = def.BuildTool
	}
	if t.SourceDir == "" {
		t.SourceDir = def.SourceDir
	}
	return t
}

// ConfigureCommand is the generator invocation for p, run inside buildDir.
func (t Toolchain) ConfigureCommand(p Profile, buildDir string) process.Command {
	args := []string{
		"-G", t.Generator,
		"-DCMAKE_BUILD_TYPE=" + p.CMakeBuildType(),
		"-DCMAKE_C_COMPILER=" + t.CCompiler,
		"-DCMAKE_CXX_COMPILER=" + t.CXXCompiler,
	}
	args = append(args, t.ConfigureArgs...)
	args = append(args, t.SourceDir)
	return process.Command{Name: t.ConfigureTool, Args: args, Dir: buildDir}
}

// CompileCommand is the build tool invocation run inside buildDir.
func (t Toolchain) CompileCommand(buildDir string) process.Command {
	args := append([]string(nil), t.CompileArgs...)
	return process.Command{Name: t.BuildTool, Args: args, Dir: buildDir}
}
