package build

import (
	"fmt"
	"path/filepath"
)

const (
	// ArgsCount is the number of positional arguments of a full build.
	ArgsCount = 3

	// ArchiveName is the file name of the produced asset archive.
	ArchiveName = "assets"

	assetsDirName  = "assets"
	libDirName     = "lib"
	scriptsDirName = "scripts"
	stagingDirName = "tmp"
)

// Context describes one packaging run. It is never modified after Resolve.
type Context struct {
	projectDir    string
	arch          Arch
	buildLocation string
}

// Resolve validates project_dir, build_type and build_location and derives the project layout.
// It does not touch the filesystem.
func Resolve(args []string) (*Context, error) {
	if len(args) != ArgsCount {
		return nil, fmt.Errorf("%w: expected %d arguments, got %d", ErrArgument, ArgsCount, len(args))
	}

	arch, err := ParseArch(args[1])
	if err != nil {
		return nil, err
	}

	projectDir, err := absPath(args[0])
	if err != nil {
		return nil, err
	}

	buildLocation, err := absPath(args[2])
	if err != nil {
		return nil, err
	}

	return &Context{
		projectDir:    projectDir,
		arch:          arch,
		buildLocation: buildLocation,
	}, nil
}

// ResolveProject builds a context from a single project_dir argument.
// It serves the standalone staging run, which neither copies the runtime nor delivers,
// so Arch and BuildLocation stay empty.
func ResolveProject(args []string) (*Context, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: expected 1 argument, got %d", ErrArgument, len(args))
	}

	dir, err := absPath(args[0])
	if err != nil {
		return nil, err
	}

	return &Context{projectDir: dir}, nil
}

// ProjectDir returns the absolute project root.
func (c *Context) ProjectDir() string {
	return c.projectDir
}

// AssetDir returns the root of the tree that gets archived.
func (c *Context) AssetDir() string {
	return filepath.Join(c.projectDir, assetsDirName)
}

// LibDir returns the project library directory.
func (c *Context) LibDir() string {
	return filepath.Join(c.projectDir, libDirName)
}

// ScriptsDir returns the project scripts directory.
func (c *Context) ScriptsDir() string {
	return filepath.Join(c.projectDir, scriptsDirName)
}

// StagingDir returns the directory holding the staged archive.
func (c *Context) StagingDir() string {
	return filepath.Join(c.ScriptsDir(), stagingDirName)
}

// StagedArchive returns the fixed staging path of the archive.
func (c *Context) StagedArchive() string {
	return filepath.Join(c.StagingDir(), ArchiveName)
}

// Arch returns the selected architecture.
func (c *Context) Arch() Arch {
	return c.arch
}

// RuntimeLibrary returns the absolute path of the runtime library for the selected architecture.
func (c *Context) RuntimeLibrary() string {
	return filepath.Join(c.LibDir(), c.arch.RuntimeLibrary())
}

// BuildLocation returns the absolute destination directory.
func (c *Context) BuildLocation() string {
	return c.buildLocation
}

func absPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrArgument)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %q: %v", ErrArgument, path, err)
	}

	return abs, nil
}
