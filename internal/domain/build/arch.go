package build

import (
	"fmt"
	"path/filepath"
)

// Arch selects the target architecture of a build.
type Arch string

const (
	// Arch32 is the 32-bit build tag.
	Arch32 Arch = "32"
	// Arch64 is the 64-bit build tag.
	Arch64 Arch = "64"

	// RuntimeLibraryName is the file name of the SDL2 runtime shipped next to the game.
	RuntimeLibraryName = "SDL2.dll"

	sdlDir = "SDL2-2.0.5"
)

// ParseArch accepts only the literal tags "32" and "64".
func ParseArch(s string) (Arch, error) {
	switch Arch(s) {
	case Arch32, Arch64:
		return Arch(s), nil
	default:
		return "", fmt.Errorf("%w: invalid build type %q, expected %q or %q", ErrArgument, s, Arch32, Arch64)
	}
}

// RuntimeLibrary returns the library path relative to the project lib directory.
func (a Arch) RuntimeLibrary() string {
	platform := "x64"
	if a == Arch32 {
		platform = "x86"
	}

	return filepath.Join(sdlDir, "lib", platform, RuntimeLibraryName)
}

func (a Arch) String() string {
	return string(a)
}
