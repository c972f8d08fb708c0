package build

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestResolve_ArgumentCount rejects anything but three arguments.
func TestResolve_ArgumentCount(t *testing.T) {
	t.Parallel()

	cases := [][]string{
		nil,
		{"project"},
		{"project", "64"},
		{"project", "64", "out", "extra"},
	}
	for _, args := range cases {
		ctx, err := Resolve(args)
		require.ErrorIs(t, err, ErrArgument)
		require.Nil(t, ctx)
	}
}

// TestResolve_BuildType accepts only the literal 32 and 64 tags.
func TestResolve_BuildType(t *testing.T) {
	t.Parallel()

	for _, tag := range []string{"86", "", "128", "x64", " 64", "64 "} {
		_, err := Resolve([]string{"project", tag, "out"})
		require.ErrorIs(t, err, ErrArgument, "tag %q", tag)
	}

	ctx, err := Resolve([]string{"project", "32", "out"})
	require.NoError(t, err)
	require.Equal(t, Arch32, ctx.Arch())
	require.Equal(t, filepath.Join("SDL2-2.0.5", "lib", "x86", "SDL2.dll"), ctx.Arch().RuntimeLibrary())

	ctx, err = Resolve([]string{"project", "64", "out"})
	require.NoError(t, err)
	require.Equal(t, Arch64, ctx.Arch())
	require.Equal(t, filepath.Join("SDL2-2.0.5", "lib", "x64", "SDL2.dll"), ctx.Arch().RuntimeLibrary())
}

// TestResolve_Layout checks the paths derived from the project root.
func TestResolve_Layout(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	out := t.TempDir()

	ctx, err := Resolve([]string{root, "64", out})
	require.NoError(t, err)

	require.Equal(t, root, ctx.ProjectDir())
	require.Equal(t, out, ctx.BuildLocation())
	require.Equal(t, filepath.Join(root, "assets"), ctx.AssetDir())
	require.Equal(t, filepath.Join(root, "lib"), ctx.LibDir())
	require.Equal(t, filepath.Join(root, "scripts"), ctx.ScriptsDir())
	require.Equal(t, filepath.Join(root, "scripts", "tmp", "assets"), ctx.StagedArchive())
	require.Equal(t, filepath.Join(root, "lib", "SDL2-2.0.5", "lib", "x64", "SDL2.dll"), ctx.RuntimeLibrary())
}

// TestResolve_RelativePaths makes project and destination absolute.
func TestResolve_RelativePaths(t *testing.T) {
	t.Parallel()

	ctx, err := Resolve([]string{"game", "32", "build/out"})
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(ctx.ProjectDir()))
	require.True(t, filepath.IsAbs(ctx.BuildLocation()))
}

// TestResolveProject accepts exactly one project directory.
func TestResolveProject(t *testing.T) {
	t.Parallel()

	_, err := ResolveProject(nil)
	require.ErrorIs(t, err, ErrArgument)

	_, err = ResolveProject([]string{"a", "b"})
	require.ErrorIs(t, err, ErrArgument)

	_, err = ResolveProject([]string{""})
	require.ErrorIs(t, err, ErrArgument)

	root := t.TempDir()

	ctx, err := ResolveProject([]string{root})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "scripts", "tmp", "assets"), ctx.StagedArchive())
	require.Empty(t, ctx.BuildLocation())
}
