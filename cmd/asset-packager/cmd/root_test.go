package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/asset-packager/internal/domain/build"
)

// execute runs the root command with args and resets flag state afterwards.
func execute(t *testing.T, args ...string) error {
	t.Helper()

	t.Cleanup(func() {
		configPath = ""
		logLevel = ""
	})

	rootCmd.SetArgs(args)

	return rootCmd.ExecuteContext(context.Background())
}

// TestRoot_RejectsBadBuildType surfaces the argument error kind.
func TestRoot_RejectsBadBuildType(t *testing.T) {
	err := execute(t, t.TempDir(), "86", t.TempDir())
	require.ErrorIs(t, err, build.ErrArgument)
}

// TestRoot_RejectsArgumentCount covers too few arguments.
func TestRoot_RejectsArgumentCount(t *testing.T) {
	err := execute(t, t.TempDir(), "64")
	require.ErrorIs(t, err, build.ErrArgument)
}

// TestRoot_BadLogLevel fails before any packaging.
func TestRoot_BadLogLevel(t *testing.T) {
	dest := t.TempDir()

	err := execute(t, "--log-level", "loud", t.TempDir(), "64", dest)
	require.Error(t, err)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	require.Empty(t, entries)
}

// TestStage_Subcommand builds the staged archive through the CLI.
func TestStage_Subcommand(t *testing.T) {
	project := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(project, "assets", "svg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(project, "assets", "svg", "king.svg"), []byte("<svg/>"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(project, "scripts"), 0o755))

	require.NoError(t, execute(t, "stage", "--log-level", "warn", project))

	_, err := os.Stat(filepath.Join(project, "scripts", "tmp", "assets"))
	require.NoError(t, err)
}

// TestRoot_ProjectNamedLikeSubcommand treats ./version as a project directory.
func TestRoot_ProjectNamedLikeSubcommand(t *testing.T) {
	base := t.TempDir()
	t.Chdir(base)

	project := filepath.Join(base, "version")
	require.NoError(t, os.MkdirAll(filepath.Join(project, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(project, "assets", "a.txt"), []byte("a"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(project, "scripts"), 0o755))

	err := execute(t, "./version", "86", t.TempDir())
	require.ErrorIs(t, err, build.ErrArgument)

	require.NoError(t, execute(t, "stage", "./version"))

	_, err = os.Stat(filepath.Join(project, "scripts", "tmp", "assets"))
	require.NoError(t, err)
}
