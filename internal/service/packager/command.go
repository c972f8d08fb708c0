package packager

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/asset-packager/internal/archive"
	"github.com/oshokin/asset-packager/internal/config"
	"github.com/oshokin/asset-packager/internal/domain/build"
	"github.com/oshokin/asset-packager/internal/fsutil"
	"github.com/oshokin/asset-packager/internal/logger"
	"github.com/oshokin/asset-packager/internal/version"
)

// stagingDirMode is used when the staging directory is created.
const stagingDirMode os.FileMode = 0o755

// Options contains inputs for the packager entry points.
type Options struct {
	// Args are the positional command-line arguments.
	Args []string
	// Config holds optional tuning; nil means defaults.
	Config *config.Config
}

// packager runs the pipeline for one resolved build context.
// It is unexported; callers use Run or StageAssets.
type packager struct {
	// build is the resolved, read-only build context.
	build *build.Context
	// compressionLevel is the deflate level for archive entries.
	compressionLevel int
	// state is the last state reached.
	state State
}

// step is one transition of the pipeline.
type step struct {
	name string
	next State
	run  func(context.Context) error
}

// Run executes the full workflow: copy the runtime library, build the
// archive and deliver it to the build location.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "asset-packager")

	pkg := newPackager(opts)

	bctx, err := build.Resolve(opts.Args)
	if err != nil {
		return &Error{State: pkg.state, Step: "resolve arguments", Err: err}
	}

	pkg.build = bctx
	pkg.state = StateArgsValidated
	pkg.logLayout(ctx)

	steps := []step{
		{name: "copy runtime library", next: StateRuntimeCopied, run: pkg.copyRuntimeLibrary},
		{name: "build archive", next: StateArchiveBuilt, run: pkg.buildArchive},
		{name: "deliver archive", next: StateDelivered, run: pkg.deliverArchive},
	}

	if err = pkg.advance(ctx, steps); err != nil {
		return err
	}

	pkg.state = StateDone

	logger.Info(ctx, "Packaging completed successfully")

	return nil
}

// StageAssets only builds the staged archive for a project directory.
func StageAssets(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "asset-packager")

	pkg := newPackager(opts)

	bctx, err := build.ResolveProject(opts.Args)
	if err != nil {
		return &Error{State: pkg.state, Step: "resolve arguments", Err: err}
	}

	pkg.build = bctx
	pkg.state = StateArgsValidated

	logger.InfoKV(ctx, "Staging assets",
		"asset_dir", bctx.AssetDir(),
		"staged_archive", bctx.StagedArchive())

	return pkg.advance(ctx, []step{
		{name: "build archive", next: StateArchiveBuilt, run: pkg.buildArchive},
	})
}

func newPackager(opts *Options) *packager {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	return &packager{
		compressionLevel: cfg.CompressionLevel,
		state:            StateStart,
	}
}

// advance runs steps in order and stops at the first failure.
func (p *packager) advance(ctx context.Context, steps []step) error {
	for _, s := range steps {
		stepCtx := logger.WithKV(ctx, "step", s.name)

		logger.DebugKV(stepCtx, "Running step", "state", p.state)

		if err := s.run(stepCtx); err != nil {
			return &Error{State: p.state, Step: s.name, Err: err}
		}

		p.state = s.next
	}

	return nil
}

// logLayout echoes the resolved paths for the operator.
func (p *packager) logLayout(ctx context.Context) {
	logger.InfoKV(ctx, "Resolved build layout",
		"version", version.Short(),
		"project_dir", p.build.ProjectDir(),
		"asset_dir", p.build.AssetDir(),
		"lib_dir", p.build.LibDir(),
		"scripts_dir", p.build.ScriptsDir(),
		"runtime_library", p.build.RuntimeLibrary(),
		"build_type", p.build.Arch(),
		"build_location", p.build.BuildLocation())
}

// copyRuntimeLibrary copies the SDL2 library for the selected architecture into the build location.
func (p *packager) copyRuntimeLibrary(ctx context.Context) error {
	src := p.build.RuntimeLibrary()

	if err := requireFile(src); err != nil {
		return err
	}

	dst, err := fsutil.CopyToDir(src, p.build.BuildLocation())
	if err != nil {
		return fmt.Errorf("%w: %w", build.ErrIO, err)
	}

	logger.InfoKV(ctx, "Copied runtime library", "path", dst)

	return nil
}

// buildArchive writes every entry of the asset directory into the staged archive.
func (p *packager) buildArchive(ctx context.Context) error {
	stagingDir := p.build.StagingDir()

	// Only the staging directory itself is created; scripts/ must already exist.
	if err := os.Mkdir(stagingDir, stagingDirMode); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: create staging directory: %w", build.ErrIO, err)
	}

	stats, err := archive.Build(ctx, p.build.AssetDir(), p.build.StagedArchive(),
		archive.WithCompressionLevel(p.compressionLevel))
	if err != nil {
		return fmt.Errorf("%w: %w", build.ErrIO, err)
	}

	logger.InfoKV(ctx, "Built asset archive",
		"path", p.build.StagedArchive(),
		"files", stats.Files,
		"dirs", stats.Dirs,
		"uncompressed", humanize.IBytes(uint64(stats.Bytes))) //nolint:gosec // Sizes are never negative.

	return nil
}

// deliverArchive copies the staged archive into the build location.
func (p *packager) deliverArchive(ctx context.Context) error {
	src := p.build.StagedArchive()

	if err := requireFile(src); err != nil {
		return err
	}

	dst, err := fsutil.CopyToDir(src, p.build.BuildLocation())
	if err != nil {
		return fmt.Errorf("%w: %w", build.ErrIO, err)
	}

	listing, err := archive.Inspect(dst)
	if err != nil {
		return fmt.Errorf("%w: %w", build.ErrIO, err)
	}

	dirs := 0

	for _, entry := range listing.Entries {
		if entry.IsDir() {
			dirs++
		}
	}

	logger.InfoKV(ctx, "Delivered asset archive",
		"path", dst,
		"files", len(listing.Entries)-dirs,
		"dirs", dirs,
		"size", humanize.IBytes(uint64(listing.Size)), //nolint:gosec // Sizes are never negative.
		"blake3", listing.Digest)

	return nil
}

// requireFile maps an absent path to build.ErrMissingFile.
func requireFile(path string) error {
	_, err := os.Stat(path)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", build.ErrMissingFile, path)
	default:
		return fmt.Errorf("%w: %w", build.ErrIO, err)
	}
}
