// Package packager packages a game's assets for a build.
//
// Run resolves the build context from the command line, copies the SDL2
// runtime for the selected architecture into the build location, zips the
// project's assets directory into scripts/tmp/assets and copies that archive
// next to the runtime. StageAssets performs only the archive step.
package packager
