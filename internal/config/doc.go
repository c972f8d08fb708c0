// Package config defines the optional packager settings and provides
// helpers to load, validate and save them in YAML format.
//
// Without a settings file the defaults apply: info logging and the
// compressor's default deflate level.
package config
