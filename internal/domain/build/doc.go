// Package build holds the immutable build context resolved from the
// command line: project layout, target architecture and destination.
package build
