// Package fsutil contains small filesystem helpers shared by the packager.
package fsutil
