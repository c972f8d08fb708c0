// Package archive writes a directory tree into a deflate-compressed zip
// container and reads such containers back.
//
// Entry names are relative to the archived directory and always use
// forward slashes; directories are stored as "name/" entries. The game's
// asset loader looks entries up by these names, so the convention is stable.
package archive
