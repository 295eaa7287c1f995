// Package media classifies input files by extension into the kinds mediapress
// knows how to compress.
package media
