// Package fileutil resolves, relativizes, and compares filesystem paths and
// provides small file copy helpers.
package fileutil
