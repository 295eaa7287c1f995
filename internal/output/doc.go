// Package output maps input files onto their mirrored location under the
// output root and decides whether an existing output lets a file be skipped.
package output
