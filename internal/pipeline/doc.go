// Package pipeline drives one compression batch.
//
// A Runner resolves the input and output roots, enumerates candidate files
// (or canonicalizes the explicitly named ones), and handles each file in turn:
// classify by extension, map to the mirrored output path, skip when the output
// already exists, and dispatch to the image or video encoder. Files are
// processed strictly one at a time. Each file's outcome is recorded in a
// Summary; a failure on one file never stops the batch.
package pipeline
