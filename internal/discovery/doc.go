// Package discovery enumerates candidate input files under a root directory
// and builds InputFile records for explicitly named files.
//
// Walks go through an afero.Fs so tests can use an in-memory tree. Output
// directories are pruned by subtree containment, unreadable directories are
// logged and skipped, and results are sorted so runs are deterministic.
package discovery
