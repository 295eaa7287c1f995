// Command mediapress compresses the images and videos under a directory tree
// into a mirrored output directory.
//
// Subcommands:
//   - compress: run a batch (default input root is the working directory)
//   - classify: preview how each file would be handled without writing
//   - status: report encoder availability and output directory access
//   - config init|validate: manage the TOML configuration file
package main
