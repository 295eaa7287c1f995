// Package deps reports whether the external binaries mediapress shells out to
// are installed and runnable.
package deps
