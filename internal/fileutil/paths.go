package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"mediapress/internal/services"
)

// ResolveAbsolute returns the canonical absolute form of path with every
// symlink evaluated. Missing, broken, or unreadable paths fail with
// services.ErrPath.
func ResolveAbsolute(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", services.Wrap(services.ErrPath, "resolve", "absolute", "empty path", nil)
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", services.Wrap(services.ErrPath, "resolve", "absolute", trimmed, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		msg := abs
		switch {
		case errors.Is(err, fs.ErrNotExist):
			msg = fmt.Sprintf("%s does not exist", abs)
		case errors.Is(err, fs.ErrPermission):
			msg = fmt.Sprintf("%s is not accessible", abs)
		}
		return "", services.Wrap(services.ErrPath, "resolve", "evaluate symlinks", msg, err)
	}
	if _, err := os.Stat(resolved); err != nil {
		return "", services.Wrap(services.ErrPath, "resolve", "stat", resolved, err)
	}
	return resolved, nil
}

// ResolvePending canonicalizes a path that may not exist yet: the longest
// existing prefix has its symlinks evaluated and the missing components are
// appended unchanged.
func ResolvePending(path string) (string, error) {
	abs, err := filepath.Abs(strings.TrimSpace(path))
	if err != nil {
		return "", services.Wrap(services.ErrPath, "resolve", "absolute", path, err)
	}
	var missing []string
	current := abs
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", services.Wrap(services.ErrPath, "resolve", "evaluate symlinks", current, err)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return abs, nil
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}

// Relativize returns path expressed relative to root. Both arguments are
// expected to be absolute; a path that does not live under root fails with
// services.ErrPath.
func Relativize(root, path string) (string, error) {
	if !Within(root, path) {
		return "", services.Wrap(services.ErrPath, "resolve", "relativize", fmt.Sprintf("%s is not under %s", path, root), nil)
	}
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return "", services.Wrap(services.ErrPath, "resolve", "relativize", path, err)
	}
	return rel, nil
}

// Within reports whether path equals root or lives in root's subtree.
// Comparison is by path components on cleaned paths, so "/out2" is not within
// "/out".
func Within(root, path string) bool {
	root = filepath.Clean(root)
	path = filepath.Clean(path)
	if root == path {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return !filepath.IsAbs(rel)
}

// WithinResolved is Within applied to path with its symlinks evaluated. A
// path that cannot be resolved is compared as given.
func WithinResolved(root, path string) bool {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return Within(root, path)
}
