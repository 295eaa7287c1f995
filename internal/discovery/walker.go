package discovery

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"mediapress/internal/fileutil"
	"mediapress/internal/logging"
	"mediapress/internal/media"
	"mediapress/internal/services"
)

// InputFile is a regular file found under the walk root.
type InputFile struct {
	AbsPath string
	RelPath string
	// Ext is lower-cased without the leading dot.
	Ext string
}

// Kind classifies the file by extension.
func (f InputFile) Kind() media.Kind {
	return media.Classify(f.Ext)
}

// Options tunes a walk.
type Options struct {
	// Exclude lists absolute directories whose subtrees are pruned.
	Exclude []string
	Logger  *slog.Logger
}

// Walk enumerates every regular file under root in lexical order. Directories
// that cannot be read are skipped with a warning and the walk continues.
// Symlinked directories are not descended into; symlinks to regular files are
// returned.
func Walk(ctx context.Context, fsys afero.Fs, root string, opts Options) ([]InputFile, error) {
	logger := logging.NewComponentLogger(opts.Logger, "discovery")
	root = filepath.Clean(root)

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, services.Wrap(services.ErrPath, "discovery", "stat root", root, err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrPath, "discovery", "stat root", root+" is not a directory", nil)
	}

	w := &walker{fs: fsys, root: root, exclude: opts.Exclude, logger: logger}
	if err := w.walkDir(ctx, root); err != nil {
		return nil, err
	}
	logger.Debug("walk complete",
		logging.String("root", root),
		logging.Int("files", len(w.files)),
		logging.Int("skipped_dirs", w.skippedDirs),
	)
	return w.files, nil
}

type walker struct {
	fs          afero.Fs
	root        string
	exclude     []string
	logger      *slog.Logger
	files       []InputFile
	skippedDirs int
}

func (w *walker) walkDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		w.skippedDirs++
		logging.WarnWithContext(w.logger, "skipping unreadable directory", "directory_unreadable",
			logging.String("path", dir),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check directory permissions"),
			logging.String(logging.FieldImpact, "files in this directory were not compressed"),
		)
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if w.excluded(path) {
			w.logger.Debug("pruned excluded path", logging.String("path", path))
			continue
		}
		mode := entry.Mode()
		switch {
		case mode&os.ModeSymlink != 0:
			target, err := w.fs.Stat(path)
			if err != nil {
				logging.WarnWithContext(w.logger, "skipping broken symlink", "symlink_broken",
					logging.String("path", path),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "remove or repair the link"),
					logging.String(logging.FieldImpact, "link target was not compressed"),
				)
				continue
			}
			if !target.Mode().IsRegular() {
				continue
			}
			if w.excludedTarget(path) {
				w.logger.Debug("pruned link into excluded path", logging.String("path", path))
				continue
			}
			w.add(path)
		case entry.IsDir():
			if err := w.walkDir(ctx, path); err != nil {
				return err
			}
		case mode.IsRegular():
			w.add(path)
		}
	}
	return nil
}

func (w *walker) excluded(path string) bool {
	for _, dir := range w.exclude {
		if dir != "" && fileutil.Within(dir, path) {
			return true
		}
	}
	return false
}

// excludedTarget reports whether the link at path resolves into an excluded
// subtree.
func (w *walker) excludedTarget(path string) bool {
	for _, dir := range w.exclude {
		if dir != "" && fileutil.WithinResolved(dir, path) {
			return true
		}
	}
	return false
}

func (w *walker) add(path string) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return
	}
	w.files = append(w.files, InputFile{
		AbsPath: path,
		RelPath: rel,
		Ext:     media.Ext(path),
	})
}
