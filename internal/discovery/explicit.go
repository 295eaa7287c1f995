package discovery

import (
	"os"
	"path/filepath"

	"mediapress/internal/fileutil"
	"mediapress/internal/media"
	"mediapress/internal/services"
)

// FromPath builds an InputFile for an explicitly named file. The path is
// canonicalized and must live under root; otherwise services.ErrPath is
// returned.
func FromPath(root, path string) (InputFile, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, path)
	}
	resolved, err := fileutil.ResolveAbsolute(abs)
	if err != nil {
		return InputFile{}, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return InputFile{}, services.Wrap(services.ErrPath, "discovery", "stat input", resolved, err)
	}
	if !info.Mode().IsRegular() {
		return InputFile{}, services.Wrap(services.ErrPath, "discovery", "stat input", resolved+" is not a regular file", nil)
	}
	rel, err := fileutil.Relativize(root, resolved)
	if err != nil {
		return InputFile{}, err
	}
	return InputFile{
		AbsPath: resolved,
		RelPath: rel,
		Ext:     media.Ext(resolved),
	}, nil
}
