package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"mediapress/internal/media"
	"mediapress/internal/services"
)

// Target is the destination of one compressed file.
type Target struct {
	Path string
	Kind media.Kind
}

// Mapper mirrors root-relative input paths into the output root.
type Mapper struct {
	fs   afero.Fs
	root string
}

// NewMapper returns a Mapper writing under root, which should be absolute.
func NewMapper(fsys afero.Fs, root string) *Mapper {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Mapper{fs: fsys, root: filepath.Clean(root)}
}

// Root returns the output root.
func (m *Mapper) Root() string {
	return m.root
}

// Map joins rel onto the output root, swaps its extension for the kind's
// target extension and creates every missing parent directory.
func (m *Mapper) Map(rel string, kind media.Kind) (Target, error) {
	ext := kind.TargetExtension()
	if ext == "" {
		return Target{}, services.Wrap(services.ErrUnsupportedFormat, "output", "map", rel, nil)
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return Target{}, services.Wrap(services.ErrPath, "output", "map", fmt.Sprintf("%q is not a relative path inside the input root", rel), nil)
	}

	base := strings.TrimSuffix(cleaned, filepath.Ext(cleaned))
	path := filepath.Join(m.root, base+"."+ext)
	if err := m.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Target{}, services.Wrap(services.ErrFileSystem, "output", "create directories", filepath.Dir(path), err)
	}
	return Target{Path: path, Kind: kind}, nil
}

// EnsureRoot creates the output root and all intermediate directories.
func (m *Mapper) EnsureRoot() error {
	if err := m.fs.MkdirAll(m.root, 0o755); err != nil {
		return services.Wrap(services.ErrFileSystem, "output", "create root", m.root, err)
	}
	return nil
}
