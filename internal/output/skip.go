package output

import "github.com/spf13/afero"

// ShouldSkip reports whether encoding can be skipped because target already
// exists as a regular file. Force always re-encodes. Modification times are
// not compared.
func ShouldSkip(fsys afero.Fs, target Target, force bool) bool {
	if force {
		return false
	}
	info, err := fsys.Stat(target.Path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
