package fileutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// OutputMode is the permission given to files mediapress writes.
const OutputMode os.FileMode = 0o644

// WriteFileAtomic writes data to path through a sibling temp file and a
// rename, so readers never observe a partial output. Parent directories are
// created.
func WriteFileAtomic(path string, data []byte) error {
	return writeAtomic(path, bytes.NewReader(data))
}

// CopyFileAtomic copies src to dst with the same guarantees as
// WriteFileAtomic.
func CopyFileAtomic(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	return writeAtomic(dst, in)
}

func writeAtomic(path string, r io.Reader) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".mediapress-*"+filepath.Ext(path))
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, r); err != nil {
		return err
	}
	if err = tmp.Chmod(OutputMode); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
