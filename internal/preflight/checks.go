package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"mediapress/internal/deps"
	"mediapress/internal/services"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path), Marker: services.ErrFileSystem}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err), Marker: services.ErrFileSystem}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path), Marker: services.ErrFileSystem}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err), Marker: services.ErrFileSystem}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckOutputWritable passes when path is an accessible directory, or when it
// does not exist yet and its nearest existing ancestor allows creating it.
func CheckOutputWritable(name, path string) Result {
	if _, err := os.Lstat(path); err == nil {
		return CheckDirectoryAccess(name, path)
	}
	ancestor := filepath.Dir(filepath.Clean(path))
	for {
		if _, err := os.Stat(ancestor); err == nil {
			break
		}
		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			break
		}
		ancestor = parent
	}
	check := CheckDirectoryAccess(name, ancestor)
	if !check.Passed {
		check.Detail = fmt.Sprintf("%s cannot be created: %s", path, check.Detail)
		return check
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckBinaries runs the availability check for each requirement.
func CheckBinaries(ctx context.Context, reqs []deps.Requirement) []Result {
	statuses := deps.Check(ctx, reqs)
	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		result := Result{Name: status.Name, Passed: status.Available, Optional: status.Optional, Detail: status.Detail}
		if status.Available {
			result.Detail = status.Resolved
		} else {
			result.Marker = services.ErrEncoderUnavailable
		}
		results = append(results, result)
	}
	return results
}
