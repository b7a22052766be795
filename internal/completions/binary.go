package completions

import (
	"os"
	"path/filepath"
)

// ResolveBinary returns the absolute path and base name of the running
// executable, resolving symlinks. fallback is used when neither the
// executable nor os.Args can be determined.
func ResolveBinary(fallback string) (path, name string) {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			path = resolved
		} else {
			path = exe
		}
	} else if len(os.Args) > 0 {
		path = os.Args[0]
	}

	if path == "" {
		return fallback, fallback
	}
	return path, filepath.Base(path)
}
