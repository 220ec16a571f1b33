package release

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const globMeta = "*?[{"

// resolveSource returns the regular file named by path. With glob enabled,
// a path containing pattern characters must match exactly one file.
func resolveSource(path string, glob bool) (string, error) {
	if glob && strings.ContainsAny(path, globMeta) {
		matches, err := doublestar.FilepathGlob(path, doublestar.WithFilesOnly())
		if err != nil {
			return "", fmt.Errorf("%w: bad pattern %q: %w", ErrSourceNotFound, path, err)
		}

		switch len(matches) {
		case 0:
			return "", fmt.Errorf("%w: no file matches %q", ErrSourceNotFound, path)
		case 1:
			path = matches[0]
		default:
			return "", fmt.Errorf("%w: %q matches %d files", ErrSourceNotFound, path, len(matches))
		}
	}

	st, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrSourceNotFound, path, err)
	}

	if !st.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %q", ErrSourceNotFound, path)
	}

	return path, nil
}
