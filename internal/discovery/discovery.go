// Package discovery locates the operation directories produced by earlier
// automation runs.
package discovery

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// DateLayout is the directory naming scheme for operation directories.
const DateLayout = "2006-01-02"

// ErrNoOperationDir is returned when no date-named directory exists under
// any of the base directories.
var ErrNoOperationDir = errors.New("no operation directory found")

// OperationDir is a date-named directory found under a base directory.
type OperationDir struct {
	Path string
	Date time.Time
}

// ListOperationDirs returns every YYYY-MM-DD subdirectory of base. Entries
// that are not directories or whose name is not a valid date are skipped.
// A missing base directory yields no entries and no error.
func ListOperationDirs(base string) ([]OperationDir, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", base, err)
	}

	var dirs []OperationDir
	for _, e := range entries {
		path := filepath.Join(base, e.Name())
		if !isDir(path) {
			continue
		}
		date, err := time.Parse(DateLayout, e.Name())
		if err != nil {
			slog.Debug("Ignoring non-date directory", "path", path)
			continue
		}
		dirs = append(dirs, OperationDir{Path: path, Date: date})
	}
	return dirs, nil
}

// LatestOperationDir returns the chronologically latest date-named
// directory across bases. On equal dates the earlier base wins.
func LatestOperationDir(bases []string) (string, error) {
	var latest *OperationDir
	for _, base := range bases {
		dirs, err := ListOperationDirs(base)
		if err != nil {
			return "", err
		}
		for i := range dirs {
			if latest == nil || dirs[i].Date.After(latest.Date) {
				latest = &dirs[i]
			}
		}
	}
	if latest == nil {
		return "", ErrNoOperationDir
	}
	return latest.Path, nil
}

// isDir follows symlinks the same way a stat-based check would.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Exists reports whether path exists, file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
