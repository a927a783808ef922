package precheck

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arunsidharrth/SDWAN/internal/checks"
)

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func (s *Suite) checkDirectories(_ context.Context, rec *checks.Recorder) {
	for _, name := range s.Config.PreCheck.Directories {
		check := "Directory: " + name
		dir := filepath.Join(s.WorkDir, name)

		info, err := os.Stat(dir)
		switch {
		case err == nil && !info.IsDir():
			rec.Fail(check, "Exists but is not a directory")
		case err == nil:
			if writable(dir) {
				rec.Pass(check, "Exists and writable")
			} else {
				rec.Fail(check, "Exists but not writable")
			}
		case isNotExist(err):
			if err := os.MkdirAll(dir, 0755); err != nil {
				rec.Fail(check, fmt.Sprintf("Failed to create: %v", err))
			} else {
				rec.Pass(check, "Created successfully")
			}
		default:
			rec.Fail(check, fmt.Sprintf("Cannot access: %v", err))
		}
	}
}

// writable probes dir by creating and removing a temporary file.
func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".sdwan-precheck-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()       //nolint:errcheck
	os.Remove(name) //nolint:errcheck
	return true
}

func (s *Suite) checkPlaybooks(_ context.Context, rec *checks.Recorder) {
	for _, playbook := range s.Config.PreCheck.Playbooks {
		check := "Playbook: " + playbook

		if info, err := os.Stat(filepath.Join(s.WorkDir, playbook)); err == nil && !info.IsDir() {
			rec.Pass(check, "Found in "+s.WorkDir)
			continue
		}

		if rel, ok := findNested(s.WorkDir, playbook); ok {
			rec.Warn(check, fmt.Sprintf("Found in %s/", rel))
			continue
		}
		rec.Fail(check, "Not found in project directory")
	}
}

// findNested searches below root for a file called name and returns the
// slash-separated directory of the first match, relative to root.
func findNested(root, name string) (string, bool) {
	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, "**/"+name)
	if err != nil {
		return "", false
	}
	sort.Strings(matches)
	for _, m := range matches {
		if info, err := fs.Stat(fsys, m); err == nil && !info.IsDir() {
			return path.Dir(m), true
		}
	}
	return "", false
}
