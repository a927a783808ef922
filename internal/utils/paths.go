package utils

import "path/filepath"

// ResolvePaths resolves search directories against baseDir. Relative paths
// are joined to baseDir, every path is cleaned, and empty or repeated
// entries are dropped so each directory is searched once, in order.
func ResolvePaths(paths []string, baseDir string) []string {
	var resolved []string
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		p = filepath.Clean(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		resolved = append(resolved, p)
	}
	return resolved
}
