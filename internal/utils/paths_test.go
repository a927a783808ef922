package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePaths(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		baseDir  string
		expected []string
	}{
		{name: "nil list", paths: nil, baseDir: "/work", expected: nil},
		{name: "only empty entries", paths: []string{"", ""}, baseDir: "/work", expected: nil},
		{
			name:     "relative bases joined to work dir",
			paths:    []string{"backups", "lists"},
			baseDir:  "/work",
			expected: []string{"/work/backups", "/work/lists"},
		},
		{
			name:     "absolute base kept",
			paths:    []string{"/srv/sdwan/backups", "lists"},
			baseDir:  "/work",
			expected: []string{"/srv/sdwan/backups", "/work/lists"},
		},
		{
			name:     "same directory searched once",
			paths:    []string{"backups", "./backups/", "/work/backups"},
			baseDir:  "/work",
			expected: []string{"/work/backups"},
		},
		{
			name:     "parent references cleaned",
			paths:    []string{"../shared/backups"},
			baseDir:  "/work/project",
			expected: []string{"/work/shared/backups"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolvePaths(tt.paths, tt.baseDir))
		})
	}
}
