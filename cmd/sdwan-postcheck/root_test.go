package main

import (
	"archive/tar"
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arunsidharrth/SDWAN/internal/cli"
	"github.com/arunsidharrth/SDWAN/internal/discovery"
	"github.com/arunsidharrth/SDWAN/internal/validation"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// writeBackup lays out backups/<date> under work with every artifact a
// successful backup run leaves behind.
func writeBackup(t *testing.T, work, date string) string {
	t.Helper()
	dir := filepath.Join(work, "backups", date)
	for _, name := range []string{"device_template.json", "feature_template.json", "policy_definition.json", "policy_list.json"} {
		writeFile(t, filepath.Join(dir, "data", "20240315_101500", name), `{"data": [{"name": "x"}]}`)
	}
	writeFile(t, filepath.Join(dir, "reports", "backup_summary_20240315.txt"),
		"Device Templates: 4\nFeature Templates: 20\nPolicy Definitions: 6\nPolicy Lists: 3\n")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(zw)
	content := []byte(`{"data": []}`)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "data/device_template.json", Mode: 0644, Size: int64(len(content))}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, zw.Close())
	writeFile(t, filepath.Join(dir, "archives", "backup_"+date+".tar.gz"), buf.String())
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPostCheck_LatestBackupPasses(t *testing.T) {
	work := t.TempDir()
	t.Chdir(work)
	require.NoError(t, os.MkdirAll(filepath.Join(work, "backups", "2024-01-01"), 0755))
	latest := writeBackup(t, work, "2024-03-15")

	out, err := execute(t, "--output-dir", "out", "--format", "junit,markdown,html", "--event-log", "events.ndjson")
	require.NoError(t, err, out)

	assert.Contains(t, out, "SD-WAN AUTOMATION POST-CHECK")
	assert.Contains(t, out, "Operation: BACKUP")
	assert.Contains(t, out, "📂 Analyzing: "+latest)
	assert.Contains(t, out, "✓  PASS - Backup Statistics: Total items backed up: 33")
	assert.Contains(t, out, "🎉 BACKUP VALIDATION SUCCESSFUL!")
	assert.Contains(t, out, "💡 RECOMMENDATIONS:")

	for _, pattern := range []string{
		"postcheck_report_backup_*.json",
		"postcheck_summary_backup_*.txt",
		"postcheck_junit_backup_*.xml",
		"postcheck_markdown_backup_*.md",
		"postcheck_html_backup_*.html",
	} {
		matches, err := filepath.Glob(filepath.Join(work, "out", pattern))
		require.NoError(t, err)
		assert.Len(t, matches, 1, pattern)
	}

	reports, _ := filepath.Glob(filepath.Join(work, "out", "postcheck_report_backup_*.json"))
	require.Len(t, reports, 1)
	data, err := os.ReadFile(reports[0])
	require.NoError(t, err)
	assert.Empty(t, validation.ValidateReportBytes(data))

	f, err := os.Open(filepath.Join(work, "events.ndjson"))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck
	lines := 0
	for sc := bufio.NewScanner(f); sc.Scan(); {
		lines++
	}
	assert.Equal(t, 8, lines, "run start, six checks, run complete")
}

func TestPostCheck_ExplicitDirectoryWithFailures(t *testing.T) {
	work := t.TempDir()
	t.Chdir(work)
	dir := filepath.Join(work, "custom")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data", "20240315_101500"), 0755))

	out, err := execute(t, "-d", "custom", "--output-dir", "out")
	require.Error(t, err)

	var failed *cli.ChecksFailedError
	require.True(t, errors.As(err, &failed))
	assert.Contains(t, out, "📂 Analyzing: "+dir)
	assert.Contains(t, out, "✗  FAIL - Essential Backup Files: Missing: ")
	assert.Contains(t, out, "❌ ISSUES DETECTED IN BACKUP!")
	assert.NotContains(t, out, "Checking Backup Statistics...")
}

func TestPostCheck_ListOperation(t *testing.T) {
	work := t.TempDir()
	t.Chdir(work)
	data := filepath.Join(work, "lists", "2024-03-15", "data")
	for _, kind := range []string{"device_template", "feature_template", "policy_definition", "policy_list", "configuration_group"} {
		writeFile(t, filepath.Join(data, kind+"_list_20240315.txt"), "name\n")
	}
	writeFile(t, filepath.Join(data, "consolidated_inventory_20240315.txt"), "inventory\n")

	out, err := execute(t, "-o", "list", "--output-dir", "out")
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓  PASS - Configuration List Files: All configuration types listed (5 types)")
	assert.Contains(t, out, "🎉 LIST VALIDATION SUCCESSFUL!")
	assert.NotContains(t, out, "Backup Completion")
}

func TestPostCheck_NoOperationDirectory(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "--operation", "backup")
	require.ErrorIs(t, err, discovery.ErrNoOperationDir)
	assert.Contains(t, out, "❌ No recent backup directory found!")
	assert.Contains(t, out, "Make sure you've run the backup playbook first.")
	assert.NotContains(t, out, "SUMMARY")

	var buf bytes.Buffer
	assert.Equal(t, ExitFailure, exitCode(&buf, err))
	assert.Empty(t, buf.String())
}

func TestPostCheck_InvalidOperation(t *testing.T) {
	_, err := execute(t, "--operation", "restore")
	assert.ErrorContains(t, err, `invalid operation "restore"`)
}

func TestExitCode(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ExitSuccess, exitCode(&buf, nil))
	assert.Equal(t, ExitFailure, exitCode(&buf, &cli.ChecksFailedError{Tool: "postcheck", Failed: 1}))
	assert.Empty(t, buf.String())

	assert.Equal(t, ExitFailure, exitCode(&buf, context.Canceled))
	assert.Contains(t, buf.String(), "Post-check interrupted by user")

	buf.Reset()
	assert.Equal(t, ExitFailure, exitCode(&buf, errors.New("boom")))
	assert.Equal(t, "error: boom\n", buf.String())
}
