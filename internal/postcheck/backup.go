package postcheck

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/arunsidharrth/SDWAN/internal/archive"
	"github.com/arunsidharrth/SDWAN/internal/checks"
	"github.com/arunsidharrth/SDWAN/internal/discovery"
	"github.com/arunsidharrth/SDWAN/internal/models"
	"github.com/arunsidharrth/SDWAN/internal/reporting"
)

const (
	dataDirName     = "data"
	archivesDirName = "archives"
	reportsDirName  = "reports"
)

func (in *Inspector) checkBackupCompletion(_ context.Context, rec *checks.Recorder) {
	in.backupData = false

	if in.Dir == "" || !discovery.Exists(in.Dir) {
		rec.Fail("Backup Directory", "Backup directory not found: "+in.Dir)
		return
	}

	dataDir, err := latestDataDir(filepath.Join(in.Dir, dataDirName))
	if err != nil || dataDir == "" {
		slog.Debug("No backup data directory", "dir", in.Dir, "error", err)
		rec.Fail("Backup Data", "No backup data directories found")
		return
	}

	var present, missing []string
	for _, name := range in.Config.PostCheck.EssentialFiles {
		info, err := os.Stat(filepath.Join(dataDir, name))
		switch {
		case err != nil || info.IsDir():
			missing = append(missing, name+" (not found)")
		case info.Size() == 0:
			missing = append(missing, name+" (empty)")
		default:
			present = append(present, fmt.Sprintf("%s (%s)", name, reporting.FormatSize(info.Size())))
		}
	}
	slog.Debug("Essential files", "present", present, "missing", missing)

	if len(missing) > 0 {
		if len(present) > len(missing) {
			rec.Warn("Essential Backup Files", missingSummary(missing))
		} else {
			rec.Fail("Essential Backup Files", missingSummary(missing))
		}
	} else {
		rec.Pass("Essential Backup Files", fmt.Sprintf("All essential files present (%d files)", len(present)))
	}

	in.checkArchivePresent(rec)
	in.backupData = len(present) > 0
}

// checkArchivePresent records the first archive in the archives directory.
// Nothing is recorded when the directory does not exist.
func (in *Inspector) checkArchivePresent(rec *checks.Recorder) {
	dir := filepath.Join(in.Dir, archivesDirName)
	if !discovery.Exists(dir) {
		return
	}

	path, err := firstArchive(dir)
	if err != nil || path == "" {
		rec.Fail("Backup Archive", "No compressed archive found")
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		rec.Fail("Backup Archive", fmt.Sprintf("Cannot read archive: %v", err))
		return
	}

	m := rec.Metrics()
	m.ArchiveSize = models.Ptr(info.Size())
	m.ArchivePath = path
	if format, err := archive.DetectFormat(path); err == nil {
		m.ArchiveFormat = string(format)
	}
	rec.Pass("Backup Archive", fmt.Sprintf("Created successfully (%s)", reporting.FormatSize(info.Size())))
}

func (in *Inspector) checkArchiveIntegrity(_ context.Context, rec *checks.Recorder) {
	dir := filepath.Join(in.Dir, archivesDirName)
	if !discovery.Exists(dir) {
		rec.Fail("Archive Integrity", "Archives directory not found")
		return
	}

	path, err := firstArchive(dir)
	if err != nil || path == "" {
		rec.Fail("Archive Integrity", "No archive files found")
		return
	}

	info, err := archive.Inspect(path)
	if err != nil {
		rec.Fail("Archive Integrity", fmt.Sprintf("Archive corruption detected: %v", err))
		return
	}
	slog.Debug("Archive inspected", "path", path, "members", info.Members, "files", info.Files)

	rec.Metrics().ArchiveFiles = models.Ptr(info.Files)
	rec.Pass("Archive Integrity", fmt.Sprintf("Archive is valid (%d files, %s)", info.Files, reporting.FormatSize(info.Size)))
}

func firstArchive(dir string) (string, error) {
	matches, err := archive.Find(dir)
	if err != nil || len(matches) == 0 {
		return "", err
	}
	return matches[0], nil
}

// latestDataDir returns the lexicographically greatest subdirectory of dir.
func latestDataDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	latest := ""
	for _, e := range entries {
		if info, err := os.Stat(filepath.Join(dir, e.Name())); err == nil && info.IsDir() && e.Name() > latest {
			latest = e.Name()
		}
	}
	if latest == "" {
		return "", nil
	}
	return filepath.Join(dir, latest), nil
}
