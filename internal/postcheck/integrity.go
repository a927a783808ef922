package postcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/arunsidharrth/SDWAN/internal/checks"
	"github.com/arunsidharrth/SDWAN/internal/models"
	"github.com/arunsidharrth/SDWAN/internal/reporting"
)

const (
	probeBytes     = 1024
	maxCorruptShow = 3
)

func (in *Inspector) checkFileIntegrity(ctx context.Context, rec *checks.Recorder) {
	var (
		corrupted []string
		files     int
		total     int64
	)

	err := filepath.WalkDir(in.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == in.Dir {
				return err
			}
			corrupted = append(corrupted, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			return nil
		}
		if d.IsDir() {
			return ctx.Err()
		}

		files++
		size, err := probeFile(path)
		total += size
		if err != nil {
			corrupted = append(corrupted, fmt.Sprintf("%s: %v", filepath.Base(path), err))
		}
		return nil
	})
	if err != nil {
		rec.Fail("File Integrity", fmt.Sprintf("Cannot scan directory: %v", err))
		return
	}

	m := rec.Metrics()
	m.TotalFiles = models.Ptr(files)
	m.TotalSize = models.Ptr(total)

	if len(corrupted) > 0 {
		rec.Fail("File Integrity", fmt.Sprintf("%d corrupted files detected", len(corrupted)))
		for i, c := range corrupted {
			if i == maxCorruptShow {
				break
			}
			rec.Note("%s", rec.Palette().Red("• "+c))
		}
		return
	}
	rec.Pass("File Integrity", fmt.Sprintf("All %d files passed integrity check (%s)", files, reporting.FormatSize(total)))
}

// probeFile reads the head of the file at path, and its tail when the file
// is larger than two probe windows, so truncation or unreadable blocks
// surface as an error. It returns the file size.
func probeFile(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close() //nolint:errcheck

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	size := info.Size()
	if !info.Mode().IsRegular() {
		return size, fmt.Errorf("not a regular file (%s)", info.Mode().Type())
	}

	buf := make([]byte, probeBytes)
	if _, err := io.ReadFull(f, buf[:min(size, probeBytes)]); err != nil {
		return size, err
	}
	if size > 2*probeBytes {
		if _, err := f.ReadAt(buf, size-probeBytes); err != nil && !errors.Is(err, io.EOF) {
			return size, err
		}
	}
	return size, nil
}

func (in *Inspector) checkTiming(_ context.Context, rec *checks.Recorder) {
	start, end, err := operationWindow(in.Dir)
	if err != nil {
		rec.Fail("Operation Performance", fmt.Sprintf("Could not analyze timing: %v", err))
		return
	}

	minutes := end.Sub(start).Minutes()
	m := rec.Metrics()
	m.StartTime = models.Ptr(start)
	m.EndTime = models.Ptr(end)
	m.DurationMinutes = models.Ptr(minutes)
	slog.Debug("Operation window", "start", start, "end", end)

	rec.Pass("Operation Performance", "Duration: "+reporting.FormatDuration(minutes))
}

// operationWindow returns the earliest and newest modification times among
// dir itself and the files below it.
func operationWindow(dir string) (time.Time, time.Time, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end := info.ModTime(), info.ModTime()

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		mt := fi.ModTime()
		if mt.Before(start) {
			start = mt
		}
		if mt.After(end) {
			end = mt
		}
		return nil
	})
	return start, end, err
}
