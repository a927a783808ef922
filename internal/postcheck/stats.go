package postcheck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arunsidharrth/SDWAN/internal/checks"
	"github.com/arunsidharrth/SDWAN/internal/models"
)

const summaryPattern = "backup_summary_*.txt"

var statPatterns = []struct {
	re  *regexp.Regexp
	dst func(*models.BackupStats) *int
}{
	{regexp.MustCompile(`(Device Templates):\s*(\d+)`), func(s *models.BackupStats) *int { return &s.DeviceTemplates }},
	{regexp.MustCompile(`(Feature Templates):\s*(\d+)`), func(s *models.BackupStats) *int { return &s.FeatureTemplates }},
	{regexp.MustCompile(`(Policy Definitions):\s*(\d+)`), func(s *models.BackupStats) *int { return &s.PolicyDefinitions }},
	{regexp.MustCompile(`(Policy Lists):\s*(\d+)`), func(s *models.BackupStats) *int { return &s.PolicyLists }},
	{regexp.MustCompile(`(Configuration Groups):\s*(\d+)`), func(s *models.BackupStats) *int { return &s.ConfigGroups }},
}

// ParseBackupSummary scrapes item counts from a backup summary report.
// Labels that do not appear count as zero. A count that cannot be parsed is
// left at zero and reported in the returned error.
func ParseBackupSummary(content string) (models.BackupStats, error) {
	var stats models.BackupStats
	var errs []error
	for _, p := range statPatterns {
		m := p.re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m[1], err))
			continue
		}
		*p.dst(&stats) = n
	}
	return stats, errors.Join(errs...)
}

func (in *Inspector) checkBackupStatistics(_ context.Context, rec *checks.Recorder) {
	const name = "Backup Statistics"

	reportsDir := filepath.Join(in.Dir, reportsDirName)
	info, err := os.Stat(reportsDir)
	if err != nil || !info.IsDir() {
		rec.Fail(name, "Reports directory not found")
		return
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(reportsDir, summaryPattern))
	if err != nil || len(matches) == 0 {
		rec.Fail(name, "Summary report not found")
		return
	}
	sort.Strings(matches)

	content, err := os.ReadFile(matches[0])
	if err != nil {
		rec.Fail(name, fmt.Sprintf("Error reading summary report: %v", err))
		return
	}

	stats, err := ParseBackupSummary(string(content))
	total := stats.Total()
	m := rec.Metrics()
	m.BackupStats = &stats
	m.TotalItems = models.Ptr(total)

	if err != nil {
		rec.Fail(name, fmt.Sprintf("Error parsing summary report: %v", err))
		return
	}
	if total == 0 {
		rec.Fail(name, "No configuration items found in backup")
		return
	}
	rec.Pass(name, fmt.Sprintf("Total items backed up: %d", total))
	rec.Note("%s", rec.Palette().Cyan("Breakdown:"))
	for _, c := range stats.Breakdown() {
		if c.Count > 0 {
			rec.Note("- %s: %d", c.Label, c.Count)
		}
	}
}
