package reporting

import (
	"time"

	"github.com/arunsidharrth/SDWAN/internal/checks"
	"github.com/arunsidharrth/SDWAN/internal/models"
	"github.com/arunsidharrth/SDWAN/internal/recommend"
)

var fixedTime = time.Date(2024, 3, 15, 10, 15, 0, 0, time.UTC)

func postCheckMeta() models.Metadata {
	return models.Metadata{
		RunID:         "4b8e0d36-0c1d-4a57-9a55-0c7f1a0c1a11",
		Tool:          models.ToolPostCheck,
		OperationType: "backup",
		Timestamp:     fixedTime,
		Target:        "backups/2024-03-15",
		Platform:      "linux/amd64",
		GoVersion:     "go1.26.0",
	}
}

func newTestReport() models.Report {
	clock := fixedTime
	rec := checks.NewRecorder(nil, checks.WithClock(func() time.Time {
		clock = clock.Add(2 * time.Second)
		return clock
	}))
	rec.Pass("Essential Backup Files", "All essential files present (4 files)")
	rec.Warn("Configuration List Files", "Missing: policy_list")
	rec.Fail("Archive Integrity", "Archive corruption detected: unexpected EOF")
	rec.Pass("File Integrity", "All 12 files passed integrity check (2.0 MiB)")

	m := rec.Metrics()
	m.TotalFiles = models.Ptr(12)
	m.TotalSize = models.Ptr(int64(2 << 20))
	m.ArchiveSize = models.Ptr(int64(512 << 10))
	m.BackupStats = &models.BackupStats{DeviceTemplates: 4, FeatureTemplates: 8}
	m.TotalItems = models.Ptr(12)
	m.DurationMinutes = models.Ptr(3.4)

	return Build(postCheckMeta(), rec, recommend.PostCheckEngine(recommend.DefaultThresholds()))
}
