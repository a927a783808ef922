package postcheck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arunsidharrth/SDWAN/internal/checks"
	"github.com/arunsidharrth/SDWAN/internal/discovery"
	"github.com/arunsidharrth/SDWAN/internal/models"
	"github.com/arunsidharrth/SDWAN/internal/reporting"
)

const inventoryPattern = "consolidated_inventory_*.txt"

func (in *Inspector) checkListCompletion(_ context.Context, rec *checks.Recorder) {
	if in.Dir == "" || !discovery.Exists(in.Dir) {
		rec.Fail("List Directory", "List directory not found: "+in.Dir)
		return
	}

	dataDir := filepath.Join(in.Dir, dataDirName)
	if !discovery.Exists(dataDir) {
		rec.Fail("List Data Directory", "Data directory not found")
		return
	}

	var present, missing []string
	for _, kind := range in.Config.PostCheck.ListTypes {
		_, size, ok := firstFile(dataDir, kind+"_list_*.txt")
		if !ok {
			missing = append(missing, kind)
			continue
		}
		present = append(present, fmt.Sprintf("%s (%s)", kind, reporting.FormatSize(size)))
	}
	rec.Metrics().ListTypes = models.Ptr(len(present))

	switch {
	case len(missing) == 0:
		rec.Pass("Configuration List Files", fmt.Sprintf("All configuration types listed (%d types)", len(present)))
	case len(present) > 0:
		rec.Warn("Configuration List Files", missingSummary(missing))
	default:
		rec.Fail("Configuration List Files", missingSummary(missing))
	}

	if _, size, ok := firstFile(dataDir, inventoryPattern); ok {
		rec.Pass("Consolidated Inventory", fmt.Sprintf("Created successfully (%s)", reporting.FormatSize(size)))
	} else {
		rec.Fail("Consolidated Inventory", "Consolidated inventory file not found")
	}
}

// firstFile returns the first regular file in dir matching pattern, by name.
func firstFile(dir, pattern string) (string, int64, bool) {
	matches, err := doublestar.FilepathGlob(filepath.Join(dir, pattern))
	if err != nil {
		return "", 0, false
	}
	sort.Strings(matches)
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && !info.IsDir() {
			return m, info.Size(), true
		}
	}
	return "", 0, false
}
