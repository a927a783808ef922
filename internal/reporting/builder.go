// Package reporting builds the final run report and persists it in every
// configured format.
package reporting

import (
	"github.com/arunsidharrth/SDWAN/internal/models"
	"github.com/arunsidharrth/SDWAN/internal/recommend"
)

// Source is the finished state of a run. checks.Recorder satisfies it.
type Source interface {
	Tally() models.Tally
	Records() []models.CheckRecord
	Metrics() *models.Metrics
}

// Build snapshots src into an immutable report. Recommendations are
// evaluated exactly once; a nil engine yields an empty list.
func Build(meta models.Metadata, src Source, engine *recommend.Engine) models.Report {
	tally := src.Tally()
	records := src.Records()
	metrics := src.Metrics().Clone()

	details := make([]string, 0, len(records))
	for _, r := range records {
		details = append(details, r.Detail())
	}

	recs := []string{}
	if engine != nil {
		recs = engine.Recommend(tally, &metrics)
	}

	return models.Report{
		Metadata:        meta,
		Summary:         models.NewSummary(tally),
		Metrics:         metrics,
		Checks:          records,
		DetailedResults: details,
		Recommendations: recs,
	}
}
