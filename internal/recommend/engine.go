// Package recommend derives operator recommendations from a finished run.
package recommend

import (
	"github.com/arunsidharrth/SDWAN/internal/models"
)

// Thresholds are the policy limits the post-check rules compare against.
type Thresholds struct {
	MinTotalSize       int64   `yaml:"min_total_size" json:"min_total_size"`
	MaxTotalSize       int64   `yaml:"max_total_size" json:"max_total_size"`
	MinFileCount       int     `yaml:"min_file_count" json:"min_file_count"`
	MinItemCount       int     `yaml:"min_item_count" json:"min_item_count"`
	MaxDurationMinutes float64 `yaml:"max_duration_minutes" json:"max_duration_minutes"`
}

// DefaultThresholds returns the stock limits: 1 MiB, 1 GiB, 5 files,
// 10 configuration items and 30 minutes.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinTotalSize:       1 << 20,
		MaxTotalSize:       1 << 30,
		MinFileCount:       5,
		MinItemCount:       10,
		MaxDurationMinutes: 30,
	}
}

// Input is the snapshot every rule reads.
type Input struct {
	Tally   models.Tally
	Metrics *models.Metrics
}

// Rule inspects a snapshot and returns a recommendation, or "" when it does
// not apply. Rules must not depend on each other or on external state.
type Rule func(in Input, th Thresholds) string

// Engine evaluates an ordered list of rules.
type Engine struct {
	rules      []Rule
	thresholds Thresholds
}

// NewEngine creates an engine with the given thresholds and rules.
func NewEngine(th Thresholds, rules ...Rule) *Engine {
	return &Engine{rules: rules, thresholds: th}
}

// PostCheckEngine returns the engine used after a backup or list run.
func PostCheckEngine(th Thresholds) *Engine {
	return NewEngine(th,
		SlowOperation,
		ArtifactSize,
		FileCount,
		ItemCount,
		Performance,
		ArchiveStorage,
		PerfectRun,
	)
}

// PreCheckEngine returns the engine used after an environment pre-check.
func PreCheckEngine() *Engine {
	return NewEngine(DefaultThresholds(), Readiness)
}

// Recommend evaluates every rule in order. Each rule contributes at most one
// string; the result is never nil.
func (e *Engine) Recommend(tally models.Tally, metrics *models.Metrics) []string {
	if metrics == nil {
		metrics = &models.Metrics{}
	}
	in := Input{Tally: tally, Metrics: metrics}

	out := []string{}
	for _, rule := range e.rules {
		if msg := rule(in, e.thresholds); msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

// SlowOperation flags a run whose measured duration exceeded the limit.
func SlowOperation(in Input, th Thresholds) string {
	if d := in.Metrics.DurationMinutes; d != nil && *d > th.MaxDurationMinutes {
		return "Operation took longer than expected. Consider checking network connectivity or vManage performance."
	}
	return ""
}

// ArtifactSize warns about suspiciously small or very large output.
func ArtifactSize(in Input, th Thresholds) string {
	if in.Metrics.TotalSize == nil {
		return ""
	}
	size := *in.Metrics.TotalSize
	switch {
	case size <= 0:
		return ""
	case size < th.MinTotalSize:
		return "⚠️  Backup size is very small. Verify all configurations were captured."
	case size > th.MaxTotalSize:
		return "💾 Large backup detected. Consider implementing backup rotation to manage disk space."
	}
	return ""
}

// FileCount warns when few files were produced. A missing count is zero.
func FileCount(in Input, th Thresholds) string {
	files := 0
	if in.Metrics.TotalFiles != nil {
		files = *in.Metrics.TotalFiles
	}
	if files < th.MinFileCount {
		return "📁 Few files detected. Ensure backup completed successfully."
	}
	return ""
}

// ItemCount inspects the scraped backup statistics.
func ItemCount(in Input, th Thresholds) string {
	if in.Metrics.BackupStats == nil {
		return ""
	}
	total := in.Metrics.BackupStats.Total()
	switch {
	case total == 0:
		return "❌ No configuration items found. Check vManage connectivity and permissions."
	case total < th.MinItemCount:
		return "🔍 Very few configuration items found. Verify this is expected for your environment."
	}
	return ""
}

// Performance suggests tuning when the run was slow.
func Performance(in Input, th Thresholds) string {
	if d := in.Metrics.DurationMinutes; d != nil && *d > th.MaxDurationMinutes {
		return "🚀 Consider optimizing network connection or running during off-peak hours."
	}
	return ""
}

// ArchiveStorage suggests verification and off-site copies once an archive exists.
func ArchiveStorage(in Input, _ Thresholds) string {
	if in.Metrics.ArchiveSize != nil {
		return "✅ Consider implementing automated backup verification and off-site storage."
	}
	return ""
}

// PerfectRun fires when nothing failed or warned.
func PerfectRun(in Input, _ Thresholds) string {
	if in.Tally.Clean() {
		return "🎉 Perfect execution! Consider scheduling this as a regular automated task."
	}
	return ""
}

// Readiness summarizes a pre-check run.
func Readiness(in Input, _ Thresholds) string {
	switch {
	case in.Tally.Failed > 0:
		return "❌ Resolve the failed checks before running the automation playbooks."
	case in.Tally.Warnings > 0:
		return "⚠️  Review the warnings above; the environment is usable but not fully configured."
	default:
		return "🎉 Environment is ready for SD-WAN automation."
	}
}
