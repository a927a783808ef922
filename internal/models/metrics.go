package models

import (
	"sort"
	"time"
)

// BackupStats holds the per-type item counts scraped from a backup summary report.
type BackupStats struct {
	DeviceTemplates   int `json:"device_templates"`
	FeatureTemplates  int `json:"feature_templates"`
	PolicyDefinitions int `json:"policy_definitions"`
	PolicyLists       int `json:"policy_lists"`
	ConfigGroups      int `json:"config_groups"`
}

// Total returns the sum of all item counts.
func (s BackupStats) Total() int {
	return s.DeviceTemplates + s.FeatureTemplates + s.PolicyDefinitions + s.PolicyLists + s.ConfigGroups
}

// Breakdown returns label/count pairs in display order.
func (s BackupStats) Breakdown() []StatCount {
	return []StatCount{
		{Label: "Device Templates", Count: s.DeviceTemplates},
		{Label: "Feature Templates", Count: s.FeatureTemplates},
		{Label: "Policy Definitions", Count: s.PolicyDefinitions},
		{Label: "Policy Lists", Count: s.PolicyLists},
		{Label: "Configuration Groups", Count: s.ConfigGroups},
	}
}

// StatCount is a labelled item count.
type StatCount struct {
	Label string
	Count int
}

// Metrics describes the inspected artifacts. Every field is optional and is
// only set by the check that measures it.
type Metrics struct {
	ArchiveSize     *int64       `json:"archive_size,omitempty"`
	ArchivePath     string       `json:"archive_path,omitempty"`
	ArchiveFormat   string       `json:"archive_format,omitempty"`
	ArchiveFiles    *int         `json:"archive_files,omitempty"`
	BackupStats     *BackupStats `json:"backup_stats,omitempty"`
	TotalItems      *int         `json:"total_items,omitempty"`
	ListTypes       *int         `json:"list_types,omitempty"`
	TotalFiles      *int         `json:"total_files,omitempty"`
	TotalSize       *int64       `json:"total_size,omitempty"`
	StartTime       *time.Time   `json:"start_time,omitempty"`
	EndTime         *time.Time   `json:"end_time,omitempty"`
	DurationMinutes *float64     `json:"duration_minutes,omitempty"`
	Controllers     *int         `json:"controllers,omitempty"`

	// Extra holds metrics without a dedicated field.
	Extra map[string]any `json:"extra,omitempty"`
}

// MetricEntry is one present metric, keyed by its report name.
type MetricEntry struct {
	Key   string
	Value any
}

// Empty reports whether no metric has been recorded.
func (m *Metrics) Empty() bool {
	return len(m.Entries()) == 0
}

// Set stores a metric in the Extra bucket.
func (m *Metrics) Set(key string, value any) {
	if m.Extra == nil {
		m.Extra = make(map[string]any)
	}
	m.Extra[key] = value
}

// Entries returns the present metrics in a stable order: typed fields first,
// then Extra keys sorted by name.
func (m *Metrics) Entries() []MetricEntry {
	var out []MetricEntry
	add := func(key string, present bool, value func() any) {
		if present {
			out = append(out, MetricEntry{Key: key, Value: value()})
		}
	}

	add("archive_size", m.ArchiveSize != nil, func() any { return *m.ArchiveSize })
	add("archive_path", m.ArchivePath != "", func() any { return m.ArchivePath })
	add("archive_format", m.ArchiveFormat != "", func() any { return m.ArchiveFormat })
	add("archive_files", m.ArchiveFiles != nil, func() any { return *m.ArchiveFiles })
	add("backup_stats", m.BackupStats != nil, func() any { return *m.BackupStats })
	add("total_items", m.TotalItems != nil, func() any { return *m.TotalItems })
	add("list_types", m.ListTypes != nil, func() any { return *m.ListTypes })
	add("total_files", m.TotalFiles != nil, func() any { return *m.TotalFiles })
	add("total_size", m.TotalSize != nil, func() any { return *m.TotalSize })
	add("start_time", m.StartTime != nil, func() any { return *m.StartTime })
	add("end_time", m.EndTime != nil, func() any { return *m.EndTime })
	add("duration_minutes", m.DurationMinutes != nil, func() any { return *m.DurationMinutes })
	add("controllers", m.Controllers != nil, func() any { return *m.Controllers })

	keys := make([]string, 0, len(m.Extra))
	for k := range m.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, MetricEntry{Key: k, Value: m.Extra[k]})
	}
	return out
}

// Clone returns a deep copy so a built report is not affected by later checks.
func (m *Metrics) Clone() Metrics {
	c := Metrics{
		ArchivePath:   m.ArchivePath,
		ArchiveFormat: m.ArchiveFormat,
	}
	c.ArchiveSize = clonePtr(m.ArchiveSize)
	c.ArchiveFiles = clonePtr(m.ArchiveFiles)
	c.BackupStats = clonePtr(m.BackupStats)
	c.TotalItems = clonePtr(m.TotalItems)
	c.ListTypes = clonePtr(m.ListTypes)
	c.TotalFiles = clonePtr(m.TotalFiles)
	c.TotalSize = clonePtr(m.TotalSize)
	c.StartTime = clonePtr(m.StartTime)
	c.EndTime = clonePtr(m.EndTime)
	c.DurationMinutes = clonePtr(m.DurationMinutes)
	c.Controllers = clonePtr(m.Controllers)
	if m.Extra != nil {
		c.Extra = make(map[string]any, len(m.Extra))
		for k, v := range m.Extra {
			c.Extra[k] = v
		}
	}
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
