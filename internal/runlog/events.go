package runlog

import (
	"time"

	"github.com/arunsidharrth/SDWAN/internal/models"
)

// EventType identifies the kind of run event.
type EventType string

const (
	EventRunStart    EventType = "run_start"
	EventCheck       EventType = "check"
	EventRunComplete EventType = "run_complete"
)

// Event is a single timestamped entry in an event log.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	RunID     string         `json:"run_id,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(t EventType, runID string, data map[string]any) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		Type:      t,
		RunID:     runID,
		Data:      data,
	}
}

// RunStartData returns event data for the start of a run.
func RunStartData(tool, operation, target string) map[string]any {
	data := map[string]any{
		"tool":   tool,
		"target": target,
	}
	if operation != "" {
		data["operation"] = operation
	}
	return data
}

// CheckData returns event data for one recorded check.
func CheckData(rec models.CheckRecord) map[string]any {
	return map[string]any{
		"name":    rec.Name,
		"status":  string(rec.Status),
		"message": rec.Message,
	}
}

// RunCompleteData returns event data for a finished run.
func RunCompleteData(s models.Summary) map[string]any {
	return map[string]any{
		"total_checks": s.TotalChecks,
		"passed":       s.Passed,
		"failed":       s.Failed,
		"warnings":     s.Warnings,
		"success_rate": s.SuccessRate,
	}
}
