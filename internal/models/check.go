package models

import (
	"fmt"
	"math"
	"time"
)

// CheckStatus is the outcome of a single check.
type CheckStatus string

const (
	StatusPass    CheckStatus = "pass"
	StatusFail    CheckStatus = "fail"
	StatusWarning CheckStatus = "warning"
)

// Label returns the upper-case label used in detail lines and console output.
func (s CheckStatus) Label() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusWarning:
		return "WARNING"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether s is one of the three known outcomes.
func (s CheckStatus) Valid() bool {
	switch s {
	case StatusPass, StatusFail, StatusWarning:
		return true
	}
	return false
}

// CheckRecord is one recorded check. Records are appended in execution order
// and never modified afterwards.
type CheckRecord struct {
	Name      string      `json:"name"`
	Status    CheckStatus `json:"status"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
}

// Detail renders the record the way it appears in the detailed results list,
// e.g. "PASS: Backup Archive - Created successfully (1.2 MiB)".
func (r CheckRecord) Detail() string {
	return fmt.Sprintf("%s: %s - %s", r.Status.Label(), r.Name, r.Message)
}

// Tally counts check outcomes. Passed+Failed+Warnings always equals the
// number of records that were added.
type Tally struct {
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Warnings int `json:"warnings"`
}

// Add increments the counter that matches status.
func (t *Tally) Add(status CheckStatus) {
	switch status {
	case StatusPass:
		t.Passed++
	case StatusFail:
		t.Failed++
	case StatusWarning:
		t.Warnings++
	}
}

// Total returns the number of counted checks.
func (t Tally) Total() int {
	return t.Passed + t.Failed + t.Warnings
}

// SuccessRate returns the pass percentage over passed and failed checks.
func (t Tally) SuccessRate() float64 {
	return SuccessRate(t.Passed, t.Failed)
}

// Clean reports whether no check failed or warned.
func (t Tally) Clean() bool {
	return t.Failed == 0 && t.Warnings == 0
}

// SuccessRate computes passed/(passed+failed)*100 rounded to two decimals.
// Warnings are not part of the denominator. Returns 0 when nothing passed or failed.
func SuccessRate(passed, failed int) float64 {
	denom := passed + failed
	if denom == 0 {
		return 0
	}
	rate := float64(passed) / float64(denom) * 100
	return math.Round(rate*100) / 100
}
