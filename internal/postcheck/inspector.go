// Package postcheck validates what a finished backup or listing run left
// on disk.
package postcheck

import (
	"fmt"
	"strings"

	"github.com/arunsidharrth/SDWAN/internal/checks"
	"github.com/arunsidharrth/SDWAN/internal/discovery"
	"github.com/arunsidharrth/SDWAN/internal/projectconfig"
	"github.com/arunsidharrth/SDWAN/internal/utils"
)

// Operation is the kind of automation run being validated.
type Operation string

const (
	OperationBackup Operation = "backup"
	OperationList   Operation = "list"
	OperationBoth   Operation = "both"
)

// ParseOperation validates an operation name, case-insensitively.
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(strings.ToLower(strings.TrimSpace(s))); op {
	case OperationBackup, OperationList, OperationBoth:
		return op, nil
	}
	return "", fmt.Errorf("invalid operation %q (expected backup, list or both)", s)
}

// IncludesBackup reports whether backup checks apply.
func (o Operation) IncludesBackup() bool { return o == OperationBackup || o == OperationBoth }

// IncludesList reports whether listing checks apply.
func (o Operation) IncludesList() bool { return o == OperationList || o == OperationBoth }

// Bases returns the base directories searched for operation directories.
func (o Operation) Bases(cfg projectconfig.PostCheckConfig) []string {
	switch o {
	case OperationBackup:
		return []string{cfg.BackupDir}
	case OperationList:
		return []string{cfg.ListDir}
	default:
		return []string{cfg.BackupDir, cfg.ListDir}
	}
}

// FindOperationDir returns the latest date-named directory for op, with
// relative base directories resolved against workDir.
func FindOperationDir(op Operation, cfg projectconfig.PostCheckConfig, workDir string) (string, error) {
	return discovery.LatestOperationDir(utils.ResolvePaths(op.Bases(cfg), workDir))
}

// Inspector runs the post-check probes against one operation directory.
type Inspector struct {
	Op     Operation
	Dir    string
	Config *projectconfig.ProjectConfig

	// backupData is set by the backup completion probe when at least one
	// essential file was found. It gates the statistics and archive probes.
	backupData bool
}

// New returns an inspector for dir.
func New(op Operation, dir string, cfg *projectconfig.ProjectConfig) *Inspector {
	return &Inspector{Op: op, Dir: dir, Config: cfg}
}

// Steps returns the probes in execution order.
func (in *Inspector) Steps() []checks.Checker {
	backup := in.Op.IncludesBackup
	backupWithData := func() bool { return in.Op.IncludesBackup() && in.backupData }

	return []checks.Checker{
		checks.Step{Title: "Backup Completion", Probe: in.checkBackupCompletion, When: backup},
		checks.Step{Title: "Backup Statistics", Probe: in.checkBackupStatistics, When: backupWithData},
		checks.Step{Title: "Archive Integrity", Probe: in.checkArchiveIntegrity, When: backupWithData},
		checks.Step{Title: "Configuration List Completion", Probe: in.checkListCompletion, When: in.Op.IncludesList},
		checks.Step{Title: "File Integrity", Probe: in.checkFileIntegrity},
		checks.Step{Title: "Operation Performance", Probe: in.checkTiming},
	}
}

// missingSummary lists up to three missing items, then "...".
func missingSummary(missing []string) string {
	shown := missing
	suffix := ""
	if len(shown) > 3 {
		shown = shown[:3]
		suffix = "..."
	}
	return "Missing: " + strings.Join(shown, ", ") + suffix
}
