package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arunsidharrth/SDWAN/internal/cli"
	"github.com/arunsidharrth/SDWAN/internal/discovery"
	"github.com/arunsidharrth/SDWAN/internal/models"
	"github.com/arunsidharrth/SDWAN/internal/postcheck"
	"github.com/arunsidharrth/SDWAN/internal/recommend"
)

var version = "dev"

// errNoOperationDir wraps discovery.ErrNoOperationDir once the operator has
// been told what to do about it.
var errNoOperationDir = fmt.Errorf("nothing to check: %w", discovery.ErrNoOperationDir)

type postCheckFlags struct {
	cli.Options
	operation string
	directory string
}

func newRootCommand() *cobra.Command {
	var flags postCheckFlags

	cmd := &cobra.Command{
		Use:   "sdwan-postcheck",
		Short: "Validate the results of an SD-WAN backup or listing run",
		Long: `sdwan-postcheck inspects the directory written by the SD-WAN backup or
configuration listing playbook: expected files, item statistics, archive
and file integrity, and how long the run took.

Without --directory the latest YYYY-MM-DD directory under backups/ or
lists/ is checked. Results are saved as a JSON report and a plain-text
summary. The exit code is 1 when any check failed.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPostCheck(cmd, &flags)
		},
	}

	flags.Bind(cmd)
	cmd.Flags().StringVarP(&flags.operation, "operation", "o", string(postcheck.OperationBackup), "Type of operation to validate: backup, list or both")
	cmd.Flags().StringVarP(&flags.directory, "directory", "d", "", "Specific operation directory to check")

	return cmd
}

func runPostCheck(cmd *cobra.Command, flags *postCheckFlags) error {
	op, err := postcheck.ParseOperation(flags.operation)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	palette := flags.Setup(out, cmd.ErrOrStderr())

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := flags.LoadConfig(workDir)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		slog.Debug("Loaded config", "path", cfg.Path)
	}

	now := time.Now()
	cli.PrintHeader(out, palette,
		[]string{"SD-WAN AUTOMATION POST-CHECK", "Operation: " + strings.ToUpper(string(op))},
		[]string{
			"Timestamp: " + now.Format(time.DateTime),
			"Platform: " + cli.Platform(),
			"Working Directory: " + workDir,
		})

	dir := flags.directory
	if dir == "" {
		dir, err = postcheck.FindOperationDir(op, cfg.PostCheck, workDir)
		if errors.Is(err, discovery.ErrNoOperationDir) {
			msg := palette.Red(fmt.Sprintf("❌ No recent %s directory found!", op)) + "\n" +
				palette.Yellow(fmt.Sprintf("Make sure you've run the %s playbook first.", op)) + "\n"
			io.WriteString(out, msg) //nolint:errcheck
			return errNoOperationDir
		}
		if err != nil {
			return err
		}
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(workDir, dir)
	}
	fmt.Fprintf(out, "%s\n", palette.Cyan("📂 Analyzing: "+dir)) //nolint:errcheck

	meta := cli.NewMetadata(models.ToolPostCheck, string(op), dir, workDir)
	sink, err := cli.NewSink(cfg.Report, models.ToolPostCheck+"/"+meta.RunID, out, palette)
	if err != nil {
		return err
	}

	p := cli.Pipeline{
		Meta:     meta,
		Steps:    postcheck.New(op, dir, cfg).Steps(),
		Engine:   recommend.PostCheckEngine(cfg.PostCheck.Thresholds),
		Sink:     sink,
		Out:      out,
		Palette:  palette,
		EventLog: flags.EventLog,
	}
	_, err = p.Run(cmd.Context())
	return err
}
