package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/arunsidharrth/SDWAN/internal/cli"
	"github.com/arunsidharrth/SDWAN/internal/models"
	"github.com/arunsidharrth/SDWAN/internal/precheck"
	"github.com/arunsidharrth/SDWAN/internal/recommend"
)

var version = "dev"

// newSuite builds the probe suite; tests swap in fakes.
var newSuite = precheck.New

type preCheckFlags struct {
	cli.Options
	envFile string
	workDir string
}

func newRootCommand() *cobra.Command {
	var flags preCheckFlags

	cmd := &cobra.Command{
		Use:   "sdwan-precheck",
		Short: "Validate the environment before running the SD-WAN automation playbooks",
		Long: `sdwan-precheck verifies that the local environment is ready for the
SD-WAN backup and listing playbooks: vManage credentials, required tools,
project directories, playbook files, network reachability and API access.

Results are printed as they are checked, then saved as a JSON report and a
plain-text results log. The exit code is 1 when any check failed.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreCheck(cmd, &flags)
		},
	}

	flags.Bind(cmd)
	cmd.Flags().StringVar(&flags.envFile, "env-file", ".env", "Load VMANAGE_* variables from this file (existing variables win)")
	cmd.Flags().StringVar(&flags.workDir, "workdir", "", "Project directory to check (default: current directory)")

	return cmd
}

func runPreCheck(cmd *cobra.Command, flags *preCheckFlags) error {
	out := cmd.OutOrStdout()
	palette := flags.Setup(out, cmd.ErrOrStderr())

	workDir := flags.workDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", flags.workDir, err)
	}

	cfg, err := flags.LoadConfig(workDir)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		slog.Debug("Loaded config", "path", cfg.Path)
	}

	if loaded, err := precheck.LoadEnvFile(flags.envFile); err != nil {
		slog.Warn("Ignoring env file", "path", flags.envFile, "error", err)
	} else if loaded {
		slog.Debug("Loaded env file", "path", flags.envFile)
	}

	suite := newSuite(cfg, workDir)
	meta := cli.NewMetadata(models.ToolPreCheck, "", suite.Target(), workDir)

	sink, err := cli.NewSink(cfg.Report, models.ToolPreCheck+"/"+meta.RunID, out, palette)
	if err != nil {
		return err
	}

	cli.PrintHeader(out, palette,
		[]string{"SD-WAN AUTOMATION PRE-CHECK"},
		[]string{
			"Timestamp: " + meta.Timestamp.Format(time.DateTime),
			"Platform: " + meta.Platform,
			"Go Version: " + meta.GoVersion,
			"Working Directory: " + workDir,
		})

	p := cli.Pipeline{
		Meta:     meta,
		Steps:    suite.Steps(),
		Engine:   recommend.PreCheckEngine(),
		Sink:     sink,
		Out:      out,
		Palette:  palette,
		EventLog: flags.EventLog,
	}
	_, err = p.Run(cmd.Context())
	return err
}
