// Package cli holds the plumbing shared by the sdwan-precheck and
// sdwan-postcheck commands: common flags, configuration loading and the
// run pipeline from checks to persisted reports.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arunsidharrth/SDWAN/internal/checks"
	"github.com/arunsidharrth/SDWAN/internal/projectconfig"
	"github.com/arunsidharrth/SDWAN/internal/reporting"
	"github.com/arunsidharrth/SDWAN/internal/utils"
)

// Options are the flags both commands accept.
type Options struct {
	ConfigFile string
	OutputDir  string
	Formats    []string
	UploadURL  string
	EventLog   string
	NoColor    bool
	Debug      bool
}

// Bind registers the shared flags on cmd.
func (o *Options) Bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.ConfigFile, "config", "", "Path to "+projectconfig.FileName+" (default: search upward from the working directory)")
	f.StringVar(&o.OutputDir, "output-dir", "", "Directory for report files (default: current directory)")
	f.StringSliceVar(&o.Formats, "format", nil, "Additional report formats: junit, markdown, html")
	f.StringVar(&o.UploadURL, "upload-url", "", "Azure Blob container URL to upload reports to")
	f.StringVar(&o.EventLog, "event-log", "", "Append an NDJSON event per check to this file")
	f.BoolVar(&o.NoColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVar(&o.Debug, "debug", false, "Enable debug logging")
}

// LoadConfig reads the explicit config file or searches upward from
// workDir, then applies report flags over the file values.
func (o *Options) LoadConfig(workDir string) (*projectconfig.ProjectConfig, error) {
	var (
		cfg *projectconfig.ProjectConfig
		err error
	)
	if o.ConfigFile != "" {
		cfg, err = projectconfig.LoadFile(o.ConfigFile)
	} else {
		cfg, err = projectconfig.Load(workDir)
	}
	if err != nil {
		return nil, err
	}

	if o.OutputDir != "" {
		cfg.Report.OutputDir = o.OutputDir
	}
	if len(o.Formats) > 0 {
		cfg.Report.Formats = o.Formats
	}
	if o.UploadURL != "" {
		cfg.Report.UploadURL = o.UploadURL
	}
	return cfg, nil
}

// Setup configures logging on errOut and returns the palette for out.
func (o *Options) Setup(out, errOut io.Writer) checks.Palette {
	utils.SetupLogging(errOut, o.Debug, !checks.ColorEnabled(errOut, o.NoColor))
	return checks.NewPalette(checks.ColorEnabled(out, o.NoColor))
}

// NewSink builds the report sink described by cfg. Blob names are grouped
// under prefix.
func NewSink(cfg projectconfig.ReportConfig, prefix string, out io.Writer, p checks.Palette) (*reporting.Sink, error) {
	formats, err := reporting.ParseFormats(cfg.Formats)
	if err != nil {
		return nil, err
	}

	sink := &reporting.Sink{
		Dir:     cfg.OutputDir,
		Formats: formats,
		Out:     out,
		Palette: p,
	}
	if cfg.UploadURL != "" {
		up, err := reporting.NewBlobUploader(cfg.UploadURL, prefix)
		if err != nil {
			return nil, fmt.Errorf("configuring report upload: %w", err)
		}
		sink.Uploader = up
	}
	return sink, nil
}
