// Package projectconfig provides the ProjectConfig struct and loader for
// .sdwan-check.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arunsidharrth/SDWAN/internal/recommend"
	"github.com/arunsidharrth/SDWAN/internal/validation"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = ".sdwan-check.yaml"

// Default values for project configuration. New() is the only place that
// applies them.
const (
	DefaultHostEnv     = "VMANAGE_HOST"
	DefaultUsernameEnv = "VMANAGE_USERNAME"
	DefaultPasswordEnv = "VMANAGE_PASSWORD"
	DefaultPortEnv     = "VMANAGE_PORT"
	DefaultPort        = 443
	DefaultAPIPath     = "/dataservice/system/device/controllers"

	DefaultCommandTimeout = 10
	DefaultNetworkTimeout = 10
	DefaultAPITimeout     = 30

	DefaultBackupDir = "backups"
	DefaultListDir   = "lists"
)

// ControllerConfig names the environment variables holding vManage access details.
type ControllerConfig struct {
	HostEnv     string `yaml:"host_env,omitempty"`
	UsernameEnv string `yaml:"username_env,omitempty"`
	PasswordEnv string `yaml:"password_env,omitempty"`
	PortEnv     string `yaml:"port_env,omitempty"`
	DefaultPort int    `yaml:"default_port,omitempty"`
	APIPath     string `yaml:"api_path,omitempty"`
}

// TimeoutsConfig holds probe timeouts in seconds.
type TimeoutsConfig struct {
	Command int `yaml:"command,omitempty"`
	Network int `yaml:"network,omitempty"`
	API     int `yaml:"api,omitempty"`
}

// ToolConfig is one external tool the pre-check invokes with --version.
type ToolConfig struct {
	Name       string `yaml:"name"`
	MinVersion string `yaml:"min_version,omitempty"`
}

// PreCheckConfig lists what the environment must provide.
type PreCheckConfig struct {
	Tools       []ToolConfig `yaml:"tools,omitempty"`
	Directories []string     `yaml:"directories,omitempty"`
	Playbooks   []string     `yaml:"playbooks,omitempty"`
}

// PostCheckConfig lists what a finished run must have produced.
type PostCheckConfig struct {
	BackupDir      string               `yaml:"backup_dir,omitempty"`
	ListDir        string               `yaml:"list_dir,omitempty"`
	EssentialFiles []string             `yaml:"essential_files,omitempty"`
	ListTypes      []string             `yaml:"list_types,omitempty"`
	Thresholds     recommend.Thresholds `yaml:"thresholds,omitempty"`
}

// ReportConfig controls where and how reports are written.
type ReportConfig struct {
	OutputDir string   `yaml:"output_dir,omitempty"`
	UploadURL string   `yaml:"upload_url,omitempty"`
	Formats   []string `yaml:"formats,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .sdwan-check.yaml.
type ProjectConfig struct {
	Controller ControllerConfig `yaml:"controller,omitempty"`
	Timeouts   TimeoutsConfig   `yaml:"timeouts,omitempty"`
	PreCheck   PreCheckConfig   `yaml:"precheck,omitempty"`
	PostCheck  PostCheckConfig  `yaml:"postcheck,omitempty"`
	Report     ReportConfig     `yaml:"report,omitempty"`

	// Path is the file the config was loaded from, empty for defaults.
	Path string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Controller: ControllerConfig{
			HostEnv:     DefaultHostEnv,
			UsernameEnv: DefaultUsernameEnv,
			PasswordEnv: DefaultPasswordEnv,
			PortEnv:     DefaultPortEnv,
			DefaultPort: DefaultPort,
			APIPath:     DefaultAPIPath,
		},
		Timeouts: TimeoutsConfig{
			Command: DefaultCommandTimeout,
			Network: DefaultNetworkTimeout,
			API:     DefaultAPITimeout,
		},
		PreCheck: PreCheckConfig{
			Tools: []ToolConfig{
				{Name: "ansible-playbook"},
				{Name: "sastre"},
				{Name: "python3", MinVersion: "3.6"},
			},
			Directories: []string{"backups", "lists", "reports", "logs"},
			Playbooks:   []string{"usecase1.yml", "sdwan_list_config.yml"},
		},
		PostCheck: PostCheckConfig{
			BackupDir: DefaultBackupDir,
			ListDir:   DefaultListDir,
			EssentialFiles: []string{
				"device_template.json",
				"feature_template.json",
				"policy_definition.json",
				"policy_list.json",
			},
			ListTypes: []string{
				"device_template",
				"feature_template",
				"policy_definition",
				"policy_list",
				"configuration_group",
			},
			Thresholds: recommend.DefaultThresholds(),
		},
	}
}

// CommandTimeout returns the tool invocation timeout.
func (c *ProjectConfig) CommandTimeout() time.Duration {
	return time.Duration(c.Timeouts.Command) * time.Second
}

// NetworkTimeout returns the DNS and TCP timeout.
func (c *ProjectConfig) NetworkTimeout() time.Duration {
	return time.Duration(c.Timeouts.Network) * time.Second
}

// APITimeout returns the HTTPS request timeout.
func (c *ProjectConfig) APITimeout() time.Duration {
	return time.Duration(c.Timeouts.API) * time.Second
}

// Load finds .sdwan-check.yaml by walking up from startDir (max 10 levels),
// validates and unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}
	return parse(path, data)
}

// LoadFile reads an explicit config file. A missing file is an error.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*ProjectConfig, error) {
	if errs := validation.ValidateConfigBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config %s:\n  %s", path, strings.Join(errs, "\n  "))
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg := New()
	mergeConfig(cfg, &fileCfg)
	cfg.Path = path
	return cfg, nil
}

// findConfigFile walks up from dir looking for .sdwan-check.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) (string, []byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst. Lists replace
// the defaults wholesale.
func mergeConfig(dst, src *ProjectConfig) {
	// Controller
	overlay(&dst.Controller.HostEnv, src.Controller.HostEnv)
	overlay(&dst.Controller.UsernameEnv, src.Controller.UsernameEnv)
	overlay(&dst.Controller.PasswordEnv, src.Controller.PasswordEnv)
	overlay(&dst.Controller.PortEnv, src.Controller.PortEnv)
	overlay(&dst.Controller.DefaultPort, src.Controller.DefaultPort)
	overlay(&dst.Controller.APIPath, src.Controller.APIPath)

	// Timeouts
	overlay(&dst.Timeouts.Command, src.Timeouts.Command)
	overlay(&dst.Timeouts.Network, src.Timeouts.Network)
	overlay(&dst.Timeouts.API, src.Timeouts.API)

	// Pre-check
	if len(src.PreCheck.Tools) > 0 {
		dst.PreCheck.Tools = src.PreCheck.Tools
	}
	if len(src.PreCheck.Directories) > 0 {
		dst.PreCheck.Directories = src.PreCheck.Directories
	}
	if len(src.PreCheck.Playbooks) > 0 {
		dst.PreCheck.Playbooks = src.PreCheck.Playbooks
	}

	// Post-check
	overlay(&dst.PostCheck.BackupDir, src.PostCheck.BackupDir)
	overlay(&dst.PostCheck.ListDir, src.PostCheck.ListDir)
	if len(src.PostCheck.EssentialFiles) > 0 {
		dst.PostCheck.EssentialFiles = src.PostCheck.EssentialFiles
	}
	if len(src.PostCheck.ListTypes) > 0 {
		dst.PostCheck.ListTypes = src.PostCheck.ListTypes
	}
	th, sth := &dst.PostCheck.Thresholds, src.PostCheck.Thresholds
	overlay(&th.MinTotalSize, sth.MinTotalSize)
	overlay(&th.MaxTotalSize, sth.MaxTotalSize)
	overlay(&th.MinFileCount, sth.MinFileCount)
	overlay(&th.MinItemCount, sth.MinItemCount)
	overlay(&th.MaxDurationMinutes, sth.MaxDurationMinutes)

	// Report
	overlay(&dst.Report.OutputDir, src.Report.OutputDir)
	overlay(&dst.Report.UploadURL, src.Report.UploadURL)
	if len(src.Report.Formats) > 0 {
		dst.Report.Formats = src.Report.Formats
	}
}

func overlay[T comparable](dst *T, src T) {
	var zero T
	if src != zero {
		*dst = src
	}
}
