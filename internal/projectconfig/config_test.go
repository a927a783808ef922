package projectconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "VMANAGE_HOST", cfg.Controller.HostEnv)
	assert.Equal(t, "VMANAGE_USERNAME", cfg.Controller.UsernameEnv)
	assert.Equal(t, "VMANAGE_PASSWORD", cfg.Controller.PasswordEnv)
	assert.Equal(t, "VMANAGE_PORT", cfg.Controller.PortEnv)
	assert.Equal(t, 443, cfg.Controller.DefaultPort)
	assert.Equal(t, "/dataservice/system/device/controllers", cfg.Controller.APIPath)

	assert.Equal(t, 10*time.Second, cfg.CommandTimeout())
	assert.Equal(t, 10*time.Second, cfg.NetworkTimeout())
	assert.Equal(t, 30*time.Second, cfg.APITimeout())

	require.Len(t, cfg.PreCheck.Tools, 3)
	assert.Equal(t, ToolConfig{Name: "python3", MinVersion: "3.6"}, cfg.PreCheck.Tools[2])
	assert.Equal(t, []string{"backups", "lists", "reports", "logs"}, cfg.PreCheck.Directories)
	assert.Equal(t, []string{"usecase1.yml", "sdwan_list_config.yml"}, cfg.PreCheck.Playbooks)

	assert.Equal(t, "backups", cfg.PostCheck.BackupDir)
	assert.Equal(t, "lists", cfg.PostCheck.ListDir)
	assert.Len(t, cfg.PostCheck.EssentialFiles, 4)
	assert.Len(t, cfg.PostCheck.ListTypes, 5)
	assert.Equal(t, int64(1<<20), cfg.PostCheck.Thresholds.MinTotalSize)
	assert.Equal(t, 30.0, cfg.PostCheck.Thresholds.MaxDurationMinutes)

	assert.Empty(t, cfg.Report.OutputDir)
	assert.Empty(t, cfg.Path)
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
controller:
  host_env: SDWAN_HOST
  default_port: 8443
timeouts:
  api: 60
precheck:
  tools:
    - name: sastre
      min_version: "1.20"
  playbooks: [site.yml]
postcheck:
  backup_dir: archive
  essential_files: [device_template.json]
  thresholds:
    min_file_count: 2
report:
  output_dir: out
  formats: [junit]
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "SDWAN_HOST", cfg.Controller.HostEnv)
	assert.Equal(t, "VMANAGE_USERNAME", cfg.Controller.UsernameEnv)
	assert.Equal(t, 8443, cfg.Controller.DefaultPort)
	assert.Equal(t, 60*time.Second, cfg.APITimeout())
	assert.Equal(t, 10*time.Second, cfg.CommandTimeout())
	assert.Equal(t, []ToolConfig{{Name: "sastre", MinVersion: "1.20"}}, cfg.PreCheck.Tools)
	assert.Equal(t, []string{"site.yml"}, cfg.PreCheck.Playbooks)
	assert.Equal(t, []string{"backups", "lists", "reports", "logs"}, cfg.PreCheck.Directories)
	assert.Equal(t, "archive", cfg.PostCheck.BackupDir)
	assert.Equal(t, "lists", cfg.PostCheck.ListDir)
	assert.Equal(t, []string{"device_template.json"}, cfg.PostCheck.EssentialFiles)
	assert.Equal(t, 2, cfg.PostCheck.Thresholds.MinFileCount)
	assert.Equal(t, 10, cfg.PostCheck.Thresholds.MinItemCount)
	assert.Equal(t, "out", cfg.Report.OutputDir)
	assert.Equal(t, []string{"junit"}, cfg.Report.Formats)
	assert.Equal(t, filepath.Join(dir, FileName), cfg.Path)
}

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "controller: [broken")

	_, err := Load(dir)
	require.Error(t, err)
}

func TestLoad_SchemaViolation_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "timeouts:\n  api: 0\nbogus: 1\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/timeouts/api")
}

func TestLoad_WalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, "postcheck:\n  list_dir: inventories\n")

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg, err := Load(nested)
	require.NoError(t, err)
	assert.Equal(t, "inventories", cfg.PostCheck.ListDir)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "custom.yaml", "report:\n  upload_url: https://acct.blob.core.windows.net/reports\n")

	cfg, err := LoadFile(filepath.Join(dir, "custom.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://acct.blob.core.windows.net/reports", cfg.Report.UploadURL)

	_, err = LoadFile(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}
