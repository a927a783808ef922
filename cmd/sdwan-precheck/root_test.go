package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arunsidharrth/SDWAN/internal/cli"
	"github.com/arunsidharrth/SDWAN/internal/precheck"
	"github.com/arunsidharrth/SDWAN/internal/projectconfig"
)

type fakeRunner map[string]string

func (f fakeRunner) Run(_ context.Context, name string, _ ...string) ([]byte, error) {
	out, ok := f[name]
	if !ok {
		return nil, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return []byte(out), nil
}

var installedTools = fakeRunner{
	"ansible-playbook": "ansible-playbook [core 2.15.0]\n  config file = None\n",
	"sastre":           "Sastre-Pro Version 1.23\n",
	"python3":          "Python 3.11.4\n",
}

func useSuite(t *testing.T, env map[string]string, runner precheck.CommandRunner) {
	t.Helper()
	orig := newSuite
	t.Cleanup(func() { newSuite = orig })
	newSuite = func(cfg *projectconfig.ProjectConfig, workDir string) *precheck.Suite {
		s := orig(cfg, workDir)
		s.Getenv = func(k string) string { return env[k] }
		s.Runner = runner
		return s
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--no-color", "--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPreCheck_ReadyEnvironment(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"deviceType": "vsmart", "host-name": "vsmart-1", "reachability": "reachable"}]}`))
	}))
	defer srv.Close()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	useSuite(t, map[string]string{
		"VMANAGE_HOST":     u.Hostname(),
		"VMANAGE_PORT":     u.Port(),
		"VMANAGE_USERNAME": "admin",
		"VMANAGE_PASSWORD": "s3cret",
	}, installedTools)

	work := t.TempDir()
	for _, pb := range []string{"usecase1.yml", "sdwan_list_config.yml"} {
		require.NoError(t, os.WriteFile(filepath.Join(work, pb), []byte("---\n"), 0644))
	}
	outDir := filepath.Join(work, "reports")

	out, err := execute(t, "--workdir", work, "--output-dir", outDir)
	require.NoError(t, err, out)

	assert.Contains(t, out, "SD-WAN AUTOMATION PRE-CHECK")
	assert.Contains(t, out, "Checking vManage API Access...")
	assert.Contains(t, out, "✓  PASS - vManage API Access: Successfully authenticated - Found 1 controllers")
	assert.Contains(t, out, "🎉 ALL CRITICAL CHECKS PASSED!")
	assert.Contains(t, out, "🎉 Environment is ready for SD-WAN automation.")
	assert.NotContains(t, out, "s3cret")

	reports, err := filepath.Glob(filepath.Join(outDir, "precheck_report_*.json"))
	require.NoError(t, err)
	assert.Len(t, reports, 1)
	results, err := filepath.Glob(filepath.Join(outDir, "precheck_results_*.txt"))
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestPreCheck_MissingCredentialsFails(t *testing.T) {
	useSuite(t, map[string]string{}, fakeRunner{})
	work := t.TempDir()

	out, err := execute(t, "--workdir", work, "--output-dir", work)
	require.Error(t, err)

	var failed *cli.ChecksFailedError
	require.True(t, errors.As(err, &failed))
	assert.Contains(t, out, "✗  FAIL - Environment Variable: VMANAGE_HOST: Not set - Required for authentication")
	assert.Contains(t, out, "✗  FAIL - Tool: sastre: Tool not found - Please install")
	assert.Contains(t, out, "❌ CRITICAL ISSUES DETECTED!")
	assert.Equal(t, ExitFailure, exitCode(&bytes.Buffer{}, err))
}

func TestPreCheck_BadFormatIsAnError(t *testing.T) {
	useSuite(t, map[string]string{}, fakeRunner{})
	_, err := execute(t, "--workdir", t.TempDir(), "--format", "pdf")
	assert.ErrorContains(t, err, `unknown report format "pdf"`)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "success", err: nil, code: ExitSuccess},
		{name: "failed checks", err: &cli.ChecksFailedError{Tool: "precheck", Failed: 2}, code: ExitFailure},
		{name: "interrupted", err: context.Canceled, code: ExitFailure, message: "Pre-check interrupted by user"},
		{name: "other error", err: errors.New("bad config"), code: ExitFailure, message: "error: bad config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.code, exitCode(&buf, tt.err))
			if tt.message == "" {
				assert.Empty(t, buf.String())
			} else {
				assert.Contains(t, buf.String(), tt.message)
			}
		})
	}
}
