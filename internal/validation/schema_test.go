package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `controller:
  host_env: VMANAGE_HOST
  default_port: 8443
  api_path: /dataservice/system/device/controllers
timeouts:
  command: 10
  network: 10
  api: 30
precheck:
  tools:
    - name: sastre
    - name: python3
      min_version: "3.6"
  directories: [backups, lists, reports, logs]
postcheck:
  essential_files: [device_template.json]
  thresholds:
    min_file_count: 3
    max_duration_minutes: 45.5
report:
  formats: [junit, html]
`

const invalidConfigYAML = `controller:
  default_port: 70000
precheck:
  tools:
    - min_version: "1.0"
report:
  formats: [pdf]
unknown_section: true
`

const validReportJSON = `{
  "metadata": {
    "run_id": "4b8e0d36-0c1d-4a57-9a55-0c7f1a0c1a11",
    "tool": "postcheck",
    "operation_type": "backup",
    "timestamp": "2024-03-15T10:00:00Z",
    "target": "backups/2024-03-15",
    "platform": "linux/amd64",
    "go_version": "go1.26"
  },
  "summary": {"total_checks": 3, "passed": 2, "failed": 0, "warnings": 1, "success_rate": 100},
  "metrics": {"total_files": 12, "total_size": 4096, "backup_stats": {"device_templates": 4}},
  "checks": [
    {"name": "Backup Directory", "status": "pass", "message": "Found: backups/2024-03-15", "timestamp": "2024-03-15T10:00:00Z"}
  ],
  "detailed_results": ["PASS: Backup Directory - Found: backups/2024-03-15"],
  "recommendations": []
}`

func TestValidateConfigBytes_Valid(t *testing.T) {
	errs := ValidateConfigBytes([]byte(validConfigYAML))
	assert.Empty(t, errs)
}

func TestValidateConfigBytes_EmptyDocument(t *testing.T) {
	assert.Empty(t, ValidateConfigBytes([]byte("")))
}

func TestValidateConfigBytes_Invalid(t *testing.T) {
	errs := ValidateConfigBytes([]byte(invalidConfigYAML))
	require.NotEmpty(t, errs)

	joined := strings.Join(errs, "\n")
	assert.Contains(t, joined, "/controller/default_port")
	assert.Contains(t, joined, "/precheck/tools/0")
	assert.Contains(t, joined, "/report/formats/0")
}

func TestValidateConfigBytes_BadYAML(t *testing.T) {
	errs := ValidateConfigBytes([]byte("controller: [unclosed"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "YAML parse error")
}

func TestValidateReportBytes(t *testing.T) {
	assert.Empty(t, ValidateReportBytes([]byte(validReportJSON)))

	broken := strings.Replace(validReportJSON, `"status": "pass"`, `"status": "skipped"`, 1)
	errs := ValidateReportBytes([]byte(broken))
	require.NotEmpty(t, errs)
	assert.Contains(t, strings.Join(errs, "\n"), "/checks/0/status")

	negative := strings.Replace(validReportJSON, `"failed": 0`, `"failed": -1`, 1)
	require.NotEmpty(t, ValidateReportBytes([]byte(negative)))

	errs = ValidateReportBytes([]byte("{not json"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "JSON parse error")
}
