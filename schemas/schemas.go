// Package schemas embeds the JSON Schemas for the project config file and
// the structured run report.
package schemas

import _ "embed"

// ReportSchemaJSON is the schema every JSON report must satisfy.
//
//go:embed report.schema.json
var ReportSchemaJSON string

// ConfigSchemaJSON is the schema for .sdwan-check.yaml.
//
//go:embed config.schema.json
var ConfigSchemaJSON string
