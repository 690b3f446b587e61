// Package schemas embeds the JSON Schema documents shipped with the CLI.
package schemas

import _ "embed"

// AnalysisSchemaJSON is the JSON Schema for analysis.yaml spec files.
//
//go:embed analysis.schema.json
var AnalysisSchemaJSON string
