// Package schemas holds the JSON Schema documents shipped with the binary.
package schemas

import _ "embed"

// Catalog validates content catalog override files.
//
//go:embed catalog.schema.json
var Catalog string
