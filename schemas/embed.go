// Package schemas holds the JSON Schemas for every document the service persists.
package schemas

import "embed"

// FS contains the *.schema.json files
//
//go:embed *.schema.json
var FS embed.FS
