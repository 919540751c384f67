// Package schemas holds the JSON Schemas for the screener's file artifacts.
package schemas

import "embed"

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names
const (
	Corpus       = "corpus.schema.json"
	MatchResults = "match_results.schema.json"
	WeightConfig = "weight_config.schema.json"
)
