// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StoreConfig holds settings for the roots database.
type StoreConfig struct {
	// Database is the path of the SQLite database file (default "roots.db").
	Database string `json:"database" yaml:"database"`

	// MaxResults is the default maximum number of query results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ImportConfig holds settings for one import run.
type ImportConfig struct {
	StoreConfig `yaml:",inline"`

	// Input is the path of the corpus file, or "-" for standard input.
	Input string `json:"input" yaml:"input"`

	// Kind selects the line format for the whole run.
	Kind Kind `json:"kind" yaml:"kind"`

	// Quality is an opaque tag stored with every record of the run.
	Quality string `json:"quality" yaml:"quality"`

	// Strict aborts the run on the first malformed line instead of
	// skipping it.
	Strict bool `json:"strict" yaml:"strict"`
}
