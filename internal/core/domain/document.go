package domain

import "time"

// Document is one eligible subdirectory of the output directory.
type Document struct {
	// Name is the subdirectory name relative to the output directory.
	Name       string
	SourcePath string
	OutputPath string
}

// BatchReport summarizes a batch transform.
type BatchReport struct {
	Documents int
	Written   int
	Unchanged int
	Failed    int
	Elapsed   time.Duration
}
