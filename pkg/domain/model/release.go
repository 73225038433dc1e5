package model

import "time"

// ReleaseMetadata is the record published next to the live artifact for
// read-only consumers such as the download page.
type ReleaseMetadata struct {
	Version   string    `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
	Notes     string    `json:"notes"`
}

// ReleaseStatus is the outcome of a release run.
type ReleaseStatus string

const (
	ReleaseStatusReleased    ReleaseStatus = "released"
	ReleaseStatusNothingToDo ReleaseStatus = "nothing_to_do"
)

// Disposition describes what happened to a candidate directory after release.
type Disposition string

const (
	DispositionMoved            Disposition = "moved"
	DispositionAlreadyProcessed Disposition = "already_processed"
)

// ReleaseResult summarizes a release run
type ReleaseResult struct {
	Status      ReleaseStatus
	Candidate   string  // candidate directory name
	Version     Version // released version
	Previous    string  // pointer value before the run, empty on first release
	Archived    bool    // previous artifact is present in the archive
	Disposition Disposition
	CommitHash  string
	Skipped     []SkippedEntry
	Warnings    []string
}

// NotesLimit bounds the changelog text copied into ReleaseMetadata.
type NotesLimit struct {
	MaxLines int    `toml:"max_lines" yaml:"max_lines"`
	MaxChars int    `toml:"max_chars" yaml:"max_chars"`
	Marker   string `toml:"marker" yaml:"marker"`
}

// DefaultNotesLimit returns the historical limits of the download page.
func DefaultNotesLimit() NotesLimit {
	return NotesLimit{
		MaxLines: 50,
		MaxChars: 2000,
		Marker:   "...",
	}
}
