package model

import "strings"

// Candidate is a versioned bundle awaiting release in the incoming location.
type Candidate struct {
	Name    string  // directory name, e.g. ltth_1.2.0
	Version Version // parsed from Name
}

// ArtifactFile is the file name of the release archive inside the candidate.
func (c *Candidate) ArtifactFile(l Layout) string {
	return l.ArtifactName(c.Version.String())
}

// HasPrefix reports whether name is a candidate directory name for prefix.
func HasPrefix(name, prefix string) bool {
	return strings.HasPrefix(name, prefix+"_")
}

// SkippedEntry records an incoming entry that could not be parsed.
type SkippedEntry struct {
	Name   string
	Reason string
}
