package interfaces

import (
	"context"
	"io"
)

// DirEntry is one entry of the incoming location.
type DirEntry struct {
	Name  string
	IsDir bool
}

// ReleaseStore holds the release state: candidates, the live artifact, the
// release pointer, the archive, the metadata record and processed
// candidates. Implementations are not safe for concurrent transitions;
// callers run one release at a time.
type ReleaseStore interface {
	// ListCandidates lists the incoming location. A missing location is an
	// empty list, not an error.
	ListCandidates(ctx context.Context) ([]DirEntry, error)

	// CandidateFileSize returns the size of file inside a candidate and
	// whether it exists.
	CandidateFileSize(ctx context.Context, candidate, file string) (int64, bool, error)

	// OpenCandidateFile opens file inside a candidate for reading.
	OpenCandidateFile(ctx context.Context, candidate, file string) (io.ReadCloser, error)

	// ReadPointer returns the current release pointer, trimmed, and whether
	// one exists.
	ReadPointer(ctx context.Context) (string, bool, error)

	// WritePointer overwrites the release pointer.
	WritePointer(ctx context.Context, version string) error

	// LiveArtifactSize returns the size of the deployed artifact and whether
	// it exists.
	LiveArtifactSize(ctx context.Context) (int64, bool, error)

	// ReadArchiveEntry returns the size of the archive entry for version and
	// whether it exists.
	ReadArchiveEntry(ctx context.Context, version string) (int64, bool, error)

	// WriteArchiveEntry copies the live artifact into the archive under
	// version. It never overwrites an existing entry.
	WriteArchiveEntry(ctx context.Context, version string) error

	// DeployArtifact copies a candidate file over the live artifact.
	DeployArtifact(ctx context.Context, candidate, file string) error

	// WriteMetadata overwrites the release metadata record.
	WriteMetadata(ctx context.Context, data []byte) error

	// ProcessedExists reports whether a processed entry named candidate exists.
	ProcessedExists(ctx context.Context, candidate string) (bool, error)

	// MoveCandidate relocates a candidate to the processed location.
	MoveCandidate(ctx context.Context, candidate string) error

	// RemoveCandidate deletes a candidate from the incoming location.
	RemoveCandidate(ctx context.Context, candidate string) error
}

// Committer records the working tree changes of a release.
type Committer interface {
	// Commit stages every change and commits it, returning the commit hash.
	Commit(ctx context.Context, message string) (string, error)
}
