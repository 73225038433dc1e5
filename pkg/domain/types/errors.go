package types

import "github.com/m-mizutani/goerr/v2"

// Error categories. Every error returned by the release pipeline carries
// exactly one of these tags so the caller can tell a skipped entry from a
// fatal abort with goerr.HasTag.
var (
	// ErrTagParse marks a malformed version string. Never fatal for a run.
	ErrTagParse = goerr.NewTag("parse")

	// ErrTagValidation marks a candidate missing its required files.
	ErrTagValidation = goerr.NewTag("validation")

	// ErrTagArchiveConflict marks an archive entry whose size differs from
	// the artifact that would be archived under the same version.
	ErrTagArchiveConflict = goerr.NewTag("archive_conflict")

	// ErrTagIO marks a copy, write, move or remove failure.
	ErrTagIO = goerr.NewTag("io")

	// ErrTagConfig marks invalid configuration or manifest input.
	ErrTagConfig = goerr.NewTag("config")
)
