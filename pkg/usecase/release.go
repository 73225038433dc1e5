package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/m-mizutani/goerr/v2"

	"github.com/ltth-app/siteops/pkg/domain/interfaces"
	"github.com/ltth-app/siteops/pkg/domain/model"
	"github.com/ltth-app/siteops/pkg/domain/types"
	"github.com/ltth-app/siteops/pkg/utils/logging"
	"github.com/ltth-app/siteops/pkg/utils/progress"
)

const zipMIME = "application/zip"

type releaseUseCase struct {
	store     interfaces.ReleaseStore
	layout    model.Layout
	limit     model.NotesLimit
	reporter  interfaces.Reporter
	committer interfaces.Committer
	now       func() time.Time
}

// ReleaseOption customizes the release use case
type ReleaseOption func(*releaseUseCase)

// WithLayout sets the repository layout. Defaults to model.DefaultLayout.
func WithLayout(layout model.Layout) ReleaseOption {
	return func(uc *releaseUseCase) {
		uc.layout = layout
	}
}

// WithNotesLimit sets the changelog limits. Defaults to model.DefaultNotesLimit.
func WithNotesLimit(limit model.NotesLimit) ReleaseOption {
	return func(uc *releaseUseCase) {
		uc.limit = limit
	}
}

// WithReporter sets the progress trace destination
func WithReporter(r interfaces.Reporter) ReleaseOption {
	return func(uc *releaseUseCase) {
		if r != nil {
			uc.reporter = r
		}
	}
}

// WithCommitter enables the final commit step
func WithCommitter(c interfaces.Committer) ReleaseOption {
	return func(uc *releaseUseCase) {
		uc.committer = c
	}
}

// WithClock overrides the metadata timestamp source (tests).
func WithClock(now func() time.Time) ReleaseOption {
	return func(uc *releaseUseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

// NewRelease creates a new instance of ReleaseUseCase
func NewRelease(store interfaces.ReleaseStore, opts ...ReleaseOption) interfaces.ReleaseUseCase {
	uc := &releaseUseCase{
		store:    store,
		layout:   model.DefaultLayout(),
		limit:    model.DefaultNotesLimit(),
		reporter: progress.Nop{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run executes the release transition. Steps run in order and each one is a
// precondition for the next; the pointer is only written after the archive
// and deploy steps succeed. Nothing is rolled back on failure.
func (uc *releaseUseCase) Run(ctx context.Context) (*model.ReleaseResult, error) {
	logger := logging.From(ctx)
	r := uc.reporter
	result := &model.ReleaseResult{}

	r.Banner(fmt.Sprintf("%s release", uc.layout.Prefix))

	// Step 1: select
	r.Step(1, fmt.Sprintf("Finding highest version in %s/", uc.layout.IncomingDir))
	entries, err := uc.store.ListCandidates(ctx)
	if err != nil {
		return nil, uc.fail(ctx, "select", err)
	}

	candidate, skipped := SelectCandidate(entries, uc.layout.Prefix)
	for _, s := range skipped {
		logger.Warn("Skipping invalid version directory", "name", s.Name, "reason", s.Reason)
		r.Warn("Skipping invalid version directory: %s", s.Name)
	}
	result.Skipped = skipped

	if candidate == nil {
		logger.Info("No release candidates", "incoming", uc.layout.IncomingDir)
		r.Info("No valid versions found in %s/", uc.layout.IncomingDir)
		r.Info("Add a version directory in the form %s/%s_X.Y.Z/", uc.layout.IncomingDir, uc.layout.Prefix)
		result.Status = model.ReleaseStatusNothingToDo
		return result, nil
	}

	result.Candidate = candidate.Name
	result.Version = candidate.Version
	logger.Info("Selected release candidate", "name", candidate.Name, "version", candidate.Version.String())
	r.OK("Found new version: %s", candidate.Version)
	r.Info("Path: %s", uc.layout.CandidateDir(candidate.Name))

	// Step 2: validate and prepare notes
	r.Step(2, "Validating candidate files")
	notes, err := uc.validate(ctx, candidate)
	if err != nil {
		return nil, uc.fail(ctx, "validate", err)
	}

	// Step 3: current pointer
	r.Step(3, "Checking current deployed version")
	current, hasCurrent, err := uc.store.ReadPointer(ctx)
	if err != nil {
		return nil, uc.fail(ctx, "read pointer", err)
	}
	if hasCurrent {
		result.Previous = current
		r.Info("Current version: %s", current)
		if w := uc.advise(candidate.Version, current); w != "" {
			logger.Warn("Release order advisory", "candidate", candidate.Version.String(), "current", current, "advice", w)
			r.Warn("%s", w)
			r.Info("Continuing anyway...")
			result.Warnings = append(result.Warnings, w)
		}
	} else {
		r.Info("No current version found (first release)")
	}

	// Step 4: archive previous
	r.Step(4, "Archiving current version")
	if hasCurrent {
		archived, warning, err := uc.archive(ctx, current)
		if err != nil {
			return nil, uc.fail(ctx, "archive", err)
		}
		result.Archived = archived
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
	} else {
		r.Info("Skipping archive (no current version)")
	}

	// Step 5: deploy
	r.Step(5, "Deploying new version")
	if err := uc.store.DeployArtifact(ctx, candidate.Name, candidate.ArtifactFile(uc.layout)); err != nil {
		return nil, uc.fail(ctx, "deploy", err)
	}
	if size, ok, err := uc.store.LiveArtifactSize(ctx); err == nil && ok {
		r.OK("Deployed new version: %s (%s)", uc.layout.LiveArtifact, progress.Size(size))
	}

	// Step 6: pointer and metadata
	r.Step(6, "Updating metadata files")
	if err := uc.store.WritePointer(ctx, candidate.Version.String()); err != nil {
		return nil, uc.fail(ctx, "write pointer", err)
	}
	r.OK("Updated %s: %s", uc.layout.PointerFile, candidate.Version)

	if err := uc.writeMetadata(ctx, candidate.Version, notes); err != nil {
		return nil, uc.fail(ctx, "write metadata", err)
	}
	r.OK("Updated %s", uc.layout.MetadataFile)

	// Step 7: retire candidate
	r.Step(7, fmt.Sprintf("Moving candidate to %s/", uc.layout.ProcessedDir))
	disposition, err := uc.retire(ctx, candidate)
	if err != nil {
		return nil, uc.fail(ctx, "retire candidate", err)
	}
	result.Disposition = disposition

	// Step 8: optional commit
	if uc.committer != nil {
		r.Step(8, "Committing release changes")
		hash, err := uc.committer.Commit(ctx, fmt.Sprintf("release: %s", candidate.Version))
		if err != nil {
			return nil, uc.fail(ctx, "commit", err)
		}
		result.CommitHash = hash
		if hash != "" {
			r.OK("Committed %s", hash)
		} else {
			r.Info("Nothing to commit")
		}
	}

	result.Status = model.ReleaseStatusReleased
	logger.Info("Release completed",
		"version", candidate.Version.String(),
		"previous", result.Previous,
		"archived", result.Archived,
		"disposition", string(result.Disposition),
	)
	r.Done("SUCCESS: Released version %s", candidate.Version)
	if uc.committer == nil {
		r.Info("Next: commit and push the repository, then check %s, %s and %s",
			uc.layout.LiveArtifactPath(), uc.layout.PointerPath(), uc.layout.MetadataPath())
	}

	return result, nil
}

// validate checks the candidate's artifact and notes and returns the notes
// already truncated for the metadata record.
func (uc *releaseUseCase) validate(ctx context.Context, c *model.Candidate) (string, error) {
	artifact := c.ArtifactFile(uc.layout)
	notesFile := uc.layout.NotesFile

	size, ok, err := uc.store.CandidateFileSize(ctx, c.Name, artifact)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", goerr.New("missing artifact file",
			goerr.V("candidate", c.Name), goerr.V("file", artifact), goerr.T(types.ErrTagValidation))
	}
	if size == 0 {
		return "", goerr.New("artifact file is empty",
			goerr.V("candidate", c.Name), goerr.V("file", artifact), goerr.T(types.ErrTagValidation))
	}

	if _, ok, err := uc.store.CandidateFileSize(ctx, c.Name, notesFile); err != nil {
		return "", err
	} else if !ok {
		return "", goerr.New("missing notes file",
			goerr.V("candidate", c.Name), goerr.V("file", notesFile), goerr.T(types.ErrTagValidation))
	}

	if err := uc.checkArchive(ctx, c, artifact); err != nil {
		return "", err
	}

	raw, err := uc.readCandidateFile(ctx, c.Name, notesFile)
	if err != nil {
		return "", err
	}
	content := string(raw)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "�")
	}
	notes, truncated := TruncateNotes(content, uc.limit)

	uc.reporter.OK("Candidate validation passed")
	uc.reporter.Info("Artifact: %s (%s)", artifact, progress.Size(size))
	uc.reporter.Info("Notes: %s", notesFile)
	if truncated {
		uc.reporter.Info("Notes truncated to %d lines / %d characters", uc.limit.MaxLines, uc.limit.MaxChars)
	}
	return notes, nil
}

// checkArchive sniffs the artifact content; it has to be a zip archive or a
// zip-based format.
func (uc *releaseUseCase) checkArchive(ctx context.Context, c *model.Candidate, artifact string) error {
	f, err := uc.store.OpenCandidateFile(ctx, c.Name, artifact)
	if err != nil {
		return err
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return goerr.Wrap(err, "failed to read artifact", goerr.V("file", artifact), goerr.T(types.ErrTagIO))
	}
	for m := mt; m != nil; m = m.Parent() {
		if m.Is(zipMIME) {
			return nil
		}
	}
	return goerr.New("artifact is not a zip archive",
		goerr.V("candidate", c.Name),
		goerr.V("file", artifact),
		goerr.V("detected", mt.String()),
		goerr.T(types.ErrTagValidation))
}

func (uc *releaseUseCase) readCandidateFile(ctx context.Context, candidate, file string) ([]byte, error) {
	f, err := uc.store.OpenCandidateFile(ctx, candidate, file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read candidate file",
			goerr.V("candidate", candidate), goerr.V("file", file), goerr.T(types.ErrTagIO))
	}
	return data, nil
}

// advise returns a warning when the candidate does not move the release
// forward. Such releases still proceed.
func (uc *releaseUseCase) advise(candidate model.Version, current string) string {
	cur, err := model.ParseVersion(current)
	if err != nil {
		return fmt.Sprintf("Current version %q is not a valid semantic version", current)
	}
	if !cur.Less(candidate) {
		return fmt.Sprintf("New version %s is not higher than current %s", candidate, current)
	}
	return ""
}

// archive preserves the live artifact under the current version. An entry
// of identical size counts as already archived; a different size aborts.
func (uc *releaseUseCase) archive(ctx context.Context, current string) (bool, string, error) {
	logger := logging.From(ctx)
	r := uc.reporter

	liveSize, ok, err := uc.store.LiveArtifactSize(ctx)
	if err != nil {
		return false, "", err
	}
	if !ok {
		w := fmt.Sprintf("%s does not exist, skipping archival", uc.layout.LiveArtifact)
		logger.Warn("Live artifact missing", "path", uc.layout.LiveArtifactPath())
		r.Warn("%s", w)
		return false, w, nil
	}

	name := path.Base(uc.layout.ArchivePath(current))
	if key := model.ArchiveKey(current); key != current {
		logger.Warn("Pointer text contains path separators", "pointer", current, "archive_key", key)
		r.Warn("Pointer %q contains path separators, archiving as %s", current, name)
	}
	archiveSize, exists, err := uc.store.ReadArchiveEntry(ctx, current)
	if err != nil {
		return false, "", err
	}
	if exists {
		if archiveSize != liveSize {
			r.Info("Current: %s", progress.Size(liveSize))
			r.Info("Archive: %s", progress.Size(archiveSize))
			return false, "", goerr.New("archive entry exists with a different size",
				goerr.V("version", current),
				goerr.V("archive", uc.layout.ArchivePath(current)),
				goerr.V("live_size", liveSize),
				goerr.V("archive_size", archiveSize),
				goerr.T(types.ErrTagArchiveConflict))
		}
		logger.Info("Archive entry already present", "version", current, "size", liveSize)
		r.OK("Archive already exists with identical size: %s", name)
		return true, "", nil
	}

	if err := uc.store.WriteArchiveEntry(ctx, current); err != nil {
		return false, "", err
	}
	logger.Info("Archived previous release", "version", current, "size", liveSize)
	r.OK("Archived current version: %s", name)
	return true, "", nil
}

func (uc *releaseUseCase) writeMetadata(ctx context.Context, v model.Version, notes string) error {
	record := model.ReleaseMetadata{
		Version:   v.String(),
		UpdatedAt: uc.now().UTC().Truncate(time.Second),
		Notes:     notes,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return goerr.Wrap(err, "failed to encode release metadata", goerr.T(types.ErrTagIO))
	}

	return uc.store.WriteMetadata(ctx, buf.Bytes())
}

// retire moves the candidate to the processed location. When a processed
// entry of the same name exists, the candidate was released before and is
// deleted instead.
func (uc *releaseUseCase) retire(ctx context.Context, c *model.Candidate) (model.Disposition, error) {
	logger := logging.From(ctx)
	r := uc.reporter

	exists, err := uc.store.ProcessedExists(ctx, c.Name)
	if err != nil {
		return "", err
	}
	if exists {
		logger.Warn("Candidate already processed, removing it", "name", c.Name)
		r.Warn("%s already exists in %s/", c.Name, uc.layout.ProcessedDir)
		r.Info("Removing candidate from %s/", uc.layout.IncomingDir)
		if err := uc.store.RemoveCandidate(ctx, c.Name); err != nil {
			return "", err
		}
		return model.DispositionAlreadyProcessed, nil
	}

	if err := uc.store.MoveCandidate(ctx, c.Name); err != nil {
		return "", err
	}
	r.OK("Moved candidate to %s/%s", uc.layout.ProcessedDir, c.Name)
	return model.DispositionMoved, nil
}

// fail reports a fatal step error on the trace and the log and returns it
// unchanged so its category tag is preserved.
func (uc *releaseUseCase) fail(ctx context.Context, step string, err error) error {
	logging.From(ctx).Error("Release step failed", "step", step, "error", err)
	uc.reporter.Fail("%s failed: %v", step, err)
	return err
}
