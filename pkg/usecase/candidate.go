package usecase

import (
	"sort"

	"github.com/ltth-app/siteops/pkg/domain/interfaces"
	"github.com/ltth-app/siteops/pkg/domain/model"
)

// SelectCandidate returns the highest-versioned candidate directory among
// entries, or nil when none qualifies. Non-directories and names without
// the "<prefix>_" form are ignored; prefixed names whose remainder is not a
// strict version (ltth_backup_9.9.9, for one) are returned as skipped.
//
// Equal versions (for example 1.0.0+a and 1.0.0+b) are ordered by directory
// name, so the result does not depend on listing order.
func SelectCandidate(entries []interfaces.DirEntry, prefix string) (*model.Candidate, []model.SkippedEntry) {
	var (
		candidates []model.Candidate
		skipped    []model.SkippedEntry
	)

	for _, e := range entries {
		if !e.IsDir || !model.HasPrefix(e.Name, prefix) {
			continue
		}
		v, err := model.ParsePrefixedVersion(e.Name, prefix)
		if err != nil {
			skipped = append(skipped, model.SkippedEntry{Name: e.Name, Reason: err.Error()})
			continue
		}
		candidates = append(candidates, model.Candidate{Name: e.Name, Version: v})
	}

	if len(candidates) == 0 {
		return nil, skipped
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if c := candidates[i].Version.Compare(candidates[j].Version); c != 0 {
			return c > 0
		}
		return candidates[i].Name < candidates[j].Name
	})

	selected := candidates[0]
	return &selected, skipped
}
