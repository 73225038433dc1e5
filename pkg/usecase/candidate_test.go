package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/ltth-app/siteops/pkg/domain/interfaces"
	"github.com/ltth-app/siteops/pkg/usecase"
)

func dirs(names ...string) []interfaces.DirEntry {
	entries := make([]interfaces.DirEntry, 0, len(names))
	for _, n := range names {
		entries = append(entries, interfaces.DirEntry{Name: n, IsDir: true})
	}
	return entries
}

func TestSelectCandidate(t *testing.T) {
	tests := []struct {
		name    string
		entries []interfaces.DirEntry
		want    string
		skipped int
	}{
		{
			name:    "highest core wins",
			entries: dirs("ltth_1.0.0", "ltth_1.2.0", "ltth_1.1.5-beta"),
			want:    "ltth_1.2.0",
		},
		{
			name:    "final release beats its prerelease",
			entries: dirs("ltth_2.0.0-alpha", "ltth_2.0.0"),
			want:    "ltth_2.0.0",
		},
		{
			name:    "numeric not lexical",
			entries: dirs("ltth_1.9.0", "ltth_1.10.0"),
			want:    "ltth_1.10.0",
		},
		{
			name:    "invalid names are skipped",
			entries: dirs("ltth_latest", "ltth_1.0", "ltth_0.1.0"),
			want:    "ltth_0.1.0",
			skipped: 2,
		},
		{
			name:    "nested underscore does not hide behind the prefix",
			entries: dirs("ltth_1.2.0", "ltth_backup_9.9.9", "ltth_a_b_1.2.3"),
			want:    "ltth_1.2.0",
			skipped: 2,
		},
		{
			name:    "other prefixes ignored",
			entries: dirs("other_9.9.9", "ltth1.0.0", "ltth_1.0.0"),
			want:    "ltth_1.0.0",
		},
		{
			name: "files ignored",
			entries: []interfaces.DirEntry{
				{Name: "ltth_3.0.0", IsDir: false},
				{Name: "ltth_1.0.0", IsDir: true},
			},
			want: "ltth_1.0.0",
		},
		{
			name:    "equal precedence resolved by name",
			entries: dirs("ltth_1.0.0+b", "ltth_1.0.0+a"),
			want:    "ltth_1.0.0+a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, skipped := usecase.SelectCandidate(tt.entries, "ltth")
			gt.Value(t, c).NotNil()
			gt.Value(t, c.Name).Equal(tt.want)
			gt.Array(t, skipped).Length(tt.skipped)
		})
	}
}

func TestSelectCandidate_TieBreakIndependentOfOrder(t *testing.T) {
	a, _ := usecase.SelectCandidate(dirs("ltth_1.0.0+x", "ltth_1.0.0+a", "ltth_1.0.0+m"), "ltth")
	b, _ := usecase.SelectCandidate(dirs("ltth_1.0.0+m", "ltth_1.0.0+x", "ltth_1.0.0+a"), "ltth")
	gt.Value(t, a.Name).Equal(b.Name)
	gt.Value(t, a.Name).Equal("ltth_1.0.0+a")
}

func TestSelectCandidate_None(t *testing.T) {
	c, skipped := usecase.SelectCandidate(nil, "ltth")
	gt.Value(t, c).Nil()
	gt.Array(t, skipped).Length(0)

	c, skipped = usecase.SelectCandidate(dirs("ltth_foo", "readme"), "ltth")
	gt.Value(t, c).Nil()
	gt.Array(t, skipped).Length(1)
	gt.Value(t, skipped[0].Name).Equal("ltth_foo")
}
