package usecase_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/m-mizutani/gt"

	"github.com/ltth-app/siteops/pkg/domain/model"
	"github.com/ltth-app/siteops/pkg/usecase"
)

func TestTruncateNotes(t *testing.T) {
	limit := model.DefaultNotesLimit()

	t.Run("within limits unchanged", func(t *testing.T) {
		in := "- fixed crash\n- new icon\n"
		out, truncated := usecase.TruncateNotes(in, limit)
		gt.False(t, truncated)
		gt.Value(t, out).Equal(in)
	})

	t.Run("line limit", func(t *testing.T) {
		lines := make([]string, 60)
		for i := range lines {
			lines[i] = "- change"
		}
		out, truncated := usecase.TruncateNotes(strings.Join(lines, "\n"), limit)
		gt.True(t, truncated)
		gt.True(t, strings.HasSuffix(out, "\n..."))
		gt.Value(t, strings.Count(out, "\n")).Equal(50)
	})

	t.Run("character limit", func(t *testing.T) {
		out, truncated := usecase.TruncateNotes(strings.Repeat("x", 5000), limit)
		gt.True(t, truncated)
		gt.Value(t, out).Equal(strings.Repeat("x", 2000) + "...")
	})

	t.Run("character limit after line limit", func(t *testing.T) {
		lines := make([]string, 60)
		for i := range lines {
			lines[i] = strings.Repeat("y", 100)
		}
		out, truncated := usecase.TruncateNotes(strings.Join(lines, "\n"), limit)
		gt.True(t, truncated)
		gt.Value(t, utf8.RuneCountInString(out)).Equal(2003)
		gt.False(t, strings.HasSuffix(out, "\n..."))
	})

	t.Run("multibyte counted as characters", func(t *testing.T) {
		out, truncated := usecase.TruncateNotes(strings.Repeat("é", 10), model.NotesLimit{MaxChars: 4, Marker: "~"})
		gt.True(t, truncated)
		gt.Value(t, out).Equal("éééé~")
		gt.True(t, utf8.ValidString(out))
	})

	t.Run("exactly at limit", func(t *testing.T) {
		in := strings.Repeat("z", 2000)
		out, truncated := usecase.TruncateNotes(in, limit)
		gt.False(t, truncated)
		gt.Value(t, out).Equal(in)
	})

	t.Run("limits disabled", func(t *testing.T) {
		in := strings.Repeat("line\n", 500)
		out, truncated := usecase.TruncateNotes(in, model.NotesLimit{})
		gt.False(t, truncated)
		gt.Value(t, out).Equal(in)
	})
}
