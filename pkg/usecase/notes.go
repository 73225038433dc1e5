package usecase

import (
	"strings"
	"unicode/utf8"

	"github.com/ltth-app/siteops/pkg/domain/model"
)

// TruncateNotes bounds changelog text by line count and character count.
// The line limit is applied first; the character limit then applies to what
// is left. A line cut ends with "\n"+marker, a character cut with marker.
// Text within both limits is returned unchanged and truncated is false.
// A non-positive limit disables that bound.
func TruncateNotes(content string, limit model.NotesLimit) (notes string, truncated bool) {
	out := content

	lineCut := false
	if limit.MaxLines > 0 {
		lines := strings.Split(content, "\n")
		if len(lines) > limit.MaxLines {
			out = strings.Join(lines[:limit.MaxLines], "\n")
			lineCut = true
		}
	}

	if limit.MaxChars > 0 && utf8.RuneCountInString(out) > limit.MaxChars {
		runes := []rune(out)
		return string(runes[:limit.MaxChars]) + limit.Marker, true
	}

	if lineCut {
		return out + "\n" + limit.Marker, true
	}
	return content, false
}
