package notes

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"example.com/notely-web/internal/stringsx"
)

type searchable []Note

func (s searchable) String(i int) string { return s[i].Title + " " + s[i].Synopsis }
func (s searchable) Len() int            { return len(s) }

// Search returns the notes whose title or synopsis fuzzily match q, best match
// first. An empty query returns list unchanged.
func Search(list []Note, q string) []Note {
	if stringsx.IsEmpty(q) || len(list) == 0 {
		return list
	}
	matches := fuzzy.FindFrom(strings.TrimSpace(q), searchable(list))
	out := make([]Note, 0, len(matches))
	for _, m := range matches {
		out = append(out, list[m.Index])
	}
	return out
}

// Partition splits list into public and private notes, keeping order.
func Partition(list []Note) (public, private []Note) {
	for _, n := range list {
		if n.IsPublic {
			public = append(public, n)
		} else {
			private = append(private, n)
		}
	}
	return public, private
}
