package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNote_Validate(t *testing.T) {
	valid := Note{Title: "Test", Synopsis: "Short desc", Content: "<p>Hi</p>"}
	require.NoError(t, valid.Validate())

	blank := valid
	blank.Synopsis = "   "
	err := blank.Validate()
	require.ErrorIs(t, err, ErrInvalid)

	var ferr *Error
	require.True(t, errors.As(err, &ferr))
	require.Equal(t, []FieldError{{Field: "synopsis", Tag: "notblank"}}, ferr.Fields)
	require.True(t, ferr.HasTag("notblank"))
	require.False(t, ferr.HasTag("email"))
}

func TestNote_Validate_MissingFieldCombinations(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		field := func(label string) string {
			return rapid.OneOf(
				rapid.Just(""),
				rapid.Just("  \t"),
				rapid.StringMatching(`[A-Za-z0-9 <>/]{1,40}`),
			).Draw(t, label)
		}
		n := Note{
			Title:    field("title"),
			Synopsis: field("synopsis"),
			Content:  field("content"),
			IsPublic: rapid.Bool().Draw(t, "public"),
		}

		blank := func(s string) bool {
			for _, r := range s {
				if r != ' ' && r != '\t' {
					return false
				}
			}
			return true
		}
		anyBlank := blank(n.Title) || blank(n.Synopsis) || blank(n.Content)

		err := n.Validate()
		if anyBlank {
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected invalid form for %+v, got %v", n, err)
			}
			return
		}
		if err != nil {
			t.Fatalf("expected valid form for %+v, got %v", n, err)
		}
	})
}

func TestStore(t *testing.T) {
	s := NewStore()
	require.Equal(t, Note{}, s.Snapshot())

	s.Set(Note{ID: "n1", Title: "a", Synopsis: "b", Content: "c"})
	s.SetCurrentNoteID("n1")

	title := "renamed"
	public := true
	s.Update(Patch{Title: &title, IsPublic: &public})

	got := s.Snapshot()
	require.Equal(t, "renamed", got.Title)
	require.Equal(t, "b", got.Synopsis)
	require.Equal(t, "c", got.Content)
	require.True(t, got.IsPublic)
	require.Equal(t, "n1", s.CurrentNoteID())

	s.Reset()
	require.Equal(t, Note{}, s.Snapshot())
	require.Equal(t, "", s.CurrentNoteID())
}

func TestStore_HeldDraft(t *testing.T) {
	s := NewStore()
	s.SetCurrentNoteID("n1")
	require.False(t, s.TakeDraft("n1"))

	s.HoldDraft()
	require.False(t, s.TakeDraft("n2"))

	s.HoldDraft()
	require.True(t, s.TakeDraft("n1"))
	require.False(t, s.TakeDraft("n1"))

	s.HoldDraft()
	s.Reset()
	s.SetCurrentNoteID("n1")
	require.False(t, s.TakeDraft("n1"))
}
