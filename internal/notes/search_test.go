package notes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	list := []Note{
		{ID: "1", Title: "groceries", Synopsis: "milk and eggs"},
		{ID: "2", Title: "travel plans", Synopsis: "lisbon in may"},
		{ID: "3", Title: "reading list", Synopsis: "books to borrow"},
	}

	require.Equal(t, list, Search(list, "  "))

	got := Search(list, "lisbon")
	require.Len(t, got, 1)
	require.Equal(t, "2", got[0].ID)

	require.Empty(t, Search(list, "zzzz"))
	require.Nil(t, Search(nil, "x"))
}

func TestPartition(t *testing.T) {
	list := []Note{
		{ID: "1", IsPublic: true},
		{ID: "2"},
		{ID: "3", IsPublic: true},
	}
	pub, priv := Partition(list)
	require.Equal(t, []Note{list[0], list[2]}, pub)
	require.Equal(t, []Note{list[1]}, priv)

	// toggling moves the note between subsets
	list[1].IsPublic = true
	pub, priv = Partition(list)
	require.Len(t, pub, 3)
	require.Empty(t, priv)
}
