package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecycleBin_ListInsertionOrder(t *testing.T) {
	c := buildCatalog(t)

	_, err := c.DeleteFile("/root/docs", "a.txt")
	require.NoError(t, err)
	_, err = c.DeleteFolder("/root", "pics")
	require.NoError(t, err)

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Name)
	assert.Equal(t, 0, entries[0].Index)
	assert.Equal(t, "pics", entries[1].Name)
	assert.Equal(t, 1, entries[1].Index)
	assert.False(t, entries[0].DeletedAt.After(entries[1].DeletedAt))
}

func TestRecycleBin_IndicesShiftAfterRemoval(t *testing.T) {
	c := buildCatalog(t)

	_, err := c.DeleteFile("/root/docs", "a.txt")
	require.NoError(t, err)
	_, err = c.DeleteFolder("/root", "pics")
	require.NoError(t, err)
	_, err = c.DeleteFolder("/root", "docs")
	require.NoError(t, err)

	require.NoError(t, c.Purge(0))

	entries := c.Entries()
	require.Len(t, entries, 2)
	// Later entries shifted down one slot
	assert.Equal(t, "pics", entries[0].Name)
	assert.Equal(t, "docs", entries[1].Name)
}

func TestRecycleBin_StableIDsSurviveShifts(t *testing.T) {
	c := buildCatalog(t)

	_, err := c.DeleteFile("/root/docs", "a.txt")
	require.NoError(t, err)
	picsID, err := c.DeleteFolder("/root", "pics")
	require.NoError(t, err)

	// Removing the earlier entry shifts pics to index 0; its ID is unchanged
	require.NoError(t, c.Purge(0))
	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, picsID, entries[0].ID)

	require.NoError(t, c.RestoreID(picsID))
	assert.NotNil(t, c.Tree().ChildFolder("pics"))
}

func TestRecycleBin_IndexOutOfRange(t *testing.T) {
	c := buildCatalog(t)

	assert.ErrorIs(t, c.Restore(0), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Purge(-1), ErrIndexOutOfRange)

	_, err := c.DeleteFile("/root/docs", "a.txt")
	require.NoError(t, err)
	assert.ErrorIs(t, c.Restore(1), ErrIndexOutOfRange)
}

func TestRecycleBin_UnknownID(t *testing.T) {
	c := buildCatalog(t)

	assert.ErrorIs(t, c.RestoreID(uuid.New()), ErrNotFound)
	assert.ErrorIs(t, c.PurgeID(uuid.New()), ErrNotFound)
}

func TestRecycleBin_RestoreDuplicateName(t *testing.T) {
	c := buildCatalog(t)

	_, err := c.DeleteFolder("/root", "docs")
	require.NoError(t, err)

	// The name has been reused since deletion; the conflict is surfaced,
	// never silently renamed or overwritten.
	require.NoError(t, c.CreateFolder("/root", "docs"))

	err = c.Restore(0)
	assert.ErrorIs(t, err, ErrDuplicateName)

	// Failed restore leaves the entry in the bin untouched
	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "/root/docs", entries[0].OriginalPath)
}

func TestRecycleBin_RestoreOriginalLocationMissing(t *testing.T) {
	c := buildCatalog(t)

	fileID, err := c.DeleteFile("/root/docs", "a.txt")
	require.NoError(t, err)
	_, err = c.DeleteFolder("/root", "docs")
	require.NoError(t, err)

	// a.txt's parent is itself in the bin now
	err = c.RestoreID(fileID)
	assert.ErrorIs(t, err, ErrLocationMissing)
	assert.Len(t, c.Entries(), 2)
}

func TestRecycleBin_RestoreAfterAncestorLoss(t *testing.T) {
	c := buildCatalog(t)

	nestedID, err := c.DeleteFolder("/root/docs", "nested")
	require.NoError(t, err)
	_, err = c.DeleteFolder("/root", "docs")
	require.NoError(t, err)

	// Only the immediate parent is checked; a missing deeper ancestor is
	// the same failure.
	assert.ErrorIs(t, c.RestoreID(nestedID), ErrLocationMissing)

	// Restoring docs first makes the nested restore possible again
	require.NoError(t, c.RestoreID(c.Entries()[1].ID))
	require.NoError(t, c.RestoreID(nestedID))
	assert.NotNil(t, c.Tree().ChildFolder("docs").ChildFolder("nested"))
}

func TestRecycleBin_PurgeIsPermanent(t *testing.T) {
	c := buildCatalog(t)

	id, err := c.DeleteFile("/root/docs", "a.txt")
	require.NoError(t, err)
	require.NoError(t, c.PurgeID(id))

	assert.Empty(t, c.Entries())
	assert.ErrorIs(t, c.RestoreID(id), ErrNotFound)

	s := c.Stats()
	assert.Equal(t, 0, s.BinNodes)
	assert.Equal(t, 1, s.Files) // only b.txt remains live
}

func TestRecycleBin_Empty(t *testing.T) {
	c := buildCatalog(t)

	_, err := c.DeleteFile("/root/docs", "a.txt")
	require.NoError(t, err)
	_, err = c.DeleteFolder("/root", "pics")
	require.NoError(t, err)

	assert.Equal(t, 2, c.EmptyBin())
	assert.Empty(t, c.Entries())
	assert.Equal(t, 0, c.EmptyBin())
}
