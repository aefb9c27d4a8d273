package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/filecab/filecab"
)

// binEntry exclusively owns one detached subtree or file together with the
// canonical path it was detached from. Once an entry exists, the live tree
// holds no reference to its node.
//
// Entries are addressed two ways: by position in insertion order, matching
// the original wire contract, and by the stable ID assigned at insertion.
// Positions shift down when an earlier entry leaves the bin; IDs never
// change, so callers that hold state across calls should use them.
type binEntry struct {
	id           uuid.UUID
	node         Node
	originalPath string
	deletedAt    time.Time
}

// recycleBin is the ordered collection of detached items: append-only on
// insertion, random-removal on restore and purge. It is owned by a Catalog
// and shares the catalog lock; none of its methods lock.
type recycleBin struct {
	entries []*binEntry
}

// moveIn appends a new entry owning node and returns it.
func (b *recycleBin) moveIn(n Node, originalPath string) *binEntry {
	e := &binEntry{
		id:           uuid.New(),
		node:         n,
		originalPath: originalPath,
		deletedAt:    time.Now(),
	}
	b.entries = append(b.entries, e)
	return e
}

// at returns the entry at index, or an IndexError.
func (b *recycleBin) at(index int) (*binEntry, error) {
	if index < 0 || index >= len(b.entries) {
		return nil, &IndexError{Index: index, Len: len(b.entries)}
	}
	return b.entries[index], nil
}

// indexOf returns the current position of the entry with the given ID, or -1.
func (b *recycleBin) indexOf(id uuid.UUID) int {
	for i, e := range b.entries {
		if e.id == id {
			return i
		}
	}
	return -1
}

// removeAt discards the entry at index; later entries shift down one slot.
// The index must be valid.
func (b *recycleBin) removeAt(index int) *binEntry {
	e := b.entries[index]
	b.entries = append(b.entries[:index], b.entries[index+1:]...)
	return e
}

// clear discards every entry and returns how many were dropped.
func (b *recycleBin) clear() int {
	n := len(b.entries)
	b.entries = nil
	return n
}

// nodeCount sums the nodes held across all entries, counting a folder entry
// as its whole subtree.
func (b *recycleBin) nodeCount() int {
	total := 0
	for _, e := range b.entries {
		if folder, ok := e.node.(*Folder); ok {
			total += folder.NodeCount()
		} else {
			total++
		}
	}
	return total
}

// EntryInfo describes one recycle bin entry for display. Index is the
// position at listing time only; prefer ID when addressing entries across
// calls.
type EntryInfo struct {
	ID           uuid.UUID        `json:"id"`
	Index        int              `json:"index"`
	Name         string           `json:"name"`
	Type         filecab.NodeType `json:"type"`
	OriginalPath string           `json:"original_path"`
	DeletedAt    time.Time        `json:"deleted_at"`
}
