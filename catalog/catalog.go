package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/filecab/filecab/internal/util"
)

// Catalog is the owned state handle for one namespace tree and its recycle
// bin. There is no ambient global: the process's long-lived reference lives
// with the transport layer, which drives all mutation through these methods.
//
// Every operation serializes through a single mutex covering both the tree
// and the bin, since delete and restore move nodes between them. Operations
// are atomic: they validate before they mutate, so a failed call leaves both
// structures unchanged. No operation performs I/O while holding the lock.
type Catalog struct {
	mu     sync.Mutex
	root   *Folder
	bin    *recycleBin
	logger zerolog.Logger
}

// New creates a catalog holding an empty root folder and an empty recycle
// bin.
func New() *Catalog {
	return &Catalog{
		root:   NewFolder(RootName),
		bin:    &recycleBin{},
		logger: util.GetLogger("catalog"),
	}
}

// Tree returns a deep copy of the live tree. The copy shares no nodes with
// the catalog, so callers may walk or serialize it without holding any lock.
func (c *Catalog) Tree() *Folder {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.root.Clone()
}

// CreateFolder appends a new empty folder under the parent path. The new
// folder lands at the end of the parent's children, preserving insertion
// order.
func (c *Catalog) CreateFolder(parentPath, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	parent, err := c.resolve(parentPath)
	if err != nil {
		return err
	}
	if !parent.AttachFolder(NewFolder(name)) {
		return &DuplicateError{Path: canonical(parentPath), Name: name}
	}
	c.logger.Debug().Str("parent", canonical(parentPath)).Str("name", name).Msg("Created folder")
	return nil
}

// DeleteFolder detaches the named child folder, with its entire subtree,
// and moves it to the recycle bin tagged with its canonical original path.
// It returns the new bin entry's stable ID.
//
// The root folder can never be deleted.
func (c *Catalog) DeleteFolder(parentPath, name string) (uuid.UUID, error) {
	if err := validName(name); err != nil {
		return uuid.Nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	parent, err := c.resolve(parentPath)
	if err != nil {
		return uuid.Nil, err
	}
	if parent == c.root && name == RootName {
		return uuid.Nil, &ForbiddenError{Name: name}
	}
	sub := parent.DetachFolder(name)
	if sub == nil {
		return uuid.Nil, &NotFoundError{Path: canonical(parentPath), Name: name}
	}
	origin := canonical(parentPath) + "/" + name
	e := c.bin.moveIn(sub, origin)
	c.logger.Info().Str("path", origin).Int("nodes", sub.NodeCount()).Msg("Moved folder to recycle bin")
	return e.id, nil
}

// AddFile appends a new file record with the given metadata to the parent's
// files, at the end.
func (c *Catalog) AddFile(parentPath, name string, meta FileMeta) error {
	if err := validName(name); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	parent, err := c.resolve(parentPath)
	if err != nil {
		return err
	}
	if !parent.AttachFile(NewFile(name, meta)) {
		return &DuplicateError{Path: canonical(parentPath), Name: name}
	}
	c.logger.Debug().Str("parent", canonical(parentPath)).Str("name", name).Msg("Added file")
	return nil
}

// DeleteFile detaches the named file record and moves it to the recycle bin
// tagged with its canonical original path. It returns the new bin entry's
// stable ID.
func (c *Catalog) DeleteFile(parentPath, name string) (uuid.UUID, error) {
	if err := validName(name); err != nil {
		return uuid.Nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	parent, err := c.resolve(parentPath)
	if err != nil {
		return uuid.Nil, err
	}
	file := parent.DetachFile(name)
	if file == nil {
		return uuid.Nil, &NotFoundError{Path: canonical(parentPath), Name: name}
	}
	origin := canonical(parentPath) + "/" + name
	e := c.bin.moveIn(file, origin)
	c.logger.Info().Str("path", origin).Msg("Moved file to recycle bin")
	return e.id, nil
}

// LookupFile finds a file by exact name within one folder. Files are stored
// in insertion order, so the lookup binary-searches a name-sorted copy.
func (c *Catalog) LookupFile(parentPath, name string) (Match, error) {
	if err := validName(name); err != nil {
		return Match{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	parent, err := c.resolve(parentPath)
	if err != nil {
		return Match{}, err
	}
	sorted := parent.SortedFiles()
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i].Name >= name })
	if i == len(sorted) || sorted[i].Name != name {
		return Match{}, &NotFoundError{Path: canonical(parentPath), Name: name}
	}
	return fileMatch(sorted[i], canonical(parentPath)+"/"+name), nil
}

// Entries lists the recycle bin in insertion order, oldest first.
func (c *Catalog) Entries() []EntryInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	infos := make([]EntryInfo, len(c.bin.entries))
	for i, e := range c.bin.entries {
		infos[i] = EntryInfo{
			ID:           e.id,
			Index:        i,
			Name:         e.node.NodeName(),
			Type:         e.node.NodeType(),
			OriginalPath: e.originalPath,
			DeletedAt:    e.deletedAt,
		}
	}
	return infos
}

// Restore re-attaches the bin entry at index to its original location. On
// success the entry leaves the bin and later entries shift down one index;
// on failure the entry stays in the bin untouched.
//
// Only the immediate parent of the original path is re-resolved: if it no
// longer exists the restore fails with ErrLocationMissing, whether the
// parent itself or a deeper ancestor went missing. A name collision at the
// original location fails with ErrDuplicateName rather than renaming or
// overwriting.
func (c *Catalog) Restore(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.bin.at(index)
	if err != nil {
		return err
	}
	return c.restoreAt(index, e)
}

// RestoreID is Restore addressed by the entry's stable ID.
func (c *Catalog) RestoreID(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.bin.indexOf(id)
	if i < 0 {
		return &EntryError{ID: id}
	}
	return c.restoreAt(i, c.bin.entries[i])
}

// restoreAt re-attaches the entry and removes it from the bin. The caller
// must hold the lock and guarantee index addresses e.
func (c *Catalog) restoreAt(index int, e *binEntry) error {
	segs := splitPath(e.originalPath)
	parentPath := joinPath(segs[:len(segs)-1]...)
	parent, err := c.resolve(parentPath)
	if err != nil {
		return &LocationError{OriginalPath: e.originalPath}
	}

	switch n := e.node.(type) {
	case *Folder:
		if !parent.AttachFolder(n) {
			return &DuplicateError{Path: parentPath, Name: n.Name}
		}
	case *File:
		if !parent.AttachFile(n) {
			return &DuplicateError{Path: parentPath, Name: n.Name}
		}
	}
	c.bin.removeAt(index)
	c.logger.Info().Str("path", e.originalPath).Msg("Restored from recycle bin")
	return nil
}

// Purge permanently discards the bin entry at index. No recovery is
// possible afterwards.
func (c *Catalog) Purge(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.bin.at(index); err != nil {
		return err
	}
	e := c.bin.removeAt(index)
	c.logger.Info().Str("path", e.originalPath).Msg("Permanently deleted recycle bin entry")
	return nil
}

// PurgeID is Purge addressed by the entry's stable ID.
func (c *Catalog) PurgeID(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.bin.indexOf(id)
	if i < 0 {
		return &EntryError{ID: id}
	}
	e := c.bin.removeAt(i)
	c.logger.Info().Str("path", e.originalPath).Msg("Permanently deleted recycle bin entry")
	return nil
}

// EmptyBin discards every recycle bin entry and returns how many were
// dropped. Irreversible.
func (c *Catalog) EmptyBin() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.bin.clear()
	if n > 0 {
		c.logger.Info().Int("entries", n).Msg("Emptied recycle bin")
	}
	return n
}

// Stats is a point-in-time census of the live tree and the recycle bin.
type Stats struct {
	Folders    int `json:"folders"`
	Files      int `json:"files"`
	BinEntries int `json:"bin_entries"`
	BinNodes   int `json:"bin_nodes"`
}

// Stats counts live folders (root included), live files, bin entries, and
// the total nodes held inside bin entries.
func (c *Catalog) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{BinEntries: len(c.bin.entries), BinNodes: c.bin.nodeCount()}
	walk(c.root, joinPath(c.root.Name), func(path string, n Node) {
		switch n.(type) {
		case *Folder:
			s.Folders++
		case *File:
			s.Files++
		}
	})
	return s
}

// validName rejects empty names and names containing the path separator.
func validName(name string) error {
	if name == "" {
		return &InputError{Field: "name", Reason: "must not be empty"}
	}
	if strings.Contains(name, "/") {
		return &InputError{Field: "name", Reason: "must not contain '/'"}
	}
	return nil
}
