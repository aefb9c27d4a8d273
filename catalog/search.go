package catalog

import (
	"strings"

	"github.com/filecab/filecab"
)

// Query carries the metadata criteria for a catalog-wide search. Empty
// fields are ignored; at least one must be supplied. Every supplied
// criterion must match for a candidate to count.
type Query struct {
	Name     string   // case-insensitive substring of the node name
	Author   string   // case-insensitive substring of the file author
	FileType string   // case-insensitive exact match of the file type
	Tags     []string // matches when at least one term is among the file's tags
}

func (q Query) empty() bool {
	return q.Name == "" && q.Author == "" && q.FileType == "" && len(q.Tags) == 0
}

// fileOnly reports whether the query carries criteria only file records
// have. Folders participate in search via their name alone.
func (q Query) fileOnly() bool {
	return q.Author != "" || q.FileType != "" || len(q.Tags) > 0
}

func (q Query) matchesFolder(f *Folder) bool {
	if q.fileOnly() {
		return false
	}
	return containsFold(f.Name, q.Name)
}

func (q Query) matchesFile(fl *File) bool {
	if q.Name != "" && !containsFold(fl.Name, q.Name) {
		return false
	}
	if q.Author != "" && !containsFold(fl.Author, q.Author) {
		return false
	}
	if q.FileType != "" && !strings.EqualFold(fl.FileType, q.FileType) {
		return false
	}
	if len(q.Tags) > 0 && !anyTag(fl.Tags, q.Tags) {
		return false
	}
	return true
}

// Match is one search hit together with its reconstructed location. The
// path is computed during traversal; nodes never store it.
type Match struct {
	Name     string           `json:"name"`
	Type     filecab.NodeType `json:"type"`
	Path     string           `json:"full_path"`
	Author   string           `json:"author,omitempty"`
	FileType string           `json:"file_type,omitempty"`
	Tags     []string         `json:"tags,omitempty"`
}

// Search traverses the whole live tree and returns every node matching the
// query, in display order: each folder is visited before its files, files in
// stored order, then child folders recursively in stored order.
func (c *Catalog) Search(q Query) ([]Match, error) {
	if q.empty() {
		return nil, &QueryError{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var matches []Match
	walk(c.root, joinPath(c.root.Name), func(path string, n Node) {
		switch v := n.(type) {
		case *Folder:
			if q.matchesFolder(v) {
				matches = append(matches, Match{Name: v.Name, Type: filecab.FolderType, Path: path})
			}
		case *File:
			if q.matchesFile(v) {
				matches = append(matches, fileMatch(v, path))
			}
		}
	})
	c.logger.Debug().Int("matches", len(matches)).Msg("Search completed")
	return matches, nil
}

// walk visits the subtree rooted at f in display order, handing each node's
// full path to visit. The caller must hold the catalog lock when walking
// live nodes.
func walk(f *Folder, path string, visit func(path string, n Node)) {
	visit(path, f)
	for _, fl := range f.Files {
		visit(path+"/"+fl.Name, fl)
	}
	for _, child := range f.Children {
		walk(child, path+"/"+child.Name, visit)
	}
}

func fileMatch(fl *File, path string) Match {
	return Match{
		Name:     fl.Name,
		Type:     filecab.FileType,
		Path:     path,
		Author:   fl.Author,
		FileType: fl.FileType,
		Tags:     append([]string(nil), fl.Tags...),
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// anyTag reports whether at least one query term is present among tags,
// case-insensitively.
func anyTag(tags, terms []string) bool {
	for _, term := range terms {
		for _, tag := range tags {
			if strings.EqualFold(tag, term) {
				return true
			}
		}
	}
	return false
}
