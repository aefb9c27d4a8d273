package catalog

import "strings"

// splitPath breaks a slash-delimited path into its segments, discarding
// empties produced by leading, trailing, or doubled slashes.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

// joinPath builds the canonical slash-delimited form of the given segments,
// e.g. joinPath("root", "docs") == "/root/docs".
func joinPath(segs ...string) string {
	return "/" + strings.Join(segs, "/")
}

// canonical rewrites a user-supplied path into its canonical form. The
// result is only meaningful for paths that resolve.
func canonical(path string) string {
	return joinPath(splitPath(path)...)
}

// resolve walks the tree from the root along the path's segments. The first
// segment must name the root; each further segment must match a child folder
// exactly (case-sensitive). Files never participate as path segments. A
// failure reports the deepest segment that had no match.
//
// The caller must hold the catalog lock.
func (c *Catalog) resolve(path string) (*Folder, error) {
	segs := splitPath(path)
	if len(segs) == 0 {
		return nil, &PathError{Path: path, Segment: RootName}
	}
	if segs[0] != c.root.Name {
		return nil, &PathError{Path: path, Segment: segs[0]}
	}
	cur := c.root
	for _, seg := range segs[1:] {
		next := cur.ChildFolder(seg)
		if next == nil {
			return nil, &PathError{Path: path, Segment: seg}
		}
		cur = next
	}
	return cur, nil
}
