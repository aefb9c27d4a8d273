// Package filecab maintains an in-memory hierarchical catalog of folders and
// metadata-only file records. Structural deletes are reversible: deleted
// subtrees move to a recycle bin that remembers their original location until
// they are restored or purged.
//
// The catalog package holds the tree engine; server exposes it over an HTTP
// JSON API.
package filecab

// Version is stamped at build time via -ldflags.
var Version = "dev"

// NodeType identifies the two node variants in a catalog tree.
type NodeType string

const (
	FolderType NodeType = "folder"
	FileType   NodeType = "file"
)
