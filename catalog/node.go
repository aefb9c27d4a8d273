package catalog

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/filecab/filecab"
)

// RootName is the fixed name of the tree root. Every path begins with it and
// the root folder itself can never be deleted.
const RootName = "root"

// Node is either a *Folder or a *File: the two variants that can travel
// through the recycle bin.
type Node interface {
	NodeName() string
	NodeType() filecab.NodeType
}

// Folder is an interior node. A folder exclusively owns its child folders
// and files as ordered sequences; parent identity is reconstructed by
// traversal, never stored, so a detached subtree carries no references back
// into the live tree.
type Folder struct {
	Name     string
	Children []*Folder
	Files    []*File
}

// File is a leaf record carrying metadata only, no byte payload. Tags keep
// insertion order and are not deduplicated.
type File struct {
	Name      string
	Author    string
	FileType  string
	Tags      []string
	CreatedAt time.Time
}

// FileMeta carries the optional descriptive fields attached to a new file.
type FileMeta struct {
	Author   string
	FileType string
	Tags     []string
}

// NewFolder creates an empty folder.
func NewFolder(name string) *Folder {
	return &Folder{Name: name}
}

// NewFile creates a file record with the given metadata. The file type is
// normalized to lower case; tags are stored as given.
func NewFile(name string, meta FileMeta) *File {
	return &File{
		Name:      name,
		Author:    meta.Author,
		FileType:  strings.ToLower(meta.FileType),
		Tags:      meta.Tags,
		CreatedAt: time.Now(),
	}
}

func (f *Folder) NodeName() string           { return f.Name }
func (f *Folder) NodeType() filecab.NodeType { return filecab.FolderType }

func (fl *File) NodeName() string           { return fl.Name }
func (fl *File) NodeType() filecab.NodeType { return filecab.FileType }

// ChildFolder returns the child folder with the given name, or nil.
// Matching is case-sensitive and exact, like path resolution.
func (f *Folder) ChildFolder(name string) *Folder {
	for _, c := range f.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FileByName returns the file with the given name, or nil.
func (f *Folder) FileByName(name string) *File {
	for _, fl := range f.Files {
		if fl.Name == name {
			return fl
		}
	}
	return nil
}

// AttachFolder appends child to the folder's children. It refuses the
// attach and returns false if a sibling folder already carries the name;
// files may share a name with a folder since they live in a separate
// sequence.
func (f *Folder) AttachFolder(child *Folder) bool {
	if f.ChildFolder(child.Name) != nil {
		return false
	}
	f.Children = append(f.Children, child)
	return true
}

// AttachFile appends file to the folder's files, refusing duplicates.
func (f *Folder) AttachFile(file *File) bool {
	if f.FileByName(file.Name) != nil {
		return false
	}
	f.Files = append(f.Files, file)
	return true
}

// DetachFolder removes and returns the named child subtree, or nil if there
// is no such child. The subtree travels whole: every descendant folder and
// file stays attached under the returned node.
func (f *Folder) DetachFolder(name string) *Folder {
	for i, c := range f.Children {
		if c.Name == name {
			f.Children = append(f.Children[:i], f.Children[i+1:]...)
			return c
		}
	}
	return nil
}

// DetachFile removes and returns the named file, or nil.
func (f *Folder) DetachFile(name string) *File {
	for i, fl := range f.Files {
		if fl.Name == name {
			f.Files = append(f.Files[:i], f.Files[i+1:]...)
			return fl
		}
	}
	return nil
}

// SortedFiles returns a name-sorted copy of the folder's files. The stored
// insertion order is left untouched.
func (f *Folder) SortedFiles() []*File {
	files := make([]*File, len(f.Files))
	copy(files, f.Files)
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files
}

// NodeCount returns the number of nodes in the subtree rooted at f,
// counting f itself and every descendant folder and file.
func (f *Folder) NodeCount() int {
	n := 1 + len(f.Files)
	for _, c := range f.Children {
		n += c.NodeCount()
	}
	return n
}

// Clone returns a deep copy of the subtree sharing no nodes with f.
func (f *Folder) Clone() *Folder {
	out := &Folder{Name: f.Name}
	if len(f.Children) > 0 {
		out.Children = make([]*Folder, len(f.Children))
		for i, c := range f.Children {
			out.Children[i] = c.Clone()
		}
	}
	if len(f.Files) > 0 {
		out.Files = make([]*File, len(f.Files))
		for i, fl := range f.Files {
			out.Files[i] = fl.Clone()
		}
	}
	return out
}

// Clone returns a copy of the file record.
func (fl *File) Clone() *File {
	out := *fl
	if fl.Tags != nil {
		out.Tags = append([]string(nil), fl.Tags...)
	}
	return &out
}

// MarshalJSON renders the folder in the agreed tree shape:
// {name, type:"folder", children, files}. Empty sequences marshal as [] so
// collaborators never see null.
func (f *Folder) MarshalJSON() ([]byte, error) {
	type folderJSON struct {
		Name     string           `json:"name"`
		Type     filecab.NodeType `json:"type"`
		Children []*Folder        `json:"children"`
		Files    []*File          `json:"files"`
	}
	out := folderJSON{Name: f.Name, Type: filecab.FolderType, Children: f.Children, Files: f.Files}
	if out.Children == nil {
		out.Children = []*Folder{}
	}
	if out.Files == nil {
		out.Files = []*File{}
	}
	return json.Marshal(out)
}

// MarshalJSON renders the file record as
// {name, type:"file", author, file_type, tags, created_at}.
func (fl *File) MarshalJSON() ([]byte, error) {
	type fileJSON struct {
		Name      string           `json:"name"`
		Type      filecab.NodeType `json:"type"`
		Author    string           `json:"author"`
		FileType  string           `json:"file_type"`
		Tags      []string         `json:"tags"`
		CreatedAt time.Time        `json:"created_at"`
	}
	tags := fl.Tags
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(fileJSON{fl.Name, filecab.FileType, fl.Author, fl.FileType, tags, fl.CreatedAt})
}
