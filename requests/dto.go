// Package requests defines the boundary DTOs for the catalog API and the
// seed file, together with their validation rules. Conversion into core
// types (tag splitting included) happens here so the catalog only ever sees
// clean values.
package requests

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/filecab/filecab/catalog"
)

// CreateFolderRequest is the body of POST /api/folders.
type CreateFolderRequest struct {
	ParentPath string `json:"parent_path"`
	Name       string `json:"name"`
}

func (r CreateFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ParentPath, validation.Required),
		validation.Field(&r.Name, validation.Required, validation.By(noSlash)),
	)
}

// DeleteRequest is the body of the folder and file delete endpoints.
type DeleteRequest struct {
	ParentPath string `json:"parent_path"`
	Name       string `json:"name"`
}

func (r DeleteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ParentPath, validation.Required),
		validation.Field(&r.Name, validation.Required, validation.By(noSlash)),
	)
}

// AddFileRequest is the body of POST /api/files. Tags arrive as one
// comma-separated string and are split into trimmed terms before storage.
type AddFileRequest struct {
	ParentPath string `json:"parent_path"`
	Name       string `json:"name"`
	Author     string `json:"author"`
	FileType   string `json:"file_type"`
	Tags       string `json:"tags"`
}

func (r AddFileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ParentPath, validation.Required),
		validation.Field(&r.Name, validation.Required, validation.By(noSlash)),
	)
}

// Meta converts the request's metadata fields into the core representation.
func (r AddFileRequest) Meta() catalog.FileMeta {
	return catalog.FileMeta{
		Author:   r.Author,
		FileType: r.FileType,
		Tags:     SplitTags(r.Tags),
	}
}

// SearchRequest is the body of POST /api/search. All fields are optional at
// this layer; the catalog rejects a query with no criteria.
type SearchRequest struct {
	Name     string `json:"name"`
	Author   string `json:"author"`
	FileType string `json:"file_type"`
	Tags     string `json:"tags"`
}

// Query converts the request into a core search query.
func (r SearchRequest) Query() catalog.Query {
	return catalog.Query{
		Name:     r.Name,
		Author:   r.Author,
		FileType: r.FileType,
		Tags:     SplitTags(r.Tags),
	}
}

// SplitTags breaks a comma-separated tag string into trimmed, non-empty
// terms, preserving order and duplicates.
func SplitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func noSlash(value any) error {
	s, _ := value.(string)
	if strings.Contains(s, "/") {
		return errors.New("must not contain '/'")
	}
	return nil
}
