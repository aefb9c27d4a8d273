package requests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecab/filecab"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
		desc string
	}{
		{"draft,v1", []string{"draft", "v1"}, "plain list"},
		{" draft , v1 ", []string{"draft", "v1"}, "whitespace trimmed"},
		{"draft,,v1,", []string{"draft", "v1"}, "empty terms dropped"},
		{"draft,draft", []string{"draft", "draft"}, "duplicates kept"},
		{"", nil, "empty input"},
		{" , , ", nil, "only separators"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTags(tt.in))
		})
	}
}

func TestCreateFolderRequest_Validate(t *testing.T) {
	valid := CreateFolderRequest{ParentPath: "/root", Name: "docs"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		req  CreateFolderRequest
		desc string
	}{
		{CreateFolderRequest{Name: "docs"}, "missing parent path"},
		{CreateFolderRequest{ParentPath: "/root"}, "missing name"},
		{CreateFolderRequest{ParentPath: "/root", Name: "a/b"}, "name with separator"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Error(t, tt.req.Validate())
		})
	}
}

func TestDeleteRequest_Validate(t *testing.T) {
	valid := DeleteRequest{ParentPath: "/root", Name: "docs"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		req  DeleteRequest
		desc string
	}{
		{DeleteRequest{Name: "docs"}, "missing parent path"},
		{DeleteRequest{ParentPath: "/root"}, "missing name"},
		{DeleteRequest{ParentPath: "/root", Name: "a/b"}, "name with separator"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Error(t, tt.req.Validate())
		})
	}
}

func TestAddFileRequest_Meta(t *testing.T) {
	req := AddFileRequest{
		ParentPath: "/root/docs",
		Name:       "a.txt",
		Author:     "Sam",
		FileType:   "txt",
		Tags:       "draft, v1",
	}
	require.NoError(t, req.Validate())

	meta := req.Meta()
	assert.Equal(t, "Sam", meta.Author)
	assert.Equal(t, "txt", meta.FileType)
	assert.Equal(t, []string{"draft", "v1"}, meta.Tags)
}

func TestSearchRequest_Query(t *testing.T) {
	req := SearchRequest{Name: "report", Tags: "draft,final"}
	q := req.Query()
	assert.Equal(t, "report", q.Name)
	assert.Equal(t, []string{"draft", "final"}, q.Tags)
	assert.Empty(t, q.Author)
}

func TestSeedNode_Validate(t *testing.T) {
	valid := SeedNode{Type: filecab.FolderType, ParentPath: "/root", Name: "docs"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		node SeedNode
		desc string
	}{
		{SeedNode{ParentPath: "/root", Name: "docs"}, "missing type"},
		{SeedNode{Type: "link", ParentPath: "/root", Name: "x"}, "unknown type"},
		{SeedNode{Type: filecab.FileType, Name: "a.txt"}, "missing parent path"},
		{SeedNode{Type: filecab.FileType, ParentPath: "/root", Name: "a/b"}, "name with separator"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Error(t, tt.node.Validate())
		})
	}
}

func TestParseSeed(t *testing.T) {
	data := []byte(`[
		{"type": "folder", "parent_path": "/root", "name": "docs"},
		{"type": "file", "parent_path": "/root/docs", "name": "a.txt",
		 "author": "Sam", "file_type": "txt", "tags": "draft,v1"}
	]`)

	nodes, err := ParseSeed(data)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, filecab.FolderType, nodes[0].Type)
	assert.Equal(t, "a.txt", nodes[1].Name)
	assert.Equal(t, "draft,v1", nodes[1].Tags)

	_, err = ParseSeed([]byte(`{"not": "an array"}`))
	assert.Error(t, err)
}
