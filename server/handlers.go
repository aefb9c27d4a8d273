package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/filecab/filecab/catalog"
	"github.com/filecab/filecab/requests"
)

// statusResponse acknowledges a mutation that returns no payload.
type statusResponse struct {
	Status string `json:"status"`
}

var okResponse = statusResponse{Status: "ok"}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	s.stats.inc(opTree)
	respondJSON(w, http.StatusOK, s.cat.Tree())
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	s.stats.inc(opCreateFolder)
	var req requests.CreateFolderRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.cat.CreateFolder(req.ParentPath, req.Name); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, okResponse)
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	s.stats.inc(opDeleteFolder)
	var req requests.DeleteRequest
	if !s.decode(w, r, &req) {
		return
	}
	id, err := s.cat.DeleteFolder(req.ParentPath, req.Name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, struct {
		statusResponse
		EntryID uuid.UUID `json:"entry_id"`
	}{okResponse, id})
}

func (s *Server) handleAddFile(w http.ResponseWriter, r *http.Request) {
	s.stats.inc(opAddFile)
	var req requests.AddFileRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.cat.AddFile(req.ParentPath, req.Name, req.Meta()); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, okResponse)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	s.stats.inc(opDeleteFile)
	var req requests.DeleteRequest
	if !s.decode(w, r, &req) {
		return
	}
	id, err := s.cat.DeleteFile(req.ParentPath, req.Name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, struct {
		statusResponse
		EntryID uuid.UUID `json:"entry_id"`
	}{okResponse, id})
}

func (s *Server) handleLookupFile(w http.ResponseWriter, r *http.Request) {
	s.stats.inc(opLookupFile)
	parentPath := r.URL.Query().Get("parent_path")
	name := r.URL.Query().Get("name")
	if parentPath == "" || name == "" {
		respondJSON(w, http.StatusBadRequest,
			errorResponse{Error: "parent_path and name query parameters are required"})
		return
	}
	match, err := s.cat.LookupFile(parentPath, name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, match)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.stats.inc(opSearch)
	var req requests.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	matches, err := s.cat.Search(req.Query())
	if err != nil {
		s.respondError(w, err)
		return
	}
	if max := s.cfg.MaxSearchResults; max > 0 && len(matches) > max {
		matches = matches[:max]
	}
	if matches == nil {
		matches = []catalog.Match{}
	}
	respondJSON(w, http.StatusOK, matches)
}

func (s *Server) handleListBin(w http.ResponseWriter, r *http.Request) {
	s.stats.inc(opListBin)
	respondJSON(w, http.StatusOK, s.cat.Entries())
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	s.stats.inc(opRestore)
	id, ok := s.entryID(w, r)
	if !ok {
		return
	}
	if err := s.cat.RestoreID(id); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, okResponse)
}

func (s *Server) handlePurge(w http.ResponseWriter, r *http.Request) {
	s.stats.inc(opPurge)
	id, ok := s.entryID(w, r)
	if !ok {
		return
	}
	if err := s.cat.PurgeID(id); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, okResponse)
}

func (s *Server) handleEmptyBin(w http.ResponseWriter, r *http.Request) {
	s.stats.inc(opEmptyBin)
	dropped := s.cat.EmptyBin()
	respondJSON(w, http.StatusOK, struct {
		statusResponse
		Dropped int `json:"dropped"`
	}{okResponse, dropped})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.stats.inc(opStatsRead)
	respondJSON(w, http.StatusOK, struct {
		catalog.Stats
		Requests map[string]int64 `json:"requests"`
	}{s.cat.Stats(), s.stats.snapshot()})
}

// decode unmarshals and validates a JSON request body, writing the error
// response itself when the body is unusable.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, req interface {
	Validate() error
},
) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	if err := req.Validate(); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false
	}
	return true
}

// entryID parses the {id} path segment as a recycle bin entry ID.
func (s *Server) entryID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid recycle bin entry id"})
		return uuid.Nil, false
	}
	return id, true
}
