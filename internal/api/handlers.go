package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/llehouerou/notedeck/internal/api/wire"
	"github.com/llehouerou/notedeck/internal/keyboard/catalog"
	"github.com/llehouerou/notedeck/internal/store"
)

const maxBodyBytes = 4 << 20

// handleHealthz handles GET /healthz (no auth).
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error("database ping failed", "error", err)
		s.writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respondJSON(w, http.StatusOK, wire.HealthzResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
	})
}

// handleKeyboardActions handles GET /api/keyboard-actions.
func (s *Server) handleKeyboardActions(w http.ResponseWriter, r *http.Request) {
	actions, err := s.actions.Actions(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, actions)
}

// handleShortcutsForNotes handles GET /api/keyboard-shortcuts-for-notes.
func (s *Server) handleShortcutsForNotes(w http.ResponseWriter, r *http.Request) {
	shortcuts, err := s.store.NoteShortcuts(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shortcuts)
}

// handleSetShortcuts handles PUT /api/keyboard-shortcuts/{actionName}.
func (s *Server) handleSetShortcuts(w http.ResponseWriter, r *http.Request) {
	var req wire.ShortcutsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.actions.SetShortcuts(r.Context(), chi.URLParam(r, "actionName"), req.Shortcuts); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleResetShortcuts handles DELETE /api/keyboard-shortcuts/{actionName}.
func (s *Server) handleResetShortcuts(w http.ResponseWriter, r *http.Request) {
	if err := s.actions.ResetShortcuts(r.Context(), chi.URLParam(r, "actionName")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRecentChanges handles GET /api/recent-changes?limit=N.
func (s *Server) handleRecentChanges(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.limitParam(w, r)
	if !ok {
		return
	}
	changes, err := s.store.RecentChanges(r.Context(), limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(changes))
}

// handleSearch handles GET /api/search?q=...
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.limitParam(w, r)
	if !ok {
		return
	}
	results, err := s.store.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(results))
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.store.Note(r.Context(), chi.URLParam(r, "noteId"))
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	content, err := s.store.Content(r.Context(), chi.URLParam(r, "noteId"))
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wire.ContentBody{Content: content})
}

func (s *Server) handleSaveContent(w http.ResponseWriter, r *http.Request) {
	var req wire.ContentBody
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.store.SaveContent(r.Context(), chi.URLParam(r, "noteId"), req.Content); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAppendMarkdown handles POST /api/notes/{noteId}/markdown.
func (s *Server) handleAppendMarkdown(w http.ResponseWriter, r *http.Request) {
	var req wire.MarkdownRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.store.AppendMarkdown(r.Context(), chi.URLParam(r, "noteId"), req.Markdown); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChildren(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.Children(r.Context(), chi.URLParam(r, "noteId"))
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(items))
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req wire.CreateNoteRequest
	if !s.decode(w, r, &req) {
		return
	}
	note, branch, err := s.store.CreateNote(r.Context(), store.NewNote{
		ParentID: chi.URLParam(r, "noteId"),
		Title:    req.Title,
		Type:     req.Type,
		Content:  req.Content,
		Prefix:   req.Prefix,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, wire.CreateNoteResponse{Note: note, Branch: branch})
}

func (s *Server) handleNotePath(w http.ResponseWriter, r *http.Request) {
	path, err := s.store.NotePath(r.Context(), chi.URLParam(r, "noteId"))
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wire.PathResponse{NotePath: path})
}

func (s *Server) handleAttributes(w http.ResponseWriter, r *http.Request) {
	attrs, err := s.store.Attributes(r.Context(), chi.URLParam(r, "noteId"))
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(attrs))
}

func (s *Server) handleAddAttribute(w http.ResponseWriter, r *http.Request) {
	var req wire.AttributeRequest
	if !s.decode(w, r, &req) {
		return
	}
	attr, err := s.store.AddAttribute(r.Context(), chi.URLParam(r, "noteId"), req.Type, req.Name, req.Value)
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, attr)
}

func (s *Server) handleRevisions(w http.ResponseWriter, r *http.Request) {
	revs, err := s.store.Revisions(r.Context(), chi.URLParam(r, "noteId"))
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(revs))
}

func (s *Server) handleGetRevision(w http.ResponseWriter, r *http.Request) {
	rev, err := s.store.Revision(r.Context(), chi.URLParam(r, "revisionId"))
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rev)
}

func (s *Server) handleLinkMap(w http.ResponseWriter, r *http.Request) {
	lm, err := s.store.LinkMap(r.Context(), chi.URLParam(r, "noteId"))
	if err != nil {
		s.fail(w, err)
		return
	}
	lm.Links = nonNil(lm.Links)
	respondJSON(w, http.StatusOK, lm)
}

// handleCloneNotes handles POST /api/notes/clone.
func (s *Server) handleCloneNotes(w http.ResponseWriter, r *http.Request) {
	var req wire.CloneRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.ParentNoteID == "" {
		s.writeError(w, http.StatusBadRequest, "parentNoteId is required")
		return
	}
	branches, err := s.store.CloneNotes(r.Context(), req.NoteIDs, req.ParentNoteID)
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wire.BranchesResponse{Branches: nonNil(branches)})
}

// handleMoveBranches handles POST /api/branches/move.
func (s *Server) handleMoveBranches(w http.ResponseWriter, r *http.Request) {
	var req wire.MoveRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.ParentNoteID == "" {
		s.writeError(w, http.StatusBadRequest, "parentNoteId is required")
		return
	}
	branches, err := s.store.MoveBranches(r.Context(), req.BranchIDs, req.ParentNoteID)
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wire.BranchesResponse{Branches: nonNil(branches)})
}

func (s *Server) handleGetBranch(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.Branch(r.Context(), chi.URLParam(r, "branchId"))
	if err != nil {
		s.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// handleSetPrefix handles PUT /api/branches/{branchId}/prefix.
func (s *Server) handleSetPrefix(w http.ResponseWriter, r *http.Request) {
	var req wire.PrefixRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.store.SetBranchPrefix(r.Context(), chi.URLParam(r, "branchId"), req.Prefix); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (s *Server) limitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		s.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return 0, false
	}
	return n, true
}

// fail maps store and catalog errors to HTTP statuses.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, catalog.ErrUnknownAction):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalid):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// respondJSON is a helper to write JSON responses
func respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response
func (s *Server) writeError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, wire.ErrorResponse{Error: message})
}
