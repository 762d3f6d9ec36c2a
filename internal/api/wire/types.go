// Package wire holds the JSON bodies exchanged between the API server and its client.
package wire

import (
	"github.com/llehouerou/notedeck/internal/notes"
)

// ErrorResponse is returned on errors
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthzResponse is returned by GET /healthz.
type HealthzResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ContentBody carries note content for GET/PUT /notes/{noteId}/content.
type ContentBody struct {
	Content string `json:"content"`
}

// MarkdownRequest is the body of POST /notes/{noteId}/markdown.
type MarkdownRequest struct {
	Markdown string `json:"markdown"`
}

// CreateNoteRequest is the body of POST /notes/{noteId}/children.
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Type    string `json:"type,omitempty"`
	Content string `json:"content,omitempty"`
	Prefix  string `json:"prefix,omitempty"`
}

// CreateNoteResponse is returned when a note was created.
type CreateNoteResponse struct {
	Note   notes.Note   `json:"note"`
	Branch notes.Branch `json:"branch"`
}

// AttributeRequest is the body of POST /notes/{noteId}/attributes.
type AttributeRequest struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PathResponse is returned by GET /notes/{noteId}/path.
type PathResponse struct {
	NotePath string `json:"notePath"`
}

// PrefixRequest is the body of PUT /branches/{branchId}/prefix.
type PrefixRequest struct {
	Prefix string `json:"prefix"`
}

// CloneRequest is the body of POST /notes/clone.
type CloneRequest struct {
	NoteIDs      []string `json:"noteIds"`
	ParentNoteID string   `json:"parentNoteId"`
}

// MoveRequest is the body of POST /branches/move.
type MoveRequest struct {
	BranchIDs    []string `json:"branchIds"`
	ParentNoteID string   `json:"parentNoteId"`
}

// BranchesResponse lists the branches a clone or move produced.
type BranchesResponse struct {
	Branches []notes.Branch `json:"branches"`
}

// ShortcutsRequest is the body of PUT /keyboard-shortcuts/{actionName}.
type ShortcutsRequest struct {
	Shortcuts []string `json:"shortcuts"`
}
