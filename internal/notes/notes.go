// Package notes defines the note hierarchy types shared by the server store,
// the HTTP API and the terminal client.
package notes

import (
	"strings"
	"time"
)

// RootID is the id of the note every tree starts from.
const RootID = "root"

// Note types.
const (
	TypeText = "text"
	TypeCode = "code"
)

// Attribute types.
const (
	AttrLabel    = "label"
	AttrRelation = "relation"
)

// ShortcutLabel is the label name that binds a keyboard shortcut to its note.
const ShortcutLabel = "keyboardShortcut"

// Note is a single note with its metadata.
type Note struct {
	ID          string    `json:"noteId"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	ContentHash string    `json:"contentHash,omitempty"`
	ContentSize int       `json:"contentSize"`
	Created     time.Time `json:"dateCreated"`
	Modified    time.Time `json:"dateModified"`
}

// Branch places a note under a parent. A note may have several branches (clones).
type Branch struct {
	ID       string `json:"branchId"`
	NoteID   string `json:"noteId"`
	ParentID string `json:"parentNoteId"`
	Prefix   string `json:"prefix,omitempty"`
	Position int    `json:"notePosition"`
}

// BranchID returns the id of the branch placing noteID under parentID.
func BranchID(parentID, noteID string) string {
	return parentID + "_" + noteID
}

// TreeItem is a child entry of the note tree.
type TreeItem struct {
	Branch
	Title       string `json:"title"`
	HasChildren bool   `json:"hasChildren"`
}

// DisplayTitle returns the title with the branch prefix applied.
func (t TreeItem) DisplayTitle() string {
	if t.Prefix == "" {
		return t.Title
	}
	return t.Prefix + " - " + t.Title
}

// Attribute is a label or relation owned by a note.
type Attribute struct {
	ID       string `json:"attributeId"`
	NoteID   string `json:"noteId"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Value    string `json:"value"`
	Position int    `json:"position"`
}

// Revision is a saved snapshot of a note's content.
type Revision struct {
	ID          string    `json:"revisionId"`
	NoteID      string    `json:"noteId"`
	Title       string    `json:"title"`
	Content     string    `json:"content,omitempty"`
	ContentHash string    `json:"contentHash"`
	Created     time.Time `json:"dateCreated"`
}

// Change kinds reported by recent changes.
const (
	ChangeCreated  = "created"
	ChangeModified = "modified"
)

// RecentChange is one entry in the recent changes feed.
type RecentChange struct {
	NoteID string    `json:"noteId"`
	Title  string    `json:"title"`
	Kind   string    `json:"kind"`
	Date   time.Time `json:"date"`
}

// SearchResult is a note matched by a search query.
type SearchResult struct {
	NoteID string `json:"noteId"`
	Title  string `json:"title"`
	Path   string `json:"notePath"`
	// PathTitle is the human readable path ("Work / Projects").
	PathTitle string `json:"notePathTitle"`
}

// Link is a relation from one note to another.
type Link struct {
	Name   string `json:"name"`
	Source string `json:"sourceNoteId"`
	Target string `json:"targetNoteId"`
}

// LinkMap is the relation graph around a note.
type LinkMap struct {
	NoteID string            `json:"noteId"`
	Titles map[string]string `json:"noteTitles"`
	Links  []Link            `json:"links"`
}

// PathSeparator separates note ids in a note path.
const PathSeparator = "/"

// SplitPath splits a note path into note ids, dropping empty segments.
func SplitPath(path string) []string {
	parts := strings.Split(path, PathSeparator)
	ids := parts[:0]
	for _, p := range parts {
		if p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

// JoinPath builds a note path from note ids.
func JoinPath(ids ...string) string {
	return strings.Join(ids, PathSeparator)
}

// NoteIDFromPath returns the last note id of a path ("" for an empty path).
func NoteIDFromPath(path string) string {
	ids := SplitPath(path)
	if len(ids) == 0 {
		return ""
	}
	return ids[len(ids)-1]
}

// BranchIDFromPath returns the id of the branch the path ends on.
// A path naming only the root has no branch.
func BranchIDFromPath(path string) string {
	ids := SplitPath(path)
	if len(ids) < 2 {
		return ""
	}
	return BranchID(ids[len(ids)-2], ids[len(ids)-1])
}
