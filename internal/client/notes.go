package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/llehouerou/notedeck/internal/api/wire"
	"github.com/llehouerou/notedeck/internal/keyboard"
	"github.com/llehouerou/notedeck/internal/notes"
)

// KeyboardActions implements keyboard.Source.
func (c *Client) KeyboardActions(ctx context.Context) ([]keyboard.Action, error) {
	var actions []keyboard.Action
	err := c.get(ctx, c.apiURL("/keyboard-actions"), &actions)
	return actions, err
}

// ShortcutsForNotes implements keyboard.Source.
func (c *Client) ShortcutsForNotes(ctx context.Context) (map[string]string, error) {
	var shortcuts map[string]string
	err := c.get(ctx, c.apiURL("/keyboard-shortcuts-for-notes"), &shortcuts)
	return shortcuts, err
}

// SetShortcuts overrides the shortcuts of an action.
func (c *Client) SetShortcuts(ctx context.Context, actionName string, shortcuts []string) error {
	return c.do(ctx, http.MethodPut, c.apiURL("/keyboard-shortcuts/%s", actionName),
		wire.ShortcutsRequest{Shortcuts: shortcuts}, nil)
}

// Note fetches note metadata.
func (c *Client) Note(ctx context.Context, noteID string) (notes.Note, error) {
	var n notes.Note
	err := c.get(ctx, c.apiURL("/notes/%s", noteID), &n)
	return n, err
}

// Content fetches the content of a note.
func (c *Client) Content(ctx context.Context, noteID string) (string, error) {
	var body wire.ContentBody
	err := c.get(ctx, c.apiURL("/notes/%s/content", noteID), &body)
	return body.Content, err
}

// AppendMarkdown adds markdown at the end of a note.
func (c *Client) AppendMarkdown(ctx context.Context, noteID, markdown string) error {
	return c.do(ctx, http.MethodPost, c.apiURL("/notes/%s/markdown", noteID),
		wire.MarkdownRequest{Markdown: markdown}, nil)
}

// Children lists the tree items under a note.
func (c *Client) Children(ctx context.Context, noteID string) ([]notes.TreeItem, error) {
	var items []notes.TreeItem
	err := c.get(ctx, c.apiURL("/notes/%s/children", noteID), &items)
	return items, err
}

// CreateNote creates a text note under parentID.
func (c *Client) CreateNote(ctx context.Context, parentID, title string) (notes.Note, notes.Branch, error) {
	var resp wire.CreateNoteResponse
	err := c.do(ctx, http.MethodPost, c.apiURL("/notes/%s/children", parentID),
		wire.CreateNoteRequest{Title: title}, &resp)
	return resp.Note, resp.Branch, err
}

// NotePath resolves the path from the root to a note.
func (c *Client) NotePath(ctx context.Context, noteID string) (string, error) {
	var resp wire.PathResponse
	err := c.get(ctx, c.apiURL("/notes/%s/path", noteID), &resp)
	return resp.NotePath, err
}

// Attributes lists the attributes of a note.
func (c *Client) Attributes(ctx context.Context, noteID string) ([]notes.Attribute, error) {
	var attrs []notes.Attribute
	err := c.get(ctx, c.apiURL("/notes/%s/attributes", noteID), &attrs)
	return attrs, err
}

// Revisions lists the revisions of a note, newest first.
func (c *Client) Revisions(ctx context.Context, noteID string) ([]notes.Revision, error) {
	var revs []notes.Revision
	err := c.get(ctx, c.apiURL("/notes/%s/revisions", noteID), &revs)
	return revs, err
}

// Revision fetches one revision with its content.
func (c *Client) Revision(ctx context.Context, revisionID string) (notes.Revision, error) {
	var rev notes.Revision
	err := c.get(ctx, c.apiURL("/revisions/%s", revisionID), &rev)
	return rev, err
}

// LinkMap fetches the relations around a note.
func (c *Client) LinkMap(ctx context.Context, noteID string) (notes.LinkMap, error) {
	var lm notes.LinkMap
	err := c.get(ctx, c.apiURL("/notes/%s/link-map", noteID), &lm)
	return lm, err
}

// RecentChanges lists recently changed notes. limit <= 0 uses the server default.
func (c *Client) RecentChanges(ctx context.Context, limit int) ([]notes.RecentChange, error) {
	u := c.apiURL("/recent-changes")
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}
	var changes []notes.RecentChange
	err := c.get(ctx, u, &changes)
	return changes, err
}

// Search finds notes matching query.
func (c *Client) Search(ctx context.Context, query string) ([]notes.SearchResult, error) {
	var results []notes.SearchResult
	err := c.get(ctx, c.apiURL("/search")+"?q="+url.QueryEscape(query), &results)
	return results, err
}

// Branch fetches a branch.
func (c *Client) Branch(ctx context.Context, branchID string) (notes.Branch, error) {
	var b notes.Branch
	err := c.get(ctx, c.apiURL("/branches/%s", branchID), &b)
	return b, err
}

// SetBranchPrefix changes a branch prefix.
func (c *Client) SetBranchPrefix(ctx context.Context, branchID, prefix string) error {
	return c.do(ctx, http.MethodPut, c.apiURL("/branches/%s/prefix", branchID),
		wire.PrefixRequest{Prefix: prefix}, nil)
}

// CloneNotes places notes under parentID as well.
func (c *Client) CloneNotes(ctx context.Context, noteIDs []string, parentID string) ([]notes.Branch, error) {
	var resp wire.BranchesResponse
	err := c.do(ctx, http.MethodPost, c.apiURL("/notes/clone"),
		wire.CloneRequest{NoteIDs: noteIDs, ParentNoteID: parentID}, &resp)
	return resp.Branches, err
}

// MoveBranches re-parents branches under parentID.
func (c *Client) MoveBranches(ctx context.Context, branchIDs []string, parentID string) ([]notes.Branch, error) {
	var resp wire.BranchesResponse
	err := c.do(ctx, http.MethodPost, c.apiURL("/branches/move"),
		wire.MoveRequest{BranchIDs: branchIDs, ParentNoteID: parentID}, &resp)
	return resp.Branches, err
}
