// Package api is the HTTP backend the terminal client talks to.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/llehouerou/notedeck/internal/keyboard/catalog"
	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/store"
)

// NoteStore is the persistence the handlers need.
type NoteStore interface {
	Ping(ctx context.Context) error

	Note(ctx context.Context, id string) (notes.Note, error)
	CreateNote(ctx context.Context, n store.NewNote) (notes.Note, notes.Branch, error)
	Content(ctx context.Context, id string) (string, error)
	SaveContent(ctx context.Context, id, content string) error
	AppendMarkdown(ctx context.Context, id, markdown string) error
	Children(ctx context.Context, parentID string) ([]notes.TreeItem, error)
	NotePath(ctx context.Context, noteID string) (string, error)
	RecentChanges(ctx context.Context, limit int) ([]notes.RecentChange, error)
	Search(ctx context.Context, query string, limit int) ([]notes.SearchResult, error)

	Branch(ctx context.Context, id string) (notes.Branch, error)
	SetBranchPrefix(ctx context.Context, branchID, prefix string) error
	CloneNotes(ctx context.Context, noteIDs []string, parentID string) ([]notes.Branch, error)
	MoveBranches(ctx context.Context, branchIDs []string, parentID string) ([]notes.Branch, error)

	AddAttribute(ctx context.Context, noteID, typ, name, value string) (notes.Attribute, error)
	Attributes(ctx context.Context, noteID string) ([]notes.Attribute, error)
	LinkMap(ctx context.Context, noteID string) (notes.LinkMap, error)
	NoteShortcuts(ctx context.Context) (map[string]string, error)

	Revisions(ctx context.Context, noteID string) ([]notes.Revision, error)
	Revision(ctx context.Context, id string) (notes.Revision, error)
}

// ActionCatalog serves keyboard actions and their overrides.
type ActionCatalog interface {
	Actions(ctx context.Context) ([]catalog.Entry, error)
	SetShortcuts(ctx context.Context, name string, shortcuts []string) error
	ResetShortcuts(ctx context.Context, name string) error
}

// Config holds API server configuration
type Config struct {
	Listen string
	// APIKey protects /api when set.
	APIKey string
}

// Server represents the HTTP API server
type Server struct {
	config    Config
	store     NoteStore
	actions   ActionCatalog
	logger    *slog.Logger
	server    *http.Server
	startedAt time.Time
}

// New creates a new API server instance
func New(config Config, st NoteStore, actions ActionCatalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		config:    config,
		store:     st,
		actions:   actions,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// Start starts the HTTP server (blocking)
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.config.Listen,
		Handler:      s.setupRoutes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("API server starting", "listen", s.config.Listen)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("API server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// setupRoutes configures the HTTP router
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/keyboard-actions", s.handleKeyboardActions)
		r.Get("/keyboard-shortcuts-for-notes", s.handleShortcutsForNotes)
		r.Put("/keyboard-shortcuts/{actionName}", s.handleSetShortcuts)
		r.Delete("/keyboard-shortcuts/{actionName}", s.handleResetShortcuts)

		r.Get("/recent-changes", s.handleRecentChanges)
		r.Get("/search", s.handleSearch)

		r.Post("/notes/clone", s.handleCloneNotes)
		r.Route("/notes/{noteId}", func(r chi.Router) {
			r.Get("/", s.handleGetNote)
			r.Get("/content", s.handleGetContent)
			r.Put("/content", s.handleSaveContent)
			r.Post("/markdown", s.handleAppendMarkdown)
			r.Get("/children", s.handleChildren)
			r.Post("/children", s.handleCreateNote)
			r.Get("/path", s.handleNotePath)
			r.Get("/attributes", s.handleAttributes)
			r.Post("/attributes", s.handleAddAttribute)
			r.Get("/revisions", s.handleRevisions)
			r.Get("/link-map", s.handleLinkMap)
		})
		r.Get("/revisions/{revisionId}", s.handleGetRevision)

		r.Post("/branches/move", s.handleMoveBranches)
		r.Get("/branches/{branchId}", s.handleGetBranch)
		r.Put("/branches/{branchId}/prefix", s.handleSetPrefix)
	})

	return r
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
