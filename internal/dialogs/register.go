package dialogs

import (
	"context"
	"errors"

	"github.com/llehouerou/notedeck/internal/dialog"
)

// errNoAPI fails module loading when the app has no backend client.
var errNoAPI = errors.New("no notes API configured")

// Register adds every dialog module to catalog. Modules are built on first use.
func Register(catalog *dialog.Catalog, api API, env dialog.Env) {
	modules := map[string]func() dialog.Module{
		dialog.ModuleJumpToNote:     func() dialog.Module { return &JumpToNote{api: api} },
		dialog.ModuleRecentChanges:  func() dialog.Module { return &RecentChanges{api: api} },
		dialog.ModuleAttributes:     func() dialog.Module { return &Attributes{api: api, env: env} },
		dialog.ModuleNoteInfo:       func() dialog.Module { return &NoteInfo{api: api, env: env} },
		dialog.ModuleNoteRevisions:  func() dialog.Module { return &NoteRevisions{api: api, env: env} },
		dialog.ModuleNoteSource:     func() dialog.Module { return &NoteSource{api: api, env: env} },
		dialog.ModuleLinkMap:        func() dialog.Module { return &LinkMap{api: api, env: env} },
		dialog.ModuleMarkdownImport: func() dialog.Module { return &MarkdownImport{api: api, env: env} },
		dialog.ModuleBranchPrefix:   func() dialog.Module { return &BranchPrefix{api: api} },
		dialog.ModuleCloneTo:        func() dialog.Module { return &CloneTo{api: api, env: env} },
		dialog.ModuleMoveTo:         func() dialog.Module { return &MoveTo{api: api, env: env} },
	}

	for name, build := range modules {
		catalog.Register(name, func(context.Context) (dialog.Module, error) {
			if api == nil {
				return nil, errNoAPI
			}
			return build(), nil
		})
	}
}
