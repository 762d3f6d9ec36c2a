package app

import (
	"sync"

	"github.com/llehouerou/notedeck/internal/dialog"
)

var _ dialog.Env = (*session)(nil)

// session holds the active note path. Dialog modules read it from command
// goroutines while Update writes it.
type session struct {
	mu   sync.RWMutex
	path string
}

func (s *session) ActiveNotePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

func (s *session) setActiveNotePath(path string) {
	s.mu.Lock()
	s.path = path
	s.mu.Unlock()
}
