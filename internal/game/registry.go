package game

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
)

// Registry holds live games keyed by ID.
type Registry struct {
	mu       sync.RWMutex
	games    map[string]*Game
	maxGames int
	strict   bool
}

// NewRegistry creates a registry holding at most maxGames games. strict is
// passed to every game it creates.
func NewRegistry(maxGames int, strict bool) *Registry {
	return &Registry{
		games:    make(map[string]*Game),
		maxGames: maxGames,
		strict:   strict,
	}
}

// Create starts a game from board, or from the initial position when board
// is nil, and registers it under a fresh UUID.
func (r *Registry) Create(board *chess.Board) (*Game, error) {
	g, err := New(uuid.New().String(), board, r.strict)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.games) >= r.maxGames {
		return nil, fmt.Errorf("limit %d reached: %w", r.maxGames, errors.ErrTooManyGames)
	}
	r.games[g.ID] = g
	return g, nil
}

// Get returns the game with the given ID.
func (r *Registry) Get(id string) (*Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, errors.ErrGameNotFound)
	}
	return g, nil
}

// Delete removes the game with the given ID.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[id]; !ok {
		return fmt.Errorf("%s: %w", id, errors.ErrGameNotFound)
	}
	delete(r.games, id)
	return nil
}

// Len returns the number of live games.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

// IDs returns the IDs of all live games in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.games))
	for id := range r.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
