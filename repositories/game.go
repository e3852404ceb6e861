package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"match-lab/domain"
	"match-lab/errors"
)

type IGameRepository interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Game, error)
	Store(ctx context.Context, game domain.Game) error
	Update(ctx context.Context, game domain.Game) error
}

type MemoryGameRepository struct {
	mu    sync.RWMutex
	games map[uuid.UUID]storedGame
}

type storedGame struct {
	players map[uuid.UUID]struct{}
	moves   []domain.GameMove
}

func NewMemoryGameRepository() *MemoryGameRepository {
	return &MemoryGameRepository{games: map[uuid.UUID]storedGame{}}
}

func toStoredGame(game domain.Game) storedGame {
	stored := storedGame{
		players: map[uuid.UUID]struct{}{},
		moves:   make([]domain.GameMove, len(game.Moves)),
	}
	for player := range game.Players {
		stored.players[player] = struct{}{}
	}
	copy(stored.moves, game.Moves)
	return stored
}

func (s storedGame) toGame(id uuid.UUID) domain.Game {
	game := domain.Game{
		ID:      id,
		Players: map[uuid.UUID]struct{}{},
		Moves:   make([]domain.GameMove, len(s.moves)),
	}
	for player := range s.players {
		game.Players[player] = struct{}{}
	}
	copy(game.Moves, s.moves)
	return game
}

func (r *MemoryGameRepository) Get(_ context.Context, id uuid.UUID) (domain.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.games[id]
	if !ok {
		return domain.Game{}, errors.GameNotFoundError{GameID: id}
	}
	return stored.toGame(id), nil
}

func (r *MemoryGameRepository) Store(_ context.Context, game domain.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[game.ID]; ok {
		return errors.AlreadyExistsError{Entity: "Game", ID: game.ID}
	}
	r.games[game.ID] = toStoredGame(game)
	return nil
}

func (r *MemoryGameRepository) Update(_ context.Context, game domain.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[game.ID]; !ok {
		return errors.GameNotFoundError{GameID: game.ID}
	}
	r.games[game.ID] = toStoredGame(game)
	return nil
}
