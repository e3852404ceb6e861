// Package services composes the repositories and the rule engine into the
// use cases of the system. The RoomManager is the only component allowed to
// sequence reads and writes across aggregates; each repository stays the
// sole writer of its own storage.
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"match-lab/domain"
	"match-lab/errors"
	"match-lab/repositories"
)

type IGameManager interface {
	StartNewGame(ctx context.Context) (domain.Game, error)
	AddPlayer(ctx context.Context, gameID, userID uuid.UUID) (bool, error)
	RemovePlayer(ctx context.Context, userID, gameID uuid.UUID) error
	MakeGameMove(ctx context.Context, userID, gameID uuid.UUID, move domain.GameMove) error
}

type GameManager struct {
	games repositories.IGameRepository
	rules domain.GamePlay
}

func NewGameManager(games repositories.IGameRepository, rules domain.GamePlay) *GameManager {
	return &GameManager{games: games, rules: rules}
}

// StartNewGame allocates an empty game and persists it. Ids are generated,
// so a store failure is an unexpected fault rather than a typed rejection.
func (m *GameManager) StartNewGame(ctx context.Context) (domain.Game, error) {
	game := domain.NewGame()
	if err := m.games.Store(ctx, game); err != nil {
		return domain.Game{}, fmt.Errorf("persist new game: %w", err)
	}
	return game, nil
}

// AddPlayer reports (false, nil) when the user already is a player.
func (m *GameManager) AddPlayer(ctx context.Context, gameID, userID uuid.UUID) (bool, error) {
	game, err := m.games.Get(ctx, gameID)
	if err != nil {
		return false, err
	}
	added, err := game.AddPlayer(userID)
	if err != nil {
		return false, err
	}
	if !added {
		return false, nil
	}
	if err := m.games.Update(ctx, game); err != nil {
		return false, err
	}
	return true, nil
}

func (m *GameManager) RemovePlayer(ctx context.Context, userID, gameID uuid.UUID) error {
	game, err := m.games.Get(ctx, gameID)
	if err != nil {
		return err
	}
	game.RemovePlayer(userID)
	return m.games.Update(ctx, game)
}

// MakeGameMove validates the move through the rule engine and appends it on
// success. Rule violations propagate untouched.
func (m *GameManager) MakeGameMove(ctx context.Context, userID, gameID uuid.UUID, move domain.GameMove) error {
	game, err := m.games.Get(ctx, gameID)
	if err != nil {
		return err
	}
	if !game.IsPlayer(userID) {
		return errors.UserNotAPlayerInGameError{UserID: userID}
	}
	if err := m.rules.ApplyMove(game, move); err != nil {
		return err
	}
	game.AppendMove(move)
	return m.games.Update(ctx, game)
}
