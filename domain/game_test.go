package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"match-lab/errors"
)

func TestGame_AddPlayer(t *testing.T) {
	t.Run("should add up to two distinct players", func(t *testing.T) {
		req := require.New(t)
		game := NewGame()

		added, err := game.AddPlayer(uuid.New())
		req.NoError(err)
		req.True(added)

		added, err = game.AddPlayer(uuid.New())
		req.NoError(err)
		req.True(added)
		req.Len(game.Players, 2)
	})

	t.Run("should reject a third distinct player", func(t *testing.T) {
		req := require.New(t)
		game := NewGame()
		_, _ = game.AddPlayer(uuid.New())
		_, _ = game.AddPlayer(uuid.New())

		added, err := game.AddPlayer(uuid.New())
		req.ErrorIs(err, errors.ErrPlayerCountExceeded)
		req.False(added)
		req.Len(game.Players, 2)
	})

	t.Run("should be a no-op for an existing player even when full", func(t *testing.T) {
		req := require.New(t)
		game := NewGame()
		first := uuid.New()
		_, _ = game.AddPlayer(first)
		_, _ = game.AddPlayer(uuid.New())

		added, err := game.AddPlayer(first)
		req.NoError(err)
		req.False(added)
		req.Len(game.Players, 2)
	})
}

func TestGame_RemovePlayer(t *testing.T) {
	req := require.New(t)
	game := NewGame()
	player := uuid.New()
	_, _ = game.AddPlayer(player)

	game.RemovePlayer(player)
	req.False(game.IsPlayer(player))

	// removing again must not blow up
	game.RemovePlayer(player)
	req.Empty(game.Players)
}

func TestRoom_Membership(t *testing.T) {
	req := require.New(t)
	room := NewRoom()
	userID := uuid.New()

	req.False(room.IsMember(userID))
	room.AddMember(userID)
	req.True(room.IsMember(userID))

	room.RemoveMember(userID)
	req.False(room.IsMember(userID))
}

func TestRoom_SetActiveGameID_Overwrites(t *testing.T) {
	req := require.New(t)
	room := NewRoom()
	first := uuid.New()
	second := uuid.New()

	room.SetActiveGameID(first)
	room.SetActiveGameID(second)
	req.Equal(second, *room.ActiveGameID)
}
