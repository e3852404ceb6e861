package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"match-lab/domain"
	"match-lab/errors"
	"match-lab/repositories"
)

type fixture struct {
	users *repositories.MemoryUserRepository
	rooms *repositories.MemoryRoomRepository
	games *repositories.MemoryGameRepository
	mgr   *RoomManager
}

func newFixture() *fixture {
	users := repositories.NewMemoryUserRepository()
	rooms := repositories.NewMemoryRoomRepository()
	games := repositories.NewMemoryGameRepository()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	gm := NewGameManager(games, domain.NewGamePlay())
	return &fixture{
		users: users,
		rooms: rooms,
		games: games,
		mgr:   NewRoomManager(users, rooms, gm, log),
	}
}

func (f *fixture) addUser(t *testing.T, name string) domain.User {
	t.Helper()
	user := domain.NewUser(name)
	require.NoError(t, f.users.Store(context.Background(), user))
	return user
}

func (f *fixture) addRoom(t *testing.T) domain.Room {
	t.Helper()
	room := domain.NewRoom()
	require.NoError(t, f.rooms.Store(context.Background(), room))
	return room
}

func (f *fixture) roomState(t *testing.T, roomID uuid.UUID) domain.Room {
	t.Helper()
	room, err := f.rooms.Get(context.Background(), roomID)
	require.NoError(t, err)
	return room
}

func (f *fixture) activeGame(t *testing.T, roomID uuid.UUID) domain.Game {
	t.Helper()
	room := f.roomState(t, roomID)
	require.NotNil(t, room.ActiveGameID)
	game, err := f.games.Get(context.Background(), *room.ActiveGameID)
	require.NoError(t, err)
	return game
}

func TestRoomManagerJoinRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("adds the user to the room", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		user := f.addUser(t, "alice")
		room := f.addRoom(t)

		req.NoError(f.mgr.JoinRoom(ctx, user.ID, room.ID))
		joined := f.roomState(t, room.ID)
		req.True(joined.IsMember(user.ID))
	})

	t.Run("unknown user is rejected before the room lookup", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()

		err := f.mgr.JoinRoom(ctx, uuid.New(), uuid.New())

		var notFound errors.UserNotFoundError
		req.ErrorAs(err, &notFound)
	})

	t.Run("unknown room", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		user := f.addUser(t, "alice")

		err := f.mgr.JoinRoom(ctx, user.ID, uuid.New())

		var notFound errors.RoomNotFoundError
		req.ErrorAs(err, &notFound)
	})

	t.Run("user already in another room", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		user := f.addUser(t, "alice")
		first := f.addRoom(t)
		second := f.addRoom(t)

		req.NoError(f.mgr.JoinRoom(ctx, user.ID, first.ID))
		err := f.mgr.JoinRoom(ctx, user.ID, second.ID)

		req.ErrorIs(err, errors.ErrAlreadyAssigned)
		secondState := f.roomState(t, second.ID)
		req.False(secondState.IsMember(user.ID))
	})

	t.Run("rejoining the same room is rejected as well", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		user := f.addUser(t, "alice")
		room := f.addRoom(t)

		req.NoError(f.mgr.JoinRoom(ctx, user.ID, room.ID))
		req.ErrorIs(f.mgr.JoinRoom(ctx, user.ID, room.ID), errors.ErrAlreadyAssigned)
	})
}

func TestRoomManagerLeaveRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the member", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		user := f.addUser(t, "alice")
		room := f.addRoom(t)
		req.NoError(f.mgr.JoinRoom(ctx, user.ID, room.ID))

		req.NoError(f.mgr.LeaveRoom(ctx, user.ID))
		left := f.roomState(t, room.ID)
		req.False(left.IsMember(user.ID))
	})

	t.Run("leaving while in no room succeeds, repeatedly", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		user := f.addUser(t, "alice")

		req.NoError(f.mgr.LeaveRoom(ctx, user.ID))
		req.NoError(f.mgr.LeaveRoom(ctx, user.ID))
	})

	t.Run("unknown user", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()

		var notFound errors.UserNotFoundError
		req.ErrorAs(f.mgr.LeaveRoom(ctx, uuid.New()), &notFound)
	})

	t.Run("also removes the user from the active game", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		user := f.addUser(t, "alice")
		room := f.addRoom(t)
		req.NoError(f.mgr.JoinRoom(ctx, user.ID, room.ID))
		req.NoError(f.mgr.StartNewGame(ctx, room.ID, user.ID))
		added, err := f.mgr.AddPlayer(ctx, room.ID, user.ID)
		req.NoError(err)
		req.True(added)
		gameID := *f.roomState(t, room.ID).ActiveGameID

		req.NoError(f.mgr.LeaveRoom(ctx, user.ID))

		game, err := f.games.Get(ctx, gameID)
		req.NoError(err)
		req.False(game.IsPlayer(user.ID))
	})
}

func TestRoomManagerStartNewGame(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a game and records it on the room", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		user := f.addUser(t, "alice")
		room := f.addRoom(t)
		req.NoError(f.mgr.JoinRoom(ctx, user.ID, room.ID))

		req.NoError(f.mgr.StartNewGame(ctx, room.ID, user.ID))

		game := f.activeGame(t, room.ID)
		req.Empty(game.Players)
		req.Empty(game.Moves)
	})

	t.Run("non-member may not start a game", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		user := f.addUser(t, "alice")
		room := f.addRoom(t)

		err := f.mgr.StartNewGame(ctx, room.ID, user.ID)

		var notInRoom errors.UserNotInRoomError
		req.ErrorAs(err, &notInRoom)
		req.Nil(f.roomState(t, room.ID).ActiveGameID)
	})

	t.Run("starting again replaces the active game", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		user := f.addUser(t, "alice")
		room := f.addRoom(t)
		req.NoError(f.mgr.JoinRoom(ctx, user.ID, room.ID))

		req.NoError(f.mgr.StartNewGame(ctx, room.ID, user.ID))
		first := *f.roomState(t, room.ID).ActiveGameID
		req.NoError(f.mgr.StartNewGame(ctx, room.ID, user.ID))
		second := *f.roomState(t, room.ID).ActiveGameID

		req.NotEqual(first, second)
	})
}

func TestRoomManagerAddPlayer(t *testing.T) {
	ctx := context.Background()

	join := func(t *testing.T, f *fixture, name string, roomID uuid.UUID) domain.User {
		t.Helper()
		user := f.addUser(t, name)
		require.NoError(t, f.mgr.JoinRoom(ctx, user.ID, roomID))
		return user
	}

	t.Run("member becomes a player of the active game", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		room := f.addRoom(t)
		user := join(t, f, "alice", room.ID)
		req.NoError(f.mgr.StartNewGame(ctx, room.ID, user.ID))

		added, err := f.mgr.AddPlayer(ctx, room.ID, user.ID)

		req.NoError(err)
		req.True(added)
		game := f.activeGame(t, room.ID)
		req.True(game.IsPlayer(user.ID))
	})

	t.Run("adding the same player again is a no-op", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		room := f.addRoom(t)
		user := join(t, f, "alice", room.ID)
		req.NoError(f.mgr.StartNewGame(ctx, room.ID, user.ID))

		added, err := f.mgr.AddPlayer(ctx, room.ID, user.ID)
		req.NoError(err)
		req.True(added)

		added, err = f.mgr.AddPlayer(ctx, room.ID, user.ID)
		req.NoError(err)
		req.False(added)
	})

	t.Run("third player exceeds the limit", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		room := f.addRoom(t)
		alice := join(t, f, "alice", room.ID)
		bob := join(t, f, "bob", room.ID)
		carol := join(t, f, "carol", room.ID)
		req.NoError(f.mgr.StartNewGame(ctx, room.ID, alice.ID))

		for _, u := range []domain.User{alice, bob} {
			added, err := f.mgr.AddPlayer(ctx, room.ID, u.ID)
			req.NoError(err)
			req.True(added)
		}

		_, err := f.mgr.AddPlayer(ctx, room.ID, carol.ID)
		req.ErrorIs(err, errors.ErrPlayerCountExceeded)
	})

	t.Run("non-member is rejected", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		room := f.addRoom(t)
		member := join(t, f, "alice", room.ID)
		req.NoError(f.mgr.StartNewGame(ctx, room.ID, member.ID))
		outsider := f.addUser(t, "mallory")

		_, err := f.mgr.AddPlayer(ctx, room.ID, outsider.ID)

		var notInRoom errors.UserNotInRoomError
		req.ErrorAs(err, &notInRoom)
	})

	t.Run("no active game in the room", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		room := f.addRoom(t)
		user := join(t, f, "alice", room.ID)

		_, err := f.mgr.AddPlayer(ctx, room.ID, user.ID)

		var noGame errors.NoActiveGameInRoomError
		req.ErrorAs(err, &noGame)
	})
}

func TestRoomManagerMakeGameMove(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, domain.Room, domain.User) {
		t.Helper()
		req := require.New(t)
		f := newFixture()
		room := f.addRoom(t)
		user := f.addUser(t, "alice")
		req.NoError(f.mgr.JoinRoom(ctx, user.ID, room.ID))
		req.NoError(f.mgr.StartNewGame(ctx, room.ID, user.ID))
		added, err := f.mgr.AddPlayer(ctx, room.ID, user.ID)
		req.NoError(err)
		req.True(added)
		return f, room, user
	}

	t.Run("valid move is appended", func(t *testing.T) {
		req := require.New(t)
		f, room, user := setup(t)
		move := domain.GameMove{UserID: user.ID, Position: domain.Position{X: 1, Y: 2}}

		req.NoError(f.mgr.MakeGameMove(ctx, room.ID, move))

		game := f.activeGame(t, room.ID)
		req.Len(game.Moves, 1)
		req.Equal(move, game.Moves[0])
	})

	t.Run("same player may move twice in a row", func(t *testing.T) {
		req := require.New(t)
		f, room, user := setup(t)

		req.NoError(f.mgr.MakeGameMove(ctx, room.ID, domain.GameMove{UserID: user.ID, Position: domain.Position{X: 0, Y: 0}}))
		req.NoError(f.mgr.MakeGameMove(ctx, room.ID, domain.GameMove{UserID: user.ID, Position: domain.Position{X: 1, Y: 1}}))

		req.Len(f.activeGame(t, room.ID).Moves, 2)
	})

	t.Run("occupied position", func(t *testing.T) {
		req := require.New(t)
		f, room, user := setup(t)
		pos := domain.Position{X: 2, Y: 2}

		req.NoError(f.mgr.MakeGameMove(ctx, room.ID, domain.GameMove{UserID: user.ID, Position: pos}))
		err := f.mgr.MakeGameMove(ctx, room.ID, domain.GameMove{UserID: user.ID, Position: pos})

		req.ErrorIs(err, errors.ErrPositionOccupied)
		req.Len(f.activeGame(t, room.ID).Moves, 1)
	})

	t.Run("position out of bounds", func(t *testing.T) {
		req := require.New(t)
		f, room, user := setup(t)

		err := f.mgr.MakeGameMove(ctx, room.ID, domain.GameMove{UserID: user.ID, Position: domain.Position{X: 3, Y: 0}})

		req.ErrorIs(err, errors.ErrPositionOutOfBounds)
		req.Empty(f.activeGame(t, room.ID).Moves)
	})

	t.Run("member that never became a player", func(t *testing.T) {
		req := require.New(t)
		f, room, _ := setup(t)
		spectator := f.addUser(t, "bob")
		req.NoError(f.mgr.JoinRoom(ctx, spectator.ID, room.ID))

		err := f.mgr.MakeGameMove(ctx, room.ID, domain.GameMove{UserID: spectator.ID, Position: domain.Position{X: 0, Y: 1}})

		var notPlayer errors.UserNotAPlayerInGameError
		req.ErrorAs(err, &notPlayer)
	})

	t.Run("player that left the room can no longer move", func(t *testing.T) {
		req := require.New(t)
		f, room, user := setup(t)
		req.NoError(f.mgr.LeaveRoom(ctx, user.ID))

		err := f.mgr.MakeGameMove(ctx, room.ID, domain.GameMove{UserID: user.ID, Position: domain.Position{X: 0, Y: 0}})

		var notInRoom errors.UserNotInRoomError
		req.ErrorAs(err, &notInRoom)
	})

	t.Run("no active game", func(t *testing.T) {
		req := require.New(t)
		f := newFixture()
		room := f.addRoom(t)
		user := f.addUser(t, "alice")
		req.NoError(f.mgr.JoinRoom(ctx, user.ID, room.ID))

		err := f.mgr.MakeGameMove(ctx, room.ID, domain.GameMove{UserID: user.ID, Position: domain.Position{X: 0, Y: 0}})

		var noGame errors.NoActiveGameInRoomError
		req.ErrorAs(err, &noGame)
	})
}
