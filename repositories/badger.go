package repositories

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"match-lab/domain"
	"match-lab/errors"
)

// Badger-backed repositories. Records are JSON documents under typed key
// prefixes so the store stays inspectable with a plain key dump. They are
// drop-in replacements for the memory backends behind the same interfaces.

const (
	userKeyPrefix = "user:"
	roomKeyPrefix = "room:"
	gameKeyPrefix = "game:"
)

type userRecord struct {
	Name string `json:"name"`
}

type roomRecord struct {
	ActiveGameID *uuid.UUID  `json:"active_game_id,omitempty"`
	Members      []uuid.UUID `json:"members"`
}

type moveRecord struct {
	UserID uuid.UUID `json:"user_id"`
	X      uint8     `json:"x"`
	Y      uint8     `json:"y"`
}

type gameRecord struct {
	Players []uuid.UUID  `json:"players"`
	Moves   []moveRecord `json:"moves"`
}

func storeNew(db *badger.DB, key []byte, record any, exists error) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return exists
		}
		return txn.Set(key, data)
	})
}

func updateExisting(db *badger.DB, key []byte, record any, notFound error) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			return notFound
		}
		return txn.Set(key, data)
	})
}

func getRecord(db *badger.DB, key []byte, record any, notFound error) error {
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, record)
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return notFound
	}
	return err
}

type BadgerUserRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewBadgerUserRepository(db *badger.DB, log *slog.Logger) *BadgerUserRepository {
	return &BadgerUserRepository{db: db, log: log}
}

func (r *BadgerUserRepository) Get(_ context.Context, id uuid.UUID) (domain.User, error) {
	var record userRecord
	notFound := errors.UserNotFoundError{UserID: id}
	if err := getRecord(r.db, []byte(userKeyPrefix+id.String()), &record, notFound); err != nil {
		return domain.User{}, err
	}
	return domain.User{ID: id, Name: record.Name}, nil
}

func (r *BadgerUserRepository) Store(_ context.Context, user domain.User) error {
	exists := errors.AlreadyExistsError{Entity: "User", ID: user.ID}
	return storeNew(r.db, []byte(userKeyPrefix+user.ID.String()), userRecord{Name: user.Name}, exists)
}

func (r *BadgerUserRepository) Update(_ context.Context, user domain.User) error {
	notFound := errors.UserNotFoundError{UserID: user.ID}
	return updateExisting(r.db, []byte(userKeyPrefix+user.ID.String()), userRecord{Name: user.Name}, notFound)
}

type BadgerRoomRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewBadgerRoomRepository(db *badger.DB, log *slog.Logger) *BadgerRoomRepository {
	return &BadgerRoomRepository{db: db, log: log}
}

func toRoomRecord(room domain.Room) roomRecord {
	record := roomRecord{Members: lo.Keys(room.Members)}
	if room.ActiveGameID != nil {
		record.ActiveGameID = lo.ToPtr(*room.ActiveGameID)
	}
	return record
}

func (record roomRecord) toRoom(id uuid.UUID) domain.Room {
	room := domain.Room{ID: id, ActiveGameID: record.ActiveGameID, Members: map[uuid.UUID]struct{}{}}
	for _, member := range record.Members {
		room.Members[member] = struct{}{}
	}
	return room
}

func (r *BadgerRoomRepository) Get(_ context.Context, id uuid.UUID) (domain.Room, error) {
	var record roomRecord
	notFound := errors.RoomNotFoundError{RoomID: id}
	if err := getRecord(r.db, []byte(roomKeyPrefix+id.String()), &record, notFound); err != nil {
		return domain.Room{}, err
	}
	return record.toRoom(id), nil
}

func (r *BadgerRoomRepository) Store(_ context.Context, room domain.Room) error {
	exists := errors.AlreadyExistsError{Entity: "Room", ID: room.ID}
	return storeNew(r.db, []byte(roomKeyPrefix+room.ID.String()), toRoomRecord(room), exists)
}

func (r *BadgerRoomRepository) Update(_ context.Context, room domain.Room) error {
	notFound := errors.RoomNotFoundError{RoomID: room.ID}
	return updateExisting(r.db, []byte(roomKeyPrefix+room.ID.String()), toRoomRecord(room), notFound)
}

// HaveMember scans the room prefix. Room counts stay small in this system,
// so a full prefix scan beats maintaining a reverse index.
func (r *BadgerRoomRepository) HaveMember(_ context.Context, userID uuid.UUID) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(roomKeyPrefix)
		options := badger.DefaultIteratorOptions
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			id, err := uuid.Parse(string(item.Key()[len(prefix):]))
			if err != nil {
				r.log.Warn("Skipping room entry with malformed key", "key", string(item.Key()))
				continue
			}
			var record roomRecord
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			}); err != nil {
				return err
			}
			if lo.Contains(record.Members, userID) {
				rooms = append(rooms, record.toRoom(id))
			}
		}
		return nil
	})
	return rooms, err
}

type BadgerGameRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewBadgerGameRepository(db *badger.DB, log *slog.Logger) *BadgerGameRepository {
	return &BadgerGameRepository{db: db, log: log}
}

func toGameRecord(game domain.Game) gameRecord {
	return gameRecord{
		Players: lo.Keys(game.Players),
		Moves: lo.Map(game.Moves, func(move domain.GameMove, _ int) moveRecord {
			return moveRecord{UserID: move.UserID, X: move.Position.X, Y: move.Position.Y}
		}),
	}
}

func (record gameRecord) toGame(id uuid.UUID) domain.Game {
	game := domain.Game{
		ID:      id,
		Players: map[uuid.UUID]struct{}{},
		Moves: lo.Map(record.Moves, func(move moveRecord, _ int) domain.GameMove {
			return domain.GameMove{UserID: move.UserID, Position: domain.Position{X: move.X, Y: move.Y}}
		}),
	}
	for _, player := range record.Players {
		game.Players[player] = struct{}{}
	}
	return game
}

func (r *BadgerGameRepository) Get(_ context.Context, id uuid.UUID) (domain.Game, error) {
	var record gameRecord
	notFound := errors.GameNotFoundError{GameID: id}
	if err := getRecord(r.db, []byte(gameKeyPrefix+id.String()), &record, notFound); err != nil {
		return domain.Game{}, err
	}
	return record.toGame(id), nil
}

func (r *BadgerGameRepository) Store(_ context.Context, game domain.Game) error {
	exists := errors.AlreadyExistsError{Entity: "Game", ID: game.ID}
	return storeNew(r.db, []byte(gameKeyPrefix+game.ID.String()), toGameRecord(game), exists)
}

func (r *BadgerGameRepository) Update(_ context.Context, game domain.Game) error {
	notFound := errors.GameNotFoundError{GameID: game.ID}
	return updateExisting(r.db, []byte(gameKeyPrefix+game.ID.String()), toGameRecord(game), notFound)
}
