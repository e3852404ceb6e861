package domain

import "github.com/google/uuid"

// Room is a lobby grouping users. At most two of its members may become
// players of the room's active game. The "one room per user" rule is not
// enforced here; the RoomManager checks it across rooms before joining.
type Room struct {
	ID           uuid.UUID
	ActiveGameID *uuid.UUID
	Members      map[uuid.UUID]struct{}
}

func NewRoom() Room {
	return Room{ID: uuid.New(), Members: map[uuid.UUID]struct{}{}}
}

func (r *Room) AddMember(userID uuid.UUID) {
	r.Members[userID] = struct{}{}
}

func (r *Room) RemoveMember(userID uuid.UUID) {
	delete(r.Members, userID)
}

func (r *Room) IsMember(userID uuid.UUID) bool {
	_, ok := r.Members[userID]
	return ok
}

// SetActiveGameID points the room at a freshly created game. An earlier
// pointer is overwritten; there is no explicit clear operation.
func (r *Room) SetActiveGameID(gameID uuid.UUID) {
	r.ActiveGameID = &gameID
}
