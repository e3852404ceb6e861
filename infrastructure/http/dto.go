package http

// MoveRequest carries a board position. Both coordinates are required;
// pointer fields distinguish an absent field from a zero coordinate.
type MoveRequest struct {
	X *uint8 `json:"x"`
	Y *uint8 `json:"y"`
}

type RegisterUserResponse struct {
	ID string `json:"id"`
}

type GetUserResponse struct {
	Name string `json:"name"`
}

type CreateRoomResponse struct {
	RoomID string `json:"room_id"`
}

// ErrorResponse is the uniform error body. The cause string is part of
// the public contract and mirrors the service error messages verbatim.
type ErrorResponse struct {
	Cause string `json:"cause"`
}
