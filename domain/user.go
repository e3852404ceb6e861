// Package domain contains the core concepts of the matchmaking system:
// users, rooms, games and moves. No storage, network or UI logic lives here.
package domain

import "github.com/google/uuid"

// User is a registered participant. The name is fixed at registration;
// room membership is tracked on the Room side to keep a single source of
// truth.
type User struct {
	ID   uuid.UUID
	Name string
}

func NewUser(name string) User {
	return User{ID: uuid.New(), Name: name}
}
