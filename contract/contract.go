package contract

import (
	"context"

	"github.com/google/uuid"
)

// UserClient is an open connection through which the server pushes
// messages to a single user. Implementations are owned by the transport
// layer; everything above it only sees this interface.
type UserClient interface {
	Send(ctx context.Context, message []byte) error
	Close() error
}

// IRegistry tracks which users currently hold a live connection.
type IRegistry interface {
	Put(userID uuid.UUID, client UserClient)
	Remove(userID uuid.UUID)
	Get(userID uuid.UUID) (UserClient, error)
}
