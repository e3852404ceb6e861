package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"match-lab/contract"
	"match-lab/errors"
	"match-lab/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const outboundBuffer = 16

// wsClient pushes server messages to a single connected user. Writes go
// through a buffered channel drained by one goroutine, gorilla
// connections do not allow concurrent writers.
type wsClient struct {
	conn *websocket.Conn
	out  chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func newWSClient(conn *websocket.Conn) *wsClient {
	c := &wsClient{
		conn: conn,
		out:  make(chan []byte, outboundBuffer),
		done: make(chan struct{}),
	}
	go c.writeLoop()
	return c
}

func (c *wsClient) writeLoop() {
	for {
		select {
		case msg, ok := <-c.out:
			if !ok {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *wsClient) Send(ctx context.Context, message []byte) error {
	select {
	case c.out <- message:
		return nil
	case <-c.done:
		return errors.ErrClientNotAvailable
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *wsClient) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	return c.conn.Close()
}

// RoomSocket joins the user to the room and upgrades the request to a
// websocket that stays open for the lifetime of the membership. The join
// happens first so a rejected user still gets a regular HTTP status; if
// the upgrade then fails, the join is rolled back. A closed socket takes
// the user out of the room again.
type RoomSocket struct {
	svc      *services.ApplicationService
	registry contract.IRegistry
	log      *slog.Logger
}

func NewRoomSocket(svc *services.ApplicationService, registry contract.IRegistry, log *slog.Logger) *RoomSocket {
	return &RoomSocket{svc: svc, registry: registry, log: log}
}

func (s *RoomSocket) Handle(c *gin.Context) {
	userID, err := uuid.Parse(c.GetHeader(userIDHeader))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Cause: "Invalid user-id header"})
		return
	}
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	ctx := c.Request.Context()
	if err := s.svc.JoinRoom(ctx, userID, roomID); err != nil {
		renderError(c, s.log, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("Websocket upgrade failed", "user_id", userID, "room_id", roomID, "error", err)
		if leaveErr := s.svc.LeaveRoom(context.WithoutCancel(ctx), userID); leaveErr != nil {
			s.log.Error("Could not undo room join after failed upgrade", "user_id", userID, "error", leaveErr)
		}
		return
	}

	client := newWSClient(conn)
	s.registry.Put(userID, client)
	s.log.Info("User connected to room", "user_id", userID, "room_id", roomID)

	defer func() {
		s.registry.Remove(userID)
		_ = client.Close()
		if err := s.svc.LeaveRoom(context.WithoutCancel(ctx), userID); err != nil {
			s.log.Error("Cleanup after disconnect failed", "user_id", userID, "error", err)
		}
		s.log.Info("User disconnected from room", "user_id", userID, "room_id", roomID)
	}()

	// Inbound traffic is not part of the protocol; the read loop only
	// detects the peer going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
