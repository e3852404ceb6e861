package http

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"match-lab/domain"
	"match-lab/errors"
	"match-lab/services"
)

const (
	userIDHeader = "user-id"
	roomIDHeader = "room-id"
)

type Handlers struct {
	svc *services.ApplicationService
	log *slog.Logger
}

func NewHandlers(svc *services.ApplicationService, log *slog.Logger) *Handlers {
	return &Handlers{svc: svc, log: log}
}

func (h *Handlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (h *Handlers) RegisterUser(c *gin.Context) {
	id, err := h.svc.RegisterUser(c.Request.Context(), c.Param("name"))
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, RegisterUserResponse{ID: id.String()})
}

func (h *Handlers) GetUser(c *gin.Context) {
	userID, ok := h.parseID(c, c.Param("id"))
	if !ok {
		return
	}
	name, err := h.svc.GetUserName(c.Request.Context(), userID)
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, GetUserResponse{Name: name})
}

func (h *Handlers) CreateRoom(c *gin.Context) {
	id, err := h.svc.CreateRoom(c.Request.Context())
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, CreateRoomResponse{RoomID: id.String()})
}

func (h *Handlers) StartNewGame(c *gin.Context) {
	userID, roomID, ok := h.headerIDs(c)
	if !ok {
		return
	}
	if err := h.svc.StartNewGame(c.Request.Context(), roomID, userID); err != nil {
		renderError(c, h.log, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *Handlers) BecomePlayer(c *gin.Context) {
	userID, roomID, ok := h.headerIDs(c)
	if !ok {
		return
	}
	added, err := h.svc.BecomePlayer(c.Request.Context(), roomID, userID)
	if err != nil {
		renderError(c, h.log, err)
		return
	}
	if !added {
		c.Status(http.StatusNotModified)
		return
	}
	c.Status(http.StatusAccepted)
}

func (h *Handlers) MakeGameMove(c *gin.Context) {
	userID, roomID, ok := h.headerIDs(c)
	if !ok {
		return
	}
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.X == nil || req.Y == nil {
		renderError(c, h.log, errors.ErrInvalidGameMove)
		return
	}
	move := domain.GameMove{
		UserID:   userID,
		Position: domain.Position{X: *req.X, Y: *req.Y},
	}
	if err := h.svc.MakeGameMove(c.Request.Context(), roomID, move); err != nil {
		renderError(c, h.log, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// headerIDs extracts the acting user and target room from the request
// headers. Missing or malformed headers fail with 400 before any lookup.
func (h *Handlers) headerIDs(c *gin.Context) (userID, roomID uuid.UUID, ok bool) {
	userID, err := uuid.Parse(c.GetHeader(userIDHeader))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Cause: "Invalid user-id header"})
		return uuid.Nil, uuid.Nil, false
	}
	roomID, err = uuid.Parse(c.GetHeader(roomIDHeader))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Cause: "Invalid room-id header"})
		return uuid.Nil, uuid.Nil, false
	}
	return userID, roomID, true
}

// parseID treats an unparseable path id like a path that matches nothing.
func (h *Handlers) parseID(c *gin.Context, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		c.Status(http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// renderError maps service errors onto the public status contract.
// Absent aggregates are 404, rule and precondition violations are 406,
// a dangling game pointer is 500.
func renderError(c *gin.Context, log *slog.Logger, err error) {
	status := http.StatusInternalServerError

	var (
		userNotFound errors.UserNotFoundError
		roomNotFound errors.RoomNotFoundError
		gameNotFound errors.GameNotFoundError
		noActiveGame errors.NoActiveGameInRoomError
		notInRoom    errors.UserNotInRoomError
		notAPlayer   errors.UserNotAPlayerInGameError
	)
	switch {
	case stderrors.As(err, &userNotFound),
		stderrors.As(err, &roomNotFound),
		stderrors.As(err, &noActiveGame):
		status = http.StatusNotFound
	case stderrors.Is(err, errors.ErrAlreadyAssigned):
		status = http.StatusConflict
	case stderrors.As(err, &notInRoom),
		stderrors.As(err, &notAPlayer),
		stderrors.Is(err, errors.ErrPlayerCountExceeded),
		stderrors.Is(err, errors.ErrPositionOccupied),
		stderrors.Is(err, errors.ErrPositionOutOfBounds),
		stderrors.Is(err, errors.ErrInvalidGameMove):
		status = http.StatusNotAcceptable
	case stderrors.As(err, &gameNotFound):
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err, "path", c.FullPath())
	}
	c.JSON(status, ErrorResponse{Cause: err.Error()})
}
