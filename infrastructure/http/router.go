// Package http exposes the game over gin handlers and a gorilla
// websocket room channel.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"match-lab/contract"
	"match-lab/services"
)

func NewRouter(svc *services.ApplicationService, registry contract.IRegistry, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	h := NewHandlers(svc, log)
	socket := NewRoomSocket(svc, registry, log)

	r.GET("/admin/status", h.Status)

	game := r.Group("/game")
	game.POST("/users/:name", h.RegisterUser)
	game.GET("/users/:id", h.GetUser)
	game.POST("/rooms", h.CreateRoom)
	game.GET("/rooms/:id/members", socket.Handle)
	game.POST("/games", h.StartNewGame)
	game.PUT("/games/players", h.BecomePlayer)
	game.POST("/games/moves", h.MakeGameMove)

	return r
}
