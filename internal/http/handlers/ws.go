package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"kanban_board/internal/logger"
	"kanban_board/internal/ws"
)

// BoardWS upgrades the connection and attaches the viewer to the board
// events hub.
func (h *Handler) BoardWS(hub *ws.Hub) gin.HandlerFunc {
	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Error("ws upgrade", "error", err)
			return
		}
		client := ws.NewClient(hub, conn)
		go client.Run()
	}
}
