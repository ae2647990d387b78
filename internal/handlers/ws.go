package handlers

import (
	"log"
	"net/http"

	"github.com/mukundpurtutor/server/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleLeaderboard godoc
// @Summary      WebSocket leaderboard feed
// @Description  Subscribe to leaderboard updates pushed after each scored submission
// @Tags         websocket
// @Router       /ws/leaderboard [get]
func (h *WSHandler) HandleLeaderboard(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddClient(conn)
	defer h.hub.RemoveClient(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
