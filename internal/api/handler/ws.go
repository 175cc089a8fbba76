package handler

import (
	"log"
	"net/http"

	"chatwire/backend/internal/gateway"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func (h *Handler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == h.ClientURL
		},
	}
}

// ServeWebSocket upgrades the connection and hands it to the gateway.
// The identity assertion travels in the accessToken cookie set by
// login/register; a missing or invalid one closes the connection
// without any further error surface, matching the handshake contract.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	token, _ := c.Cookie(accessTokenCookie)

	upgrader := h.upgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		log.Printf("Error upgrading connection: %v", err)
		return
	}

	client := gateway.NewWebSocketClient(h.Gateway, conn)
	sess, err := h.Gateway.Admit(client, token)
	if err != nil {
		log.Printf("Rejected websocket handshake: %v", err)
		client.Close()
		return
	}

	client.Run(sess)
}
