package handlers

import (
	"log"

	websocketcontrib "github.com/gofiber/contrib/websocket"
)

// ServeLive streams review and stats snapshots until the client goes away.
// Anything the client sends is ignored.
func (h *Handler) ServeLive(c *websocketcontrib.Conn) {
	h.Hub.Register(c)
	defer h.Hub.Unregister(c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if !websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseNormalClosure) {
				log.Printf("Live socket read error: %v", err)
			}
			return
		}
	}
}
