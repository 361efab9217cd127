package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs registers the connection and blocks until it closes.
func ServeWs(hub *Hub, c *websocket.Conn, siteSlug, userId string) {
	client := NewClient(hub, c, siteSlug, userId)
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
