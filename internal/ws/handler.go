package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Rooms carry no credentials; codes gate everything server-side.
		return true
	},
}

// Handler upgrades the connection and runs the client pumps. Both teachers
// and students connect here; what a client sees depends only on the rooms
// it joins.
func Handler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		if hub == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "realtime not available"})
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		client := newClient(hub, conn)
		hub.Register(client)

		go client.writePump()
		client.readPump()
	}
}
