package websocket

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/shubhashmahato/kurakani/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers connect from the app origin; token auth is the real gate.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades authenticated HTTP requests to websocket clients.
type Handler struct {
	hub *hub.Hub
}

// NewHandler creates the websocket handler.
func NewHandler(h *hub.Hub) *Handler {
	if h == nil {
		panic("Hub cannot be nil for websocket Handler")
	}
	return &Handler{hub: h}
}

// Serve handles GET /ws. The auth middleware has already resolved the user,
// so the session starts with a verified identity before the first frame.
func (h *Handler) Serve(c *gin.Context) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	userID, ok := value.(uint)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := h.hub.NewClient(conn, strconv.FormatUint(uint64(userID), 10))
	logrus.WithField("user_id", userID).Info("WebSocket connection established")
	client.Run()
}
