package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shubhashmahato/kurakani/internal/service"
)

// PresenceHandler answers presence reads over REST.
type PresenceHandler struct {
	presenceService *service.PresenceService
}

// NewPresenceHandler creates the handler.
func NewPresenceHandler(presenceService *service.PresenceService) *PresenceHandler {
	if presenceService == nil {
		panic("PresenceService cannot be nil for PresenceHandler")
	}
	return &PresenceHandler{presenceService: presenceService}
}

// Get handles GET /api/users/:userId/presence.
func (h *PresenceHandler) Get(c *gin.Context) {
	if _, ok := authedUserID(c); !ok {
		return
	}
	targetID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	snap, err := h.presenceService.Get(c.Request.Context(), targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userId":   targetID,
		"online":   snap.Online,
		"lastSeen": snap.LastSeen,
	})
}
