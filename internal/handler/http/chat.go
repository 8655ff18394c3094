package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shubhashmahato/kurakani/internal/service"
)

// ChatHandler exposes conversation CRUD and membership management.
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates the handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	if chatService == nil {
		panic("ChatService cannot be nil for ChatHandler")
	}
	return &ChatHandler{chatService: chatService}
}

type createChatRequest struct {
	Name         string `json:"name" binding:"max=128"`
	IsGroup      bool   `json:"isGroup"`
	Participants []uint `json:"participants" binding:"required,min=1"`
}

type participantRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// Create handles POST /api/chats.
func (h *ChatHandler) Create(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req createChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	chat, err := h.chatService.Create(c.Request.Context(), userID, req.Name, req.IsGroup, req.Participants)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"chat": chat})
}

// List handles GET /api/chats.
func (h *ChatHandler) List(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	chats, err := h.chatService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// Get handles GET /api/chats/:chatId.
func (h *ChatHandler) Get(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	chatID, ok := pathID(c, "chatId")
	if !ok {
		return
	}
	chat, err := h.chatService.Get(c.Request.Context(), chatID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat": chat})
}

// AddParticipant handles POST /api/chats/:chatId/participants.
func (h *ChatHandler) AddParticipant(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	chatID, ok := pathID(c, "chatId")
	if !ok {
		return
	}
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.chatService.AddParticipant(c.Request.Context(), chatID, userID, req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveParticipant handles DELETE /api/chats/:chatId/participants/:userId.
func (h *ChatHandler) RemoveParticipant(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	chatID, ok := pathID(c, "chatId")
	if !ok {
		return
	}
	targetID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	if err := h.chatService.RemoveParticipant(c.Request.Context(), chatID, userID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pathID parses a numeric path parameter, answering 400 on failure.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
