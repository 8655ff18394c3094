package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shubhashmahato/kurakani/internal/service"
)

// MessageHandler exposes the durable message path. Each mutation commits and
// then fans out over the realtime layer inside the service.
type MessageHandler struct {
	messageService *service.MessageService
}

// NewMessageHandler creates the handler.
func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	if messageService == nil {
		panic("MessageService cannot be nil for MessageHandler")
	}
	return &MessageHandler{messageService: messageService}
}

type sendMessageRequest struct {
	Kind    string `json:"kind" binding:"omitempty,oneof=text image audio file"`
	Content string `json:"content" binding:"required"`
}

type editMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type reactionRequest struct {
	Emoji  string `json:"emoji" binding:"required"`
	Action string `json:"action" binding:"required,oneof=add remove"`
}

// Send handles POST /api/chats/:chatId/messages.
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	chatID, ok := pathID(c, "chatId")
	if !ok {
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), chatID, userID, req.Kind, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// List handles GET /api/chats/:chatId/messages.
func (h *MessageHandler) List(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	chatID, ok := pathID(c, "chatId")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := h.messageService.List(c.Request.Context(), chatID, userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// Edit handles PUT /api/messages/:messageId.
func (h *MessageHandler) Edit(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}
	var req editMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	message, err := h.messageService.Edit(c.Request.Context(), messageID, userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Delete handles DELETE /api/messages/:messageId.
func (h *MessageHandler) Delete(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}
	if err := h.messageService.Delete(c.Request.Context(), messageID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// React handles POST /api/messages/:messageId/reactions.
func (h *MessageHandler) React(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}
	var req reactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.messageService.React(c.Request.Context(), messageID, userID, req.Emoji, req.Action == "add"); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkRead handles POST /api/messages/:messageId/read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}
	if err := h.messageService.MarkRead(c.Request.Context(), messageID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkDelivered handles POST /api/messages/:messageId/delivered.
func (h *MessageHandler) MarkDelivered(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}
	if err := h.messageService.MarkDelivered(c.Request.Context(), messageID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
