package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shubhashmahato/kurakani/internal/service"
)

// CallHandler exposes call initiation and status updates.
type CallHandler struct {
	callService *service.CallService
}

// NewCallHandler creates the handler.
func NewCallHandler(callService *service.CallService) *CallHandler {
	if callService == nil {
		panic("CallService cannot be nil for CallHandler")
	}
	return &CallHandler{callService: callService}
}

type initiateCallRequest struct {
	ChatID uint   `json:"chatId" binding:"required"`
	Kind   string `json:"kind" binding:"required,oneof=audio video"`
}

type callStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted declined ended missed"`
}

// Initiate handles POST /api/calls.
func (h *CallHandler) Initiate(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req initiateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	call, err := h.callService.Initiate(c.Request.Context(), req.ChatID, userID, req.Kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"call": call})
}

// UpdateStatus handles PUT /api/calls/:callId/status.
func (h *CallHandler) UpdateStatus(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	callID, ok := pathID(c, "callId")
	if !ok {
		return
	}
	var req callStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	call, err := h.callService.UpdateStatus(c.Request.Context(), callID, userID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"call": call})
}
