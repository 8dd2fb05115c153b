package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"comrent-backend/internal/model"
	"comrent-backend/internal/store"
)

// GetMessages handles GET /api/messages?pcName=X. Conversations are keyed
// by unit name, so a thread outlives a deleted or renamed unit.
func (h *Handler) GetMessages(c *gin.Context) {
	pcName := c.Query("pcName")
	if pcName == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "pcName is required"})
		return
	}
	c.JSON(http.StatusOK, h.Conversations.List(pcName))
}

// GetAllMessages handles GET /api/messages/all for the admin chat panel.
func (h *Handler) GetAllMessages(c *gin.Context) {
	c.JSON(http.StatusOK, h.Conversations.All())
}

type postMessageRequest struct {
	PCName   string `json:"pcName" binding:"required"`
	Sender   string `json:"sender" binding:"required"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl"`
}

// PostMessage handles POST /api/messages.
func (h *Handler) PostMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.Conversations.Post(req.PCName, req.Sender, req.Text, req.ImageURL)
	if err != nil {
		if errors.Is(err, store.ErrEmptyMessage) || errors.Is(err, store.ErrBadSender) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

type markReadRequest struct {
	PCName string `json:"pcName" binding:"required"`
	Reader string `json:"reader"`
}

// MarkMessagesRead handles PUT /api/messages. Only messages from the other
// side of the conversation flip to read; the reader defaults to the admin,
// which is who opens conversations in the dashboard.
func (h *Handler) MarkMessagesRead(c *gin.Context) {
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reader := req.Reader
	if reader == "" {
		reader = model.SenderAdmin
	}
	h.Conversations.MarkAllRead(req.PCName, reader)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
