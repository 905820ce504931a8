package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage publishes a chat message to the booking channel. An
// unauthorized sender gets the same 201 with an empty body as everyone
// whose message was dropped: the response must not confirm whether the
// booking exists.
func (h *Handlers) SendMessage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid session"})
		return
	}
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid booking id"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	msg, err := h.Chat.Publish(c.Request.Context(), bookingID, userID, req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if msg == nil {
		c.JSON(http.StatusCreated, gin.H{})
		return
	}

	c.JSON(http.StatusCreated, msg)
}

func (h *Handlers) MessageHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid session"})
		return
	}
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid booking id"})
		return
	}

	messages, err := h.Chat.History(c.Request.Context(), bookingID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// StreamMessages subscribes the calling session to the booking channel over
// SSE. The stream ends when the client disconnects; missed messages are
// recovered via MessageHistory, not replayed.
func (h *Handlers) StreamMessages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid session"})
		return
	}
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid booking id"})
		return
	}

	sess, err := h.Chat.Subscribe(c.Request.Context(), bookingID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	defer sess.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, open := <-sess.Messages():
			if !open {
				return false
			}
			c.SSEvent("message", msg)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
