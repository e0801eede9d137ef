package api

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Content    string `json:"content"`
}

// Send godoc
// @Summary Send a message to your coach or one of your clients
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body SendMessageRequest true "Message"
// @Success 201 {object} domain.Message
// @Failure 400 {object} gin.H "Empty message"
// @Failure 403 {object} gin.H "Receiver is not your coach or client"
// @Router /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	receiverID, err := primitive.ObjectIDFromHex(req.ReceiverID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid receiverId format.")
		return
	}

	msg, err := h.messageService.Send(c.Request.Context(), actor, receiverID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// Conversation returns both directions of the thread with :userId, oldest
// first. Without ?offset= the page holds the newest messages.
func (h *MessageHandler) Conversation(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	otherID, ok := objectIDParam(c, "userId")
	if !ok {
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	messages, err := h.messageService.Conversation(c.Request.Context(), actor, otherID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	messageID, ok := objectIDParam(c, "messageId")
	if !ok {
		return
	}
	if err := h.messageService.MarkRead(c.Request.Context(), actor, messageID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MessageHandler) UnreadCount(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	n, err := h.messageService.UnreadCount(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

func (h *MessageHandler) Inbox(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	contacts, err := h.messageService.Inbox(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// PageQuery is the ?offset=&limit= window of a conversation. Offset counts
// back from the newest message.
type PageQuery struct {
	Offset int64 `form:"offset" binding:"omitempty,min=0"`
	Limit  int64 `form:"limit" binding:"omitempty,min=1"`
}

func pageQuery(c *gin.Context) (service.Page, bool) {
	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return service.Page{}, false
	}
	return service.Page{Offset: q.Offset, Limit: q.Limit}, true
}
