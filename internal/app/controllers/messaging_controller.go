package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/app/services"
	"github.com/Ayesha-Rimione/hackmate/internal/middleware"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/helpers"
)

// MessagingController handles conversations and messages
type MessagingController struct {
	messagingService services.MessagingService
}

// NewMessagingController creates a new messaging controller
func NewMessagingController(messagingService services.MessagingService) *MessagingController {
	return &MessagingController{messagingService: messagingService}
}

// StartConversation opens a conversation
// @Summary Start conversation
// @Description Opens a conversation with the given participants; an existing direct conversation is reused
// @Tags messaging
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StartConversationRequest true "Participant IDs"
// @Success 201 {object} dto.APIResponse{data=dto.ConversationResponse} "Conversation opened"
// @Failure 404 {object} dto.ErrorResponse "Participant not found"
// @Router /conversations [post]
func (c *MessagingController) StartConversation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.StartConversationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.messagingService.StartConversation(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetConversations lists the caller's conversations
// @Summary List conversations
// @Description Retrieves the caller's conversations, newest activity first
// @Tags messaging
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ConversationResponse} "Conversations retrieved"
// @Router /conversations [get]
func (c *MessagingController) GetConversations(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.messagingService.GetConversations(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetMessages retrieves a conversation's messages
// @Summary List messages
// @Description Retrieves a page of messages in creation-time order and marks the caller's unread ones read
// @Tags messaging
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]dto.MessageResponse} "Messages retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Router /conversations/{id}/messages [get]
func (c *MessagingController) GetMessages(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	messages, pagination, err := c.messagingService.GetMessages(ctx, userID, id, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"messages":   messages,
		"pagination": pagination,
	}))
}

// SendMessage appends a message to a conversation
// @Summary Send message
// @Description Appends a message; participant-only
// @Tags messaging
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Param request body dto.SendMessageRequest true "Message content"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse} "Message sent"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Router /conversations/{id}/messages [post]
func (c *MessagingController) SendMessage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.messagingService.SendMessage(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetUnreadCount reports the caller's unread message total
// @Summary Unread message count
// @Description Counts unread messages addressed to the caller across all conversations
// @Tags messaging
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse} "Count retrieved"
// @Router /messages/unread-count [get]
func (c *MessagingController) GetUnreadCount(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.messagingService.GetUnreadCount(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
