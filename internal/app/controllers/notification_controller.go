package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/app/services"
	"github.com/Ayesha-Rimione/hackmate/internal/middleware"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/helpers"
)

// NotificationController handles the per-user notification log
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new notification controller
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// GetNotifications lists the caller's notifications
// @Summary List notifications
// @Description Retrieves the caller's notifications, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread notifications"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse} "Notifications retrieved"
// @Router /notifications [get]
func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	unreadOnly := ctx.Query("unread") == "true"

	resp, err := c.notificationService.GetNotifications(ctx, userID, unreadOnly, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetUnreadCount reports the caller's unread notification total
// @Summary Unread notification count
// @Description Counts the caller's unread notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse} "Count retrieved"
// @Router /notifications/unread-count [get]
func (c *NotificationController) GetUnreadCount(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	count, err := c.notificationService.GetUnreadCount(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UnreadCountResponse{UnreadCount: count}))
}

// MarkRead marks one notification read
// @Summary Mark notification read
// @Description Marks one of the caller's notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Notification marked read"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Notification marked read"}))
}

// MarkAllRead marks every notification read
// @Summary Mark all notifications read
// @Description Marks all of the caller's notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Notifications marked read"
// @Router /notifications/read-all [post]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.notificationService.MarkAllRead(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Notifications marked read"}))
}
