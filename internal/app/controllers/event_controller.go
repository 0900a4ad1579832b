package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/app/services"
	"github.com/Ayesha-Rimione/hackmate/internal/middleware"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/helpers"
)

// EventController handles events, registrations and tags
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new event controller
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// GetEvents lists published events
// @Summary List events
// @Description Retrieves approved, published events, paginated
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search in title and description"
// @Param organizerId query int false "Filter by organizer"
// @Param upcoming query bool false "Only events that have not started"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse} "Events retrieved"
// @Router /events [get]
func (c *EventController) GetEvents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := &dto.EventFilterRequest{Page: page, PageSize: size}

	if v := ctx.Query("search"); v != "" {
		filter.Search = &v
	}
	if v := ctx.Query("organizerId"); v != "" {
		organizerID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid organizer ID").WithField("organizerId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.OrganizerID = &organizerID
	}
	filter.Upcoming = ctx.Query("upcoming") == "true"

	resp, err := c.eventService.GetEvents(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreateEvent creates an event owned by the caller
// @Summary Create event
// @Description Creates an event; the caller becomes its organizer
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event payload"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.eventService.CreateEvent(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetEventByID retrieves one event
// @Summary Get event by ID
// @Description Retrieves an event with tags and participant count; drafts are visible to the organizer only
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event retrieved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEventByID(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.eventService.GetEventByID(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateEvent updates an event
// @Summary Update event
// @Description Applies a partial update; organizer-only
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Event fields"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event updated"
// @Failure 403 {object} dto.ErrorResponse "Not the organizer"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.eventService.UpdateEvent(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteEvent removes an event
// @Summary Delete event
// @Description Deletes an event and its registrations; organizer-only
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Event deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the organizer"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.DeleteEvent(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Event deleted"}))
}

// Register registers the caller for an event
// @Summary Register for event
// @Description Registers the caller; waitlists them when the event is full
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 201 {object} dto.APIResponse{data=dto.EventParticipantResponse} "Registered"
// @Failure 400 {object} dto.ErrorResponse "Registration closed"
// @Failure 409 {object} dto.ErrorResponse "Already registered"
// @Router /events/{id}/registrations [post]
func (c *EventController) Register(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.eventService.RegisterForEvent(ctx, id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// CancelRegistration cancels the caller's registration
// @Summary Cancel registration
// @Description Marks the caller's registration cancelled and promotes from the waitlist
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Registration cancelled"
// @Failure 400 {object} dto.ErrorResponse "Not registered"
// @Router /events/{id}/registrations [delete]
func (c *EventController) CancelRegistration(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.CancelRegistration(ctx, id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Registration cancelled"}))
}

// GetParticipants lists an event's participants
// @Summary List event participants
// @Description Retrieves registrations; cancellations are visible to the organizer only
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.EventParticipantResponse} "Participants retrieved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/participants [get]
func (c *EventController) GetParticipants(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.eventService.GetParticipants(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SetTags replaces an event's tags
// @Summary Set event tags
// @Description Replaces the event's tag set; organizer-only
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.SetTagsRequest true "Tags"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Tags updated"
// @Failure 403 {object} dto.ErrorResponse "Not the organizer"
// @Router /events/{id}/tags [put]
func (c *EventController) SetTags(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetTagsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.eventService.SetTags(ctx, userID, id, req.Tags)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
