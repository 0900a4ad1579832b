package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
)

// HandleAPIError maps service-layer errors to HTTP responses. Sentinels are
// matched with errors.Is so wrapped CustomErrors map the same as bare ones.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := func(fallback string) string {
		if errors.As(err, &custom) && custom.Message != "" {
			return custom.Message
		}
		return fallback
	}

	switch {
	// 404
	case errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found")))
	case errors.Is(err, apperrors.ErrTeamNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Team not found")))
	case errors.Is(err, apperrors.ErrEventNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Event not found")))
	case errors.Is(err, apperrors.ErrSkillNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Skill not found")))
	case errors.Is(err, apperrors.ErrJoinRequestNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Join request not found")))
	case errors.Is(err, apperrors.ErrInvitationNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Invitation not found")))
	case errors.Is(err, apperrors.ErrConversationNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Conversation not found")))
	case errors.Is(err, apperrors.ErrNotificationNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Notification not found")))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message("Resource not found"))))

	// 403
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, message("Permission denied"))))

	// 401
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))

	// 409
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")))
	case errors.Is(err, apperrors.ErrSkillExists):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Skill already exists")))
	case errors.Is(err, apperrors.ErrAlreadyMember):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeAlreadyMember, "User is already a member of this team")))
	case errors.Is(err, apperrors.ErrDuplicateRequest):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeDuplicateRequest, "A pending join request already exists")))
	case errors.Is(err, apperrors.ErrDuplicateInvitation):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeDuplicateRequest, "An invitation already exists for this user")))
	case errors.Is(err, apperrors.ErrAlreadyRegistered):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Already registered for this event")))

	// 400
	case errors.Is(err, apperrors.ErrTeamFull):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeTeamFull, "Team is full")))
	case errors.Is(err, apperrors.ErrAlreadyProcessed):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeAlreadyProcessed, "Request has already been processed")))
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidState, "Invitation is no longer pending")))
	case errors.Is(err, apperrors.ErrInvitationExpired):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeExpired, "Invitation has expired")))
	case errors.Is(err, apperrors.ErrNotAMember):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeNotAMember, "User is not a member of this team")))
	case errors.Is(err, apperrors.ErrNotRegistered):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Not registered for this event")))
	case errors.Is(err, apperrors.ErrRegistrationClosed):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeRegistrationClosed, "Event registration deadline has passed")))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message("Validation failed"))))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, message("Bad request"))))

	default:
		c.JSON(500, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
