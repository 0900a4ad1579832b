package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Ayesha-Rimione/hackmate/internal/app/controllers"
	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	skillController *controllers.SkillController,
	eventController *controllers.EventController,
	teamController *controllers.TeamController,
	messagingController *controllers.MessagingController,
	notificationController *controllers.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// User browsing and profile management
		users := authenticated.Group("/users")
		{
			users.GET("", userController.GetUsers)
			users.GET("/me", userController.GetMe)
			users.PUT("/me/profile", userController.UpdateProfile)
			users.PUT("/me/skills", userController.SetSkills)
			users.GET("/:id", userController.GetUserByID)
		}

		// Shared skill catalog
		skills := authenticated.Group("/skills")
		{
			skills.GET("", skillController.GetSkills)
			skills.POST("", skillController.CreateSkill)
		}

		// Events and registrations
		events := authenticated.Group("/events")
		{
			events.GET("", eventController.GetEvents)
			events.POST("", eventController.CreateEvent)
			events.GET("/:id", eventController.GetEventByID)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
			events.PUT("/:id/tags", eventController.SetTags)

			// Registration lifecycle
			events.POST("/:id/registrations", eventController.Register)
			events.DELETE("/:id/registrations", eventController.CancelRegistration)
			events.GET("/:id/participants", eventController.GetParticipants)
		}

		// Teams and the membership workflow
		teams := authenticated.Group("/teams")
		{
			teams.GET("", teamController.GetTeams)
			teams.POST("", teamController.CreateTeam)
			teams.GET("/:id", teamController.GetTeamByID)
			teams.PUT("/:id", teamController.UpdateTeam)
			teams.DELETE("/:id", teamController.DeleteTeam)
			teams.PUT("/:id/skills", teamController.SetRequiredSkills)

			// Membership management
			teams.GET("/:id/members", teamController.GetMembers)
			teams.DELETE("/:id/members/:userId", teamController.RemoveMember)
			teams.POST("/:id/join", teamController.RequestJoin)
			teams.POST("/:id/leave", teamController.Leave)

			// Requests and invitations scoped to a team
			teams.GET("/:id/join-requests", teamController.GetTeamJoinRequests)
			teams.POST("/:id/invitations", teamController.Invite)
			teams.GET("/:id/invitations", teamController.GetTeamInvitations)
		}

		// Join requests addressed to the caller's teams or filed by the caller
		joinRequests := authenticated.Group("/join-requests")
		{
			joinRequests.GET("", teamController.GetMyJoinRequests)
			joinRequests.POST("/:id/approve", teamController.ApproveJoinRequest)
			joinRequests.POST("/:id/reject", teamController.RejectJoinRequest)
		}

		// Invitations addressed to the caller
		invitations := authenticated.Group("/invitations")
		{
			invitations.GET("", teamController.GetMyInvitations)
			invitations.POST("/:id/accept", teamController.AcceptInvitation)
			invitations.POST("/:id/decline", teamController.DeclineInvitation)
		}

		// Messaging
		conversations := authenticated.Group("/conversations")
		{
			conversations.POST("", messagingController.StartConversation)
			conversations.GET("", messagingController.GetConversations)
			conversations.GET("/:id/messages", messagingController.GetMessages)
			conversations.POST("/:id/messages", messagingController.SendMessage)
		}
		authenticated.GET("/messages/unread-count", messagingController.GetUnreadCount)

		// Notifications
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.GetNotifications)
			notifications.GET("/unread-count", notificationController.GetUnreadCount)
			notifications.POST("/read-all", notificationController.MarkAllRead)
			notifications.POST("/:id/read", notificationController.MarkRead)
		}
	}

	// Swagger routes are set up in bootstrap.go already
}
