package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/selim/alumnihub/internal/app/controllers"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	mentorshipController *controllers.MentorshipController,
	eventController *controllers.EventController,
	jobController *controllers.JobController,
	notificationController *controllers.NotificationController,
	userController *controllers.UserController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated routes ---
	// Every mutating request inside this group must also carry the CSRF
	// token issued at login.
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	authenticated.Use(middleware.CSRFProtection())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		// Profile routes
		users := authenticated.Group("/users")
		{
			users.GET("/me", profileController.GetMyProfile)
			users.PUT("/me", profileController.UpdateMyProfile)
			users.GET("/me/skills", profileController.ListSkills)
			users.POST("/me/skills", profileController.AddSkill)
			users.DELETE("/me/skills/:id", profileController.RemoveSkill)
			users.GET("/:id", profileController.GetUserProfile)
		}

		// Mentorship routes
		mentorship := authenticated.Group("/mentorship")
		{
			mentorship.GET("/candidates", mentorshipController.ListCandidates)
			mentorship.GET("/connections", mentorshipController.ListConnections)

			// Only students initiate requests; only the stored alumni answers
			mentorshipStudent := mentorship.Group("")
			mentorshipStudent.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
			{
				mentorshipStudent.POST("/requests", mentorshipController.SendRequest)
			}

			mentorshipAlumni := mentorship.Group("")
			mentorshipAlumni.Use(authMiddleware.RoleRequired(string(models.RoleAlumni)))
			{
				mentorshipAlumni.POST("/requests/:id/respond", mentorshipController.Respond)
			}

			mentorship.POST("/requests/:id/complete", mentorshipController.Complete)
		}

		// Event routes
		events := authenticated.Group("/events")
		{
			events.GET("", eventController.ListEvents)
			events.GET("/:id", eventController.GetEvent)
			events.POST("/:id/register", eventController.Register)
			events.POST("/:id/cancel", eventController.Cancel)

			eventsOrganizer := events.Group("")
			eventsOrganizer.Use(authMiddleware.RoleRequired(string(models.RoleAlumni), string(models.RoleAdmin)))
			{
				eventsOrganizer.POST("", eventController.CreateEvent)
			}
		}

		// Job routes
		jobs := authenticated.Group("/jobs")
		{
			jobs.GET("", jobController.ListJobs)
			jobs.GET("/mine", jobController.ListMyJobs)
			jobs.GET("/:id", jobController.GetJob)

			jobsAlumni := jobs.Group("")
			jobsAlumni.Use(authMiddleware.RoleRequired(string(models.RoleAlumni)))
			{
				jobsAlumni.POST("", jobController.CreateJob)
				jobsAlumni.POST("/:id/close", jobController.CloseJob)
				jobsAlumni.POST("/:id/reopen", jobController.ReopenJob)
			}
		}

		// Notification routes
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.ListNotifications)
			notifications.POST("/:id/read", notificationController.MarkRead)
		}

		// Admin routes
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.GET("/users", userController.ListUsers)
			admin.PUT("/users/:id/status", userController.UpdateUserStatus)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})
}
