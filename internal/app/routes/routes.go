package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educonnect/educonnect/internal/app/controllers"
	"github.com/educonnect/educonnect/internal/app/models"
	"github.com/educonnect/educonnect/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	sessionController *controllers.SessionController,
	bookingController *controllers.BookingController,
	chatController *controllers.ChatController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Assistant chat is open to anonymous visitors as well
	v1.POST("/chat", chatController.SendMessage)

	// Browsing sessions works anonymously, a signed-in student additionally
	// gets sessions they already booked filtered out
	v1.GET("/sessions", authMiddleware.OptionalJWTAuth(), sessionController.ListAvailableSessions)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)
		authenticated.PUT("/profile", userController.UpdateProfile)

		sessions := authenticated.Group("/sessions")
		{
			// "my" before ":id" so gin does not treat it as an ID
			sessions.GET("/my", sessionController.ListMySessions)
			sessions.GET("/:id", sessionController.GetSession)

			volunteerOnly := sessions.Group("")
			volunteerOnly.Use(authMiddleware.RoleRequired(models.RoleVolunteer))
			{
				volunteerOnly.POST("", sessionController.CreateSession)
				volunteerOnly.PUT("/:id", sessionController.UpdateSession)
				volunteerOnly.DELETE("/:id", sessionController.DeleteSession)
				volunteerOnly.GET("/:id/bookings", sessionController.ListSessionBookings)
			}
		}

		volunteer := authenticated.Group("/volunteer")
		volunteer.Use(authMiddleware.RoleRequired(models.RoleVolunteer))
		{
			volunteer.GET("/stats", sessionController.GetVolunteerStats)
		}

		bookings := authenticated.Group("/bookings")
		{
			bookings.PUT("/:id/cancel", bookingController.CancelBooking)

			studentOnly := bookings.Group("")
			studentOnly.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				studentOnly.POST("", bookingController.CreateBooking)
				studentOnly.GET("/my", bookingController.ListMyBookings)
			}
		}
	}
}
