package routes

import (
	"net/http"
	"time"

	"mediconnect/handlers"
	"mediconnect/middleware"
	"mediconnect/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and logout endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/doctor/register", hb.RegisterDoctor)
		api.POST("/doctor/login", hb.LoginDoctor)
		api.POST("/patient/register", hb.RegisterPatient)
		api.POST("/patient/login", hb.LoginPatient)
		api.POST("/logout", middleware.AuthMiddleware(), hb.Logout)
	}
}

// RegisterDoctorRoutes registers discovery and doctor self-service
// endpoints. Discovery is public; self-service requires a doctor token.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		api.GET("/nearby", hb.Nearby)
		api.GET("/top-rated", hb.TopRated)
		api.GET("/active", hb.ActiveDoctors)
		api.GET("/specializations", hb.Specializations)
		api.GET("/search", hb.Search)
		api.GET("/:id", hb.GetDoctor)
		api.GET("/:id/slots", hb.AvailableSlots)
		api.GET("/:id/reviews", hb.GetReviews)
		api.POST("/:id/reviews", middleware.AuthMiddleware(), middleware.RequirePatient(), hb.AddReview)

		me := api.Group("/me")
		me.Use(middleware.AuthMiddleware(), middleware.RequireDoctor())
		me.PUT("", hb.UpdateProfile)
		me.PUT("/availability", hb.UpdateAvailability)
		me.PUT("/active", hb.SetActive)
		me.GET("/performance", hb.Performance)
	}
}

// RegisterAppointmentRoutes registers booking lifecycle endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("", middleware.RequirePatient(), hb.BookAppointment)
		api.GET("/upcoming", middleware.RequirePatient(), hb.Upcoming)
		api.PUT("/:id/cancel", hb.CancelAppointment)
		api.PUT("/:id/confirm", middleware.RequireDoctor(), hb.ConfirmAppointment)
	}
}

// RegisterPatientRoutes registers patient self-service endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients/me")
	api.Use(middleware.AuthMiddleware(), middleware.RequirePatient())
	{
		api.GET("", hb.GetPatientProfile)
		api.PUT("", hb.UpdatePatientProfile)
		api.PUT("/fcm-token", hb.UpdateFCMToken)
	}
}

// RegisterPaymentRoutes registers the gateway webhook. It authenticates by
// signature, not by bearer token.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/payments/webhook", hb.StripeWebhook)
}

// RegisterAssistantRoutes registers the assistant chat when it is
// configured.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.AssistantChat == nil {
		return
	}
	api := r.Group("/api/assistant")
	api.Use(middleware.AuthMiddleware())
	api.POST("/chat", hb.AssistantChat)
}

// RegisterStorageRoutes registers media upload endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	api.Use(middleware.AuthMiddleware())
	api.POST("/upload", hb.UploadFile)
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		snapshot := utils.GetHealthStatus()
		status := "ok"
		code := http.StatusOK
		if !snapshot.CheckedAt.IsZero() && !snapshot.Healthy {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "dependencies": snapshot})
	})
}

// RegisterRoutes centralizes registration of all endpoints and global
// middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	RegisterAuthRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAssistantRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterHealthRoute(r)
}
