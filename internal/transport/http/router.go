package handlers

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/OWAISARSHED/LearnPak/internal/middleware"
)

type Handlers struct {
	Auth        *AuthHandler
	Course      *CourseHandler
	Enrollment  *EnrollmentHandler
	Payout      *PayoutHandler
	Admin       *AdminHandler
	Limiter     *middleware.RateLimiter
	Authn       middleware.Authenticator
	AllowOrigin []string
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	// the refresh cookie only travels to origins that were listed explicitly
	if wildcardOrigins(h.AllowOrigin) {
		config.AllowAllOrigins = true
		config.AllowCredentials = false
	} else {
		config.AllowOrigins = h.AllowOrigin
		config.AllowCredentials = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	requireAuth := middleware.RequireAuth(h.Authn)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Limiter.Limit("login", 5, 1*time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/profile", requireAuth, h.Auth.GetProfile)
			auth.PUT("/profile", requireAuth, h.Auth.UpdateProfile)
			auth.POST("/verify-identity", requireAuth, h.Auth.VerifyIdentity)
		}

		courses := api.Group("/courses")
		{
			courses.GET("", middleware.OptionalAuth(h.Authn), h.Course.List)
			courses.GET("/instructor/stats", requireAuth, h.Course.InstructorStats)
			courses.GET("/:id", h.Course.GetOne)
			courses.POST("", requireAuth, h.Course.Create)
			courses.PUT("/:id", requireAuth, h.Course.Update)
			courses.PUT("/:id/status", requireAuth, h.Course.SetStatus)
		}

		enrollments := api.Group("/enrollments")
		enrollments.Use(requireAuth)
		{
			enrollments.POST("", h.Enrollment.Enroll)
			enrollments.GET("", h.Enrollment.Mine)
			enrollments.POST("/emotion", h.Enrollment.LogEmotion)
			enrollments.PUT("/:id/progress", h.Enrollment.CompleteLesson)
		}

		payouts := api.Group("/payouts")
		payouts.Use(requireAuth)
		{
			payouts.POST("", h.Payout.Request)
			payouts.GET("/my", h.Payout.Mine)
			payouts.GET("", h.Payout.All)
			payouts.PUT("/:id", h.Payout.Resolve)
		}

		admin := api.Group("/admin")
		admin.Use(requireAuth)
		{
			admin.GET("/stats", h.Admin.Stats)
			admin.GET("/instructors", h.Admin.Instructors)
			admin.GET("/users", h.Admin.Users)
			admin.PUT("/verify-instructor/:id", h.Admin.VerifyInstructor)
			admin.PUT("/approve-instructor/:id", h.Admin.ApproveInstructor)
			admin.DELETE("/users/:id", h.Admin.DeleteUser)
		}
	}

	return r
}

func wildcardOrigins(origins []string) bool {
	return len(origins) == 0 || slices.Contains(origins, "*")
}
