package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/controllers"
	"github.com/tolatiles/tola-tiles-api/middleware"
)

// setupRouter builds the full route tree. Shared with the acceptance tests.
func setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://tolatiles.com"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")

	v1.GET("/health", healthCheck)
	v1.GET("/database/status", databaseStatus)

	// Locally stored uploads; in S3 mode image URLs are presigned instead
	cfg := config.GetConfig()
	if cfg != nil && !cfg.UseS3() {
		v1.Static("/uploads", cfg.UploadDir)
	}

	// Public catalog and portfolio reads
	v1.GET("/product-types", controllers.ListProductTypes)
	v1.GET("/product-types/:id", controllers.GetProductType)
	v1.GET("/categories", controllers.ListCategories)
	v1.GET("/categories/:id", controllers.GetCategory)
	v1.GET("/tiles", controllers.ListTiles)
	v1.GET("/tiles/:id", controllers.GetTile)
	v1.GET("/projects", controllers.ListProjects)
	v1.GET("/projects/:id", controllers.GetProject)
	v1.GET("/team", controllers.ListTeamMembers)
	v1.GET("/team/:id", controllers.GetTeamMember)

	// Testimonial reads vary visibility by privilege
	testimonialReads := v1.Group("", middleware.OptionalAuth())
	{
		testimonialReads.GET("/testimonials", controllers.ListTestimonials)
		testimonialReads.GET("/testimonials/:id", controllers.GetTestimonial)
	}

	// Public writes, sanitized
	public := v1.Group("", middleware.SanitizeInput())
	{
		public.POST("/contacts", controllers.CreateContact)
		public.POST("/newsletter/subscribe", controllers.Subscribe)
		public.POST("/newsletter/unsubscribe", controllers.Unsubscribe)
		public.POST("/auth/login", controllers.Login)
		public.POST("/auth/register", controllers.Register)
		public.POST("/auth/proxy-login", controllers.ProxyClientLogin)
	}
	v1.POST("/testimonials", middleware.OptionalAuth(), middleware.SanitizeInput(), controllers.CreateTestimonial)

	// Authenticated (any account)
	authed := v1.Group("", middleware.RequireAuth())
	{
		authed.GET("/auth/user", controllers.GetCurrentUser)
		authed.POST("/auth/change-password", controllers.ChangePassword)

		authed.POST("/chat/send", controllers.SendMessage)
		authed.POST("/chat/mark-read", controllers.MarkMessagesRead)
		authed.POST("/chat/admin-contact", controllers.AdminContact)
		authed.GET("/chat/conversations", controllers.ListConversations)
		authed.GET("/chat/conversations/:id/messages", controllers.ListMessages)
	}

	// Staff-only administration
	staff := v1.Group("", middleware.RequireAuth(), middleware.RequireStaff())
	{
		staff.POST("/product-types", controllers.CreateProductType)
		staff.PUT("/product-types/:id", controllers.UpdateProductType)
		staff.DELETE("/product-types/:id", controllers.DeleteProductType)

		staff.POST("/categories", controllers.CreateCategory)
		staff.PUT("/categories/:id", controllers.UpdateCategory)
		staff.DELETE("/categories/:id", controllers.DeleteCategory)

		staff.POST("/tiles", controllers.CreateTile)
		staff.PUT("/tiles/:id", controllers.UpdateTile)
		staff.DELETE("/tiles/:id", controllers.DeleteTile)
		staff.POST("/tiles/:id/images", controllers.UploadTileImage)
		staff.POST("/tile-images/:id/set-primary", controllers.SetPrimaryTileImage)
		staff.DELETE("/tile-images/:id", controllers.DeleteTileImage)

		staff.POST("/projects", controllers.CreateProject)
		staff.PUT("/projects/:id", controllers.UpdateProject)
		staff.DELETE("/projects/:id", controllers.DeleteProject)
		staff.POST("/projects/:id/images", controllers.UploadProjectImage)
		staff.POST("/project-images/:id/set-primary", controllers.SetPrimaryProjectImage)
		staff.DELETE("/project-images/:id", controllers.DeleteProjectImage)

		staff.POST("/team", controllers.CreateTeamMember)
		staff.PUT("/team/:id", controllers.UpdateTeamMember)
		staff.DELETE("/team/:id", controllers.DeleteTeamMember)

		staff.PUT("/testimonials/:id", controllers.UpdateTestimonial)
		staff.POST("/testimonials/:id/approve", controllers.ApproveTestimonial)
		staff.DELETE("/testimonials/:id", controllers.DeleteTestimonial)

		staff.GET("/contacts", controllers.ListContacts)
		staff.POST("/contacts/:id/respond", controllers.RespondContact)

		staff.GET("/newsletter/subscribers", controllers.ListSubscribers)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Tola Tiles API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
