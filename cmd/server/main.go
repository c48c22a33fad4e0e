package main

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hiremeo/job-board-api/internal/config"
	"github.com/hiremeo/job-board-api/internal/database"
	"github.com/hiremeo/job-board-api/internal/handlers"
	"github.com/hiremeo/job-board-api/internal/middleware"
	"github.com/hiremeo/job-board-api/internal/repository"
	"github.com/hiremeo/job-board-api/internal/services"
	"github.com/hiremeo/job-board-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logger, err := zap.NewProduction()
	if cfg.GinMode != "release" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logger.Fatal("Failed to add indexes", zap.Error(err))
	}

	// Local blob store for profile pictures and resumes
	blobs, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal("Failed to create upload directory", zap.Error(err))
	}

	tokens := services.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	postRepo := repository.NewPostRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, companyRepo, taxonomyRepo, tokens)
	userService := services.NewUserService(userRepo, companyRepo, postRepo, taxonomyRepo, blobs)
	companyService := services.NewCompanyService(companyRepo, postRepo, taxonomyRepo, blobs)
	postService := services.NewPostService(postRepo, companyRepo, userRepo, taxonomyRepo)

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService, userService)
	companyHandler := handlers.NewCompanyHandler(authService, companyService)
	postHandler := handlers.NewPostHandler(postService, aiService)
	taxonomyHandler := handlers.NewTaxonomyHandler(taxonomyRepo)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	if cfg.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.AllowedOrigins, ",")
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "x-auth-token")
	r.Use(cors.New(corsConfig))

	// Static serving for uploaded files
	r.Static("/uploads", cfg.UploadDir)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Job Board API is running",
		})
	})

	requireAuth := middleware.RequireAuth(tokens)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/company/login", authHandler.CompanyLogin)
			auth.GET("/me", requireAuth, authHandler.GetCurrentAccount)
			auth.PUT("/password", requireAuth, authHandler.ChangePassword)
		}

		// User routes
		user := api.Group("/user")
		{
			user.POST("/signup", userHandler.Signup)

			authed := user.Group("")
			authed.Use(requireAuth, middleware.RequireUser())
			{
				authed.PUT("/settings", userHandler.UpdateSettings)
				authed.PUT("/skills", userHandler.UpdateSkills)
				authed.POST("/profile-picture", userHandler.UploadProfilePicture)
				authed.POST("/resume", userHandler.UploadResume)
				authed.PUT("/status", userHandler.SetStatus)
				authed.GET("/subscriptions", userHandler.ListSubscriptions)
				authed.POST("/subscriptions/:companyId", userHandler.Subscribe)
				authed.DELETE("/subscriptions/:companyId", userHandler.Unsubscribe)
				authed.GET("/saved-posts", userHandler.ListSavedPosts)
				authed.POST("/saved-posts/:postId", userHandler.SavePost)
				authed.DELETE("/saved-posts/:postId", userHandler.UnsavePost)
			}
		}

		// Company routes
		company := api.Group("/company")
		{
			company.POST("/signup", companyHandler.Signup)
			company.GET("/:id", companyHandler.GetPublicProfile)

			authed := company.Group("")
			authed.Use(requireAuth, middleware.RequireCompany())
			{
				authed.PUT("/settings", companyHandler.UpdateSettings)
				authed.POST("/profile-picture", companyHandler.UploadProfilePicture)
				authed.PUT("/status", companyHandler.SetStatus)
			}
		}

		// Post routes
		posts := api.Group("/posts")
		{
			posts.GET("/search", postHandler.Search)
			posts.GET("/top", postHandler.TopPosts)
			posts.GET("/recommended", requireAuth, middleware.RequireUser(), postHandler.RecommendedPosts)
			posts.GET("/mine", requireAuth, postHandler.ListMine)
			posts.POST("", requireAuth, middleware.RequireCompany(), postHandler.CreatePost)
			posts.POST("/suggest", requireAuth, middleware.RequireCompany(), postHandler.SuggestMetadata)
			posts.GET("/:id", postHandler.GetPost)
			posts.PUT("/:id/status", requireAuth, middleware.RequireCompany(), middleware.RequirePostOwnership(), postHandler.ChangeStatus)
			posts.GET("/:id/responses", requireAuth, middleware.RequireCompany(), middleware.RequirePostOwnership(), postHandler.ListResponses)
			posts.POST("/:id/responses", requireAuth, middleware.RequireUser(), postHandler.Respond)
			posts.PUT("/responses/:responseId/status", requireAuth, middleware.RequireCompany(), postHandler.SetResponseStatus)
		}

		// Taxonomy routes
		api.GET("/tags", taxonomyHandler.ListTags)
		api.POST("/tags", taxonomyHandler.CreateTag)
		api.GET("/states", taxonomyHandler.ListStates)
		api.POST("/states", taxonomyHandler.CreateState)
	}

	// Start server
	logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
