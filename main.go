package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/talentgraph/backend/auth"
	"github.com/talentgraph/backend/config"
	_ "github.com/talentgraph/backend/docs"
	"github.com/talentgraph/backend/gemini"
	"github.com/talentgraph/backend/handlers"
	"github.com/talentgraph/backend/mcp"
	"github.com/talentgraph/backend/recommend"
	"github.com/talentgraph/backend/storage"
	"github.com/talentgraph/backend/tools"
)

// @title TalentGraph API
// @version 1.0
// @description Candidate/job matching backend with deterministic composite scoring, knowledge-graph signals and AI document extraction.

// @contact.name API Support
// @contact.email support@talentgraph.io

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load .env file if present (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Set Gin mode based on debug setting
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize Firestore client
	log.Println("Initializing Firestore client...")
	firestoreClient, err := storage.NewFirestoreClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	defer firestoreClient.Close()
	log.Println("Firestore client initialized successfully")

	// Initialize Cloud Storage client
	log.Println("Initializing Cloud Storage client...")
	storageClient, err := storage.NewCloudStorageClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage client: %v", err)
	}
	defer storageClient.Close()
	log.Println("Cloud Storage client initialized successfully")

	// Initialize Gemini client for document extraction and chat
	log.Println("Initializing Gemini client...")
	geminiClient, err := gemini.NewClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()
	log.Println("Gemini client initialized successfully")

	// Initialize auth service
	jwtService := auth.NewJWTService(cfg)

	// Initialize the recommendation service
	recommendService := recommend.NewService(firestoreClient, geminiClient)

	// Create handlers
	authHandler := handlers.NewAuthHandler(firestoreClient, jwtService)
	candidateHandler := handlers.NewCandidateHandler(firestoreClient, storageClient, geminiClient, cfg)
	jobHandler := handlers.NewJobHandler(firestoreClient, storageClient, geminiClient)
	recommendationHandler := handlers.NewRecommendationHandler(recommendService, cfg)
	chatHandler := handlers.NewChatHandler(firestoreClient, geminiClient)

	// Create MCP server with tool registry
	toolRegistry := tools.NewToolRegistry()
	toolRegistry.Register(tools.NewScoreMatchTool(firestoreClient))
	toolRegistry.Register(tools.NewRankCandidatesTool(recommendService, cfg))
	toolRegistry.Register(tools.NewExtractJobTool(geminiClient))
	toolRegistry.Register(tools.NewParseResumeTool(geminiClient))

	mcpServer := mcp.NewServer(toolRegistry)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Configure CORS for the dashboard frontend
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Register routes
	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api/v1")
	{
		// Auth endpoints (public)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Candidate endpoints; ingestion and deletion require a recruiter token
		requireAuth := auth.AuthMiddleware(jwtService)
		candidates := api.Group("/candidates")
		{
			candidates.POST("/upload", requireAuth, candidateHandler.Upload)
			candidates.POST("/bulk-ingest", requireAuth, candidateHandler.BulkIngest)
			candidates.GET("", candidateHandler.List)
			candidates.GET("/:id", candidateHandler.Get)
			candidates.DELETE("/:id", requireAuth, candidateHandler.Delete)
		}

		// Job endpoints
		jobs := api.Group("/jobs")
		{
			jobs.POST("/upload", requireAuth, jobHandler.Upload)
			jobs.GET("", jobHandler.List)
			jobs.GET("/:id", jobHandler.Get)
			jobs.DELETE("/:id", requireAuth, jobHandler.Delete)
		}

		// Recommendation endpoints
		recommendations := api.Group("/recommendations")
		{
			recommendations.GET("/candidates/:jobID", recommendationHandler.CandidatesForJob)
			recommendations.GET("/jobs/:candidateID", recommendationHandler.JobsForCandidate)
			recommendations.POST("/candidates-by-jd-text", recommendationHandler.CandidatesByJDText)
			recommendations.GET("/stats", recommendationHandler.Stats)
		}

		// Knowledge-graph chat endpoints
		api.POST("/chat", chatHandler.Chat)
		api.POST("/chat/clear-history", chatHandler.ClearHistory)

		// MCP endpoints for external AI agents
		mcpServer.RegisterRoutes(api)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
