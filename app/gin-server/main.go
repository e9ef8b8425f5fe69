package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/interviewxp/backend/config"
	"github.com/interviewxp/backend/internal/api/handlers"
	"github.com/interviewxp/backend/internal/api/middleware"
	"github.com/interviewxp/backend/internal/api/routes"
	"github.com/interviewxp/backend/internal/auth"
	"github.com/interviewxp/backend/internal/cache"
	"github.com/interviewxp/backend/internal/interview"
	"github.com/interviewxp/backend/internal/logger"
	"github.com/interviewxp/backend/internal/models"
	"github.com/interviewxp/backend/internal/providers/llm"
	mongorepo "github.com/interviewxp/backend/internal/repositories/mongo"
	pgrepo "github.com/interviewxp/backend/internal/repositories/postgres"
	"github.com/interviewxp/backend/internal/services"
	"github.com/interviewxp/backend/internal/workers"
)

func main() {
	_ = godotenv.Load()

	logg := logger.New()

	// Init MongoDB
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	logg.Info("MongoDB connected")
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	logg.Info("PostgreSQL connected")
	if err := config.PostgresDB.AutoMigrate(&models.TranscriptEntry{}); err != nil {
		log.Fatalf("PostgreSQL migration error: %v", err)
	}

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	logg.Info("Redis connected")

	db := config.MongoDatabase()

	// Auth
	tokens, err := auth.NewTokenIssuer(
		os.Getenv("JWT_SECRET"),
		os.Getenv("JWT_ISSUER"),
		os.Getenv("JWT_AUDIENCE"),
		0,
	)
	if err != nil {
		log.Fatalf("JWT init error: %v", err)
	}

	// Repositories
	userRepo := mongorepo.NewUserRepo(db)
	profileRepo := mongorepo.NewProfileRepo(db)
	sessionRepo := mongorepo.NewSessionRepo(db)
	transcriptRepo := pgrepo.NewTranscriptRepo(config.PostgresDB)

	// Services
	redisCache := cache.NewRedisCache(config.RedisClient)
	authService := services.NewAuthService(userRepo, tokens)
	profileService := services.NewProfileService(profileRepo, redisCache)
	sessionService := services.NewSessionService(sessionRepo, profileService, config.RedisClient)

	provider := buildProvider(logg)
	manager := interview.NewManager(profileService, provider)
	chatService := services.NewChatService(manager, transcriptRepo, sessionService, logg)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	chatHandler := handlers.NewChatHandler(chatService, sessionService)
	wsHandler := handlers.NewWSHandler(sessionService, chatService, config.RedisClient)

	// Workers
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := &workers.SummaryWorkerPool{
		Redis:    config.RedisClient,
		Sessions: sessionService,
		Profiles: profileService,
		Logger:   logg,
	}
	if err := pool.Start(rootCtx); err != nil {
		log.Fatalf("summary worker init error: %v", err)
	}

	// Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logg))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Tokens:  tokens,
		Auth:    authHandler,
		Profile: profileHandler,
		Session: sessionHandler,
		Chat:    chatHandler,
		WS:      wsHandler,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logg.WithField("port", port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.WithError(err).Fatal("server error")
		}
	}()

	<-rootCtx.Done()
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.WithError(err).Warn("server shutdown")
	}
	if provider != nil {
		_ = provider.Close()
	}
	_ = config.MongoClient.Disconnect(shutdownCtx)
	_ = config.RedisClient.Close()
}

// buildProvider picks the LLM backend from LLM_PROVIDER. An empty return
// means the interview engine falls back to its built-in question bank.
func buildProvider(logg *logrus.Logger) llm.Provider {
	switch os.Getenv("LLM_PROVIDER") {
	case "vertex":
		project := os.Getenv("GOOGLE_PROJECT_ID")
		location := os.Getenv("GOOGLE_LOCATION")
		model := os.Getenv("GEMINI_MODEL")
		if location == "" {
			location = "us-central1"
		}
		if model == "" {
			model = "gemini-1.5-flash"
		}
		p, err := llm.NewVertexGemini(context.Background(), project, location, model)
		if err != nil {
			logg.Warnf("vertex init failed, running without LLM: %v", err)
			return nil
		}
		return p
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			logg.Warnf("OPENAI_API_KEY not set, running without LLM")
			return nil
		}
		return llm.NewOpenAI(key, os.Getenv("OPENAI_MODEL"))
	default:
		return nil
	}
}

func corsOrigins() []string {
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var out []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
		return out
	}
	return []string{"http://localhost:3000"}
}
