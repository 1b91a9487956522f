package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/devlinkhq/devlink/config"
	"github.com/devlinkhq/devlink/internal/api/handlers"
	"github.com/devlinkhq/devlink/internal/api/middleware"
	"github.com/devlinkhq/devlink/internal/api/routes"
	"github.com/devlinkhq/devlink/internal/cache"
	"github.com/devlinkhq/devlink/internal/logger"
	"github.com/devlinkhq/devlink/internal/providers/github"
	mongorepo "github.com/devlinkhq/devlink/internal/repositories/mongo"
	pgrepo "github.com/devlinkhq/devlink/internal/repositories/postgres"
	"github.com/devlinkhq/devlink/internal/services"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	// Init MongoDB (profiles, posts)
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	log.Info("MongoDB connected")

	// Init PostgreSQL (identity)
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	log.Info("PostgreSQL connected")

	// Init Redis (github response cache)
	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	log.Info("Redis connected")

	db := config.MongoDatabase()
	profileRepo := mongorepo.NewProfileRepo(db)
	postRepo := mongorepo.NewPostRepo(db)
	userRepo := pgrepo.NewUserRepo(config.PostgresDB)

	ghClient := github.NewRESTClient(os.Getenv("GITHUB_TOKEN"))
	ghCache := cache.NewRedisCache(config.RedisClient)

	ghTTL := 10 * time.Minute
	if raw := os.Getenv("GITHUB_CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			ghTTL = d
		} else {
			log.Warnf("invalid GITHUB_CACHE_TTL %q, using default", raw)
		}
	}

	profileSvc := services.NewProfileService(profileRepo, postRepo, userRepo)
	githubSvc := services.NewGithubService(ghClient, ghCache, ghTTL)

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Profile: handlers.NewProfileHandler(profileSvc, githubSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
