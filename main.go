package main

import (
	"log"

	"wardwatch-be/ai"
	"wardwatch-be/config"
	"wardwatch-be/controllers"
	"wardwatch-be/middlewares"
	"wardwatch-be/models"
	"wardwatch-be/routes"
	"wardwatch-be/services"
	"wardwatch-be/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const reportsPerDayLimit = 20

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var issueStore storage.IssueStore
	var wardStore storage.WardStore

	db, err := config.ConnectDB()
	if err != nil {
		// Degraded mode: reports are still accepted and get local ids, they
		// just don't survive a restart.
		log.Printf("MongoDB unavailable, running with in-memory stores: %v", err)
		issueStore = storage.NewMemoryIssueStore()
		wardStore = storage.NewMemoryWardStore([]models.Ward{})
	} else {
		log.Println("MongoDB connection established successfully!")
		issueStore = storage.NewMongoIssueStore(db)
		wardStore = storage.NewMongoWardStore(db)
	}

	proximity := services.NewProximityIndex(issueStore)
	resolver := services.NewWardResolver(wardStore)
	dispatcher := services.NewEmailDispatcherFromEnv()
	lifecycle := services.NewLifecycle(issueStore, proximity, resolver, dispatcher)

	handler := controllers.NewIssueHandler(lifecycle, proximity, issueStore)
	if gemini := ai.NewClientFromEnv(); gemini != nil {
		handler.Verifier = gemini
		handler.Describer = gemini
		handler.Translator = gemini
	} else {
		log.Println("GEMINI_API_KEY not set, AI collaborators disabled")
	}

	var rateLimiter gin.HandlerFunc
	redisClient, err := config.ConnectRedis()
	if err != nil {
		log.Printf("Redis unavailable, report rate limiting disabled: %v", err)
	} else if redisClient != nil {
		log.Println("Connected to Redis")
		rateLimiter = middlewares.ReportRateLimiter(redisClient, reportsPerDayLimit)
	}

	r := gin.Default()
	r.Use(cors.Default())

	routes.IssueRoutes(r, handler, rateLimiter)

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
