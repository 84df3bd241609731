package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/PrashantBimalJha/studentlearning-app/internal/chat"
	"github.com/PrashantBimalJha/studentlearning-app/internal/config"
	"github.com/PrashantBimalJha/studentlearning-app/internal/db"
	"github.com/PrashantBimalJha/studentlearning-app/internal/event"
	"github.com/PrashantBimalJha/studentlearning-app/internal/grading"
	"github.com/PrashantBimalJha/studentlearning-app/internal/handlers"
	"github.com/PrashantBimalJha/studentlearning-app/internal/oracle"
	"github.com/PrashantBimalJha/studentlearning-app/internal/repository"
	"github.com/PrashantBimalJha/studentlearning-app/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	gin.SetMode(cfg.GinMode)

	db.InitMongo(cfg.MongoURI)
	defer db.Close()
	database := db.Client.Database(cfg.MongoDatabase)

	var publisher *event.EventPublisher
	if cfg.RabbitMQURI != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	oracleClient := oracle.NewClient(cfg.OracleBaseURL, cfg.OracleAPIKey, cfg.OracleModel, cfg.OracleTimeout)
	engine := grading.NewEngine(oracleClient)

	assignmentRepo := repository.NewAssignmentRepository(database)
	reportRepo := repository.NewReportRepository(database)
	gameRepo := repository.NewGameScoreRepository(database)
	courseRepo := repository.NewCourseRepository(database)
	userRepo := repository.NewUserRepository(database)

	// RabbitMQ is optional; a nil interface keeps publishing a no-op.
	var pub service.Publisher
	if publisher != nil {
		pub = publisher
	}

	assignmentService := service.NewAssignmentService(assignmentRepo, courseRepo, engine, pub)
	quizService := service.NewQuizService(assignmentRepo, engine, pub, cfg.QuizQuestionCount)
	reportService := service.NewReportService(reportRepo, assignmentRepo, pub)
	gameService := service.NewGameService(gameRepo, userRepo, pub)
	tutorService := service.NewTutorService(oracleClient, chat.NewStore())

	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	quizHandler := handlers.NewQuizHandler(quizService)
	reportHandler := handlers.NewReportHandler(reportService)
	gameHandler := handlers.NewGameHandler(gameService)
	chatHandler := handlers.NewChatHandler(tutorService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"oracle": oracleClient.Available(ctx),
		})
	})

	api := r.Group("/api")
	api.Use(handlers.AuthRequired())
	{
		api.GET("/assignments", assignmentHandler.List)
		api.POST("/assignments", assignmentHandler.Create)
		api.GET("/assignments/:id", assignmentHandler.Get)
		api.DELETE("/assignments/:id", assignmentHandler.Delete)
		api.POST("/assignments/:id/submit", assignmentHandler.SubmitText)
		api.POST("/assignments/:id/submit-quiz", quizHandler.Submit)

		api.POST("/quiz/generate", quizHandler.Generate)

		api.GET("/reports", reportHandler.List)
		api.POST("/reports", reportHandler.Create)
		api.POST("/reports/:id/resolve", reportHandler.Resolve)

		api.POST("/games/submit", gameHandler.RecordRound)
		api.GET("/games/leaderboard/:game", gameHandler.Leaderboard)

		api.POST("/chat", chatHandler.Ask)
		api.DELETE("/chat", chatHandler.Reset)
	}

	log.Printf("Assessment engine listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
