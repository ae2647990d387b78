package main

import (
	"log"

	"github.com/mukundpurtutor/server/internal/config"
	"github.com/mukundpurtutor/server/internal/database"
	"github.com/mukundpurtutor/server/internal/handlers"
	"github.com/mukundpurtutor/server/internal/middleware"
	"github.com/mukundpurtutor/server/internal/services"
	"github.com/mukundpurtutor/server/internal/storage"
	"github.com/mukundpurtutor/server/internal/ws"

	_ "github.com/mukundpurtutor/server/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Mukundpur Tutor API
// @version         1.0
// @description     Tutor directory, secondhand-book marketplace and timed quiz backend
// @host            localhost:5000
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)
	defer database.Close(db)

	uploader, err := storage.NewS3Uploader(cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		log.Fatalf("failed to init media storage: %v", err)
	}

	hub := ws.NewHub()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	scoringService := services.NewScoringService()
	sessionService := services.NewSessionService(db, scoringService)
	questionService := services.NewQuestionService(db)
	tutorService := services.NewTutorService(db)
	bookService := services.NewBookService(db)

	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(sessionService, questionService, hub)
	questionHandler := handlers.NewQuestionHandler(questionService)
	tutorHandler := handlers.NewTutorHandler(tutorService, uploader)
	bookHandler := handlers.NewBookHandler(bookService, uploader)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Student-Id"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/leaderboard", wsHandler.HandleLeaderboard)

	// Quiz surface. Bank administration is destructive and requires auth.
	r.POST("/start", quizHandler.Start)
	r.GET("/quiz", quizHandler.GetQuestions)
	r.POST("/submit", quizHandler.Submit)
	r.GET("/top-users", quizHandler.TopUsers)
	r.POST("/questions", middleware.JWTAuth(authService), questionHandler.ReplaceQuestions)
	r.DELETE("/quiz", middleware.JWTAuth(authService), questionHandler.WipeQuiz)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		tutors := api.Group("/tutors")
		{
			tutors.GET("", tutorHandler.ListTutors)
			tutors.POST("", middleware.JWTAuth(authService), tutorHandler.CreateTutor)
		}

		books := api.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.POST("", bookHandler.CreateBook)
			books.GET("/:id", bookHandler.GetBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
			books.PATCH("/:id/approve", middleware.JWTAuth(authService), bookHandler.ApproveBook)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
