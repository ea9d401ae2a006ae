package handler

import (
	"net/http"
	"slices"

	_ "InterviewPractice_FeedbackService/docs"
	"InterviewPractice_FeedbackService/internal/config"
	"InterviewPractice_FeedbackService/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterOptions struct {
	RateLimit config.RateLimitConfig
	// StaticDir is served for unmatched GET paths when non-empty.
	StaticDir string
	Metrics   http.Handler
	Log       zerolog.Logger
}

func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(opts.Log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, middleware.SessionHeader, middleware.RequestIDHeader)
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/health", h.Health)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	analyze := []gin.HandlerFunc{middleware.Session(false)}
	if opts.RateLimit.Enabled {
		analyze = append(analyze, middleware.RateLimit(opts.RateLimit.RequestsPerSecond, opts.RateLimit.Burst, opts.RateLimit.TTL))
	}

	api := router.Group("/api")
	{
		api.POST("/analyze-response", append(slices.Clip(analyze), h.AnalyzeResponse)...)

		api.GET("/questions", h.ListQuestions)
		api.GET("/questions/next", h.NextQuestion)
		api.GET("/questions/:index/audio", h.QuestionAudio)

		history := api.Group("/history").Use(middleware.Session(true))
		{
			history.GET("", h.GetHistory)
			history.DELETE("", h.ClearHistory)
		}
	}

	router.GET("/ws/analyze", append(slices.Clip(analyze), h.AnalyzeSocket)...)

	router.NoRoute(NoRoute(opts.StaticDir))
	return router
}
