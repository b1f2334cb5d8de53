package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/example/codereps/internal/logger"
	"github.com/example/codereps/internal/review"
)

// RouterConfig wires the handler dependencies.
type RouterConfig struct {
	Service        *review.Service
	Notifications  NotificationStore
	Verifier       TokenVerifier
	AllowedOrigins []string
	Log            *logger.Logger
}

// NewRouter builds the gin engine: CORS, the public liveness route and the
// authenticated API.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	h := NewHandler(cfg.Service, cfg.Notifications, cfg.Log)

	router.GET("/", h.Root)

	protected := router.Group("/")
	protected.Use(RequireAuth(cfg.Verifier, cfg.Log))
	protected.POST("/log", h.LogProblem)
	protected.GET("/reviews", h.TodaysReviews)
	protected.GET("/dashboard_stats", h.DashboardStats)
	protected.GET("/all_problems", h.AllProblems)
	protected.GET("/problem_bank", h.ProblemBank)
	protected.POST("/notifications", h.LinkNotifications)
	protected.DELETE("/notifications", h.UnlinkNotifications)

	return router
}
