package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/sentinel/internal/api/handlers"
	"github.com/your-org/sentinel/internal/api/ws"
	"github.com/your-org/sentinel/internal/auth"
	"github.com/your-org/sentinel/internal/compare"
	"github.com/your-org/sentinel/internal/eventlog"
	"github.com/your-org/sentinel/internal/queue"
	"github.com/your-org/sentinel/internal/roster"
	"github.com/your-org/sentinel/internal/storage"
)

type RouterConfig struct {
	APIKey   string
	DB       *storage.PostgresStore
	Frames   *storage.MinIOStore
	Producer *queue.Producer
	Hub      *ws.Hub
	Roster   *roster.Service
	Logs     *eventlog.Service
	// Compare may be nil when no ranking collaborator is configured.
	Compare *compare.Service
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware())
	r.Use(cors.Default())

	// System endpoints (no auth)
	systemH := handlers.NewSystemHandler(cfg.DB, cfg.Frames, cfg.Producer)
	r.GET("/healthz", systemH.Healthz)
	r.GET("/readyz", systemH.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 (with auth)
	v1 := r.Group("/v1")
	v1.Use(auth.APIKeyMiddleware(cfg.APIKey))

	// WebSocket: viewers receive, ingest clients push
	v1.GET("/ws", cfg.Hub.HandleViewer)
	v1.GET("/ws/ingest", cfg.Hub.HandleIngest)

	// Roster
	soldierH := handlers.NewSoldierHandler(cfg.Roster)
	v1.GET("/soldiers", soldierH.List)
	v1.POST("/soldiers", soldierH.Create)
	v1.PUT("/soldiers/:id", soldierH.Update)
	v1.DELETE("/soldiers/:id", soldierH.Delete)

	// System log
	logH := handlers.NewLogHandler(cfg.Logs)
	v1.GET("/logs", logH.List)
	v1.POST("/logs", logH.Append)
	v1.DELETE("/logs", logH.ClearAll)

	// Face comparison
	compareH := handlers.NewCompareHandler(cfg.Compare)
	v1.POST("/compare", compareH.Compare)

	return r
}
