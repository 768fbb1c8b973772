package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"pinehollow/internal/infra/config"
	"pinehollow/internal/infra/obs"
)

type ReservationHTTP interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Confirm(c *gin.Context)
	Cancel(c *gin.Context)
}

type AvailabilityHTTP interface {
	Calendar(c *gin.Context)
}

type SessionHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	Click(c *gin.Context)
	Hover(c *gin.Context)
	Unhover(c *gin.Context)
	Reset(c *gin.Context)
	Close(c *gin.Context)
}

type Handlers struct {
	Reservation  ReservationHTTP
	Availability AvailabilityHTTP
	Session      SessionHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Reservation != nil {
		api.POST("/reservations", h.Reservation.Create)
		api.GET("/reservations", h.Reservation.List)
		api.POST("/reservations/:id/confirm", h.Reservation.Confirm)
		api.POST("/reservations/:id/cancel", h.Reservation.Cancel)
	}
	if h.Availability != nil {
		api.GET("/calendar", h.Availability.Calendar)
	}
	if h.Session != nil {
		sessions := api.Group("/booking-sessions")
		sessions.POST("", h.Session.Create)
		sessions.GET("/:id", h.Session.Get)
		sessions.POST("/:id/click", h.Session.Click)
		sessions.POST("/:id/hover", h.Session.Hover)
		sessions.DELETE("/:id/hover", h.Session.Unhover)
		sessions.POST("/:id/reset", h.Session.Reset)
		sessions.DELETE("/:id", h.Session.Close)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

// errJSON writes an error body tagged with the request ID so a visitor
// report can be matched to the server log line.
func errJSON(c *gin.Context, status int, message string) {
	body := gin.H{"error": message}
	if id := c.GetString(obs.GinRequestIDKey); id != "" {
		body["request_id"] = id
	}
	c.JSON(status, body)
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
