package handlers

import (
	"time"

	"animated_gauge/internal/logger"
	"animated_gauge/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// defaultFrameInterval is roughly one display refresh at 60 Hz.
const defaultFrameInterval = 16 * time.Millisecond

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services      *service.Service
	log           *logger.Logger
	frameInterval time.Duration
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log, frameInterval: defaultFrameInterval}
}

// SetFrameInterval sets the default animation frame period of websocket streams.
func (h *Handler) SetFrameInterval(d time.Duration) {
	if d > 0 {
		h.frameInterval = d
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints; writes are protected
	h.registerAPIRoutes(router)

	// Animated frame stream (HTTP upgrade) — same port
	router.GET("/ws/cards/:id", h.wsCard)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/token", h.issueToken)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerCardRoutes(api)
		h.registerStateRoutes(api)
	}
}

func (h *Handler) registerCardRoutes(api *gin.RouterGroup) {
	cards := api.Group("/cards")
	{
		cards.GET("", h.listCards)
		cards.GET("/:id", h.getCard)
		// Body: the card config as the editor emits it, e.g. {"entity":"sensor.boiler","max":90}
		cards.PUT("/:id", h.bearerMiddleware, h.replaceCard)
		cards.GET("/:id/scene", h.cardScene)
		cards.GET("/:id/svg", h.cardSVG)
	}
}

func (h *Handler) registerStateRoutes(api *gin.RouterGroup) {
	states := api.Group("/states")
	{
		states.GET("", h.listStates)
		states.POST("", h.bearerMiddleware, h.publishState)
		states.GET("/:entity", h.getEntityState)
	}
}
