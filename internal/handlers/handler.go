package handlers

import (
	"sensor_relay/internal/logger"
	"sensor_relay/internal/metrics"
	"sensor_relay/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewHandler constructs a new HTTP handler with dependencies.
// m may be nil, in which case /metrics is not served.
func NewHandler(services *service.Service, log *logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{services: services, log: log, metrics: m}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware, h.accessLogMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	// Liveness endpoints
	router.GET("/", h.helloWorld)
	router.GET("/health", h.health)

	h.registerSensorRoutes(router)
	router.GET("/logs", h.getLogs)

	// Snapshot stream over WebSocket (HTTP upgrade), same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerSensorRoutes(r *gin.Engine) {
	// Body example: {"frequency":1245}
	r.POST("/create-sensor", h.createSensor)
	r.GET("/poll", h.poll)
	r.GET("/all-sensors", h.allSensors)
}
