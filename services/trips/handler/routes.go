package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/triptracker/internal/pkg/middleware"
	"github.com/piresc/triptracker/internal/pkg/models"
	wspkg "github.com/piresc/triptracker/internal/pkg/websocket"
	"github.com/piresc/triptracker/services/trips"
	httpHandler "github.com/piresc/triptracker/services/trips/handler/http"
	wsHandler "github.com/piresc/triptracker/services/trips/handler/websocket"
)

// Handler combines all handlers of the local tracker surface
type Handler struct {
	tripHTTP   *httpHandler.TripHandler
	tripStream *wsHandler.StreamHandler
	cfg        *models.Config
}

// NewHandler creates a new combined handler. positions may be nil.
func NewHandler(
	trackerUC trips.TrackerUC,
	positions httpHandler.PositionSink,
	wsManager *wspkg.Manager,
	cfg *models.Config,
) *Handler {
	return &Handler{
		tripHTTP:   httpHandler.NewTripHandler(trackerUC, positions),
		tripStream: wsHandler.NewStreamHandler(trackerUC, wsManager),
		cfg:        cfg,
	}
}

// RegisterRoutes registers all HTTP and websocket routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	auth := middleware.JWTAuthMiddleware(h.cfg.JWT)

	api := e.Group("/api/v1", auth)

	tripGroup := api.Group("/trip")
	tripGroup.GET("", h.tripHTTP.GetTrip)
	tripGroup.POST("/track", h.tripHTTP.Track)
	tripGroup.POST("/advance", h.tripHTTP.Advance)
	tripGroup.POST("/otp", h.tripHTTP.VerifyOTP)
	tripGroup.POST("/payment", h.tripHTTP.RequestPayment)
	tripGroup.POST("/extend", h.tripHTTP.ExtendRide)
	tripGroup.POST("/reset", h.tripHTTP.Reset)

	api.POST("/location", h.tripHTTP.PostLocation)
	api.POST("/app-state", h.tripHTTP.PostAppState)

	e.GET("/ws", h.tripStream.HandleWebSocket, auth)
}
