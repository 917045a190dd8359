package websocket

import (
	"errors"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/triptracker/internal/pkg/constants"
	"github.com/piresc/triptracker/internal/pkg/logger"
	wspkg "github.com/piresc/triptracker/internal/pkg/websocket"
	"github.com/piresc/triptracker/services/trips"
)

// StreamHandler pushes every published snapshot to connected screens
type StreamHandler struct {
	trackerUC trips.TrackerUC
	manager   *wspkg.Manager
}

// NewStreamHandler creates a snapshot stream handler
func NewStreamHandler(trackerUC trips.TrackerUC, manager *wspkg.Manager) *StreamHandler {
	return &StreamHandler{
		trackerUC: trackerUC,
		manager:   manager,
	}
}

// HandleWebSocket serves GET /ws
func (h *StreamHandler) HandleWebSocket(c echo.Context) error {
	return h.manager.HandleConnection(c, h.serve)
}

func (h *StreamHandler) serve(client *wspkg.Client) error {
	snapshots, cancel := h.trackerUC.Subscribe()
	defer cancel()

	readErr := make(chan error, 1)
	go func() {
		readErr <- h.readLoop(client)
	}()

	for {
		select {
		case err := <-readErr:
			return err
		case snap, ok := <-snapshots:
			if !ok {
				return nil
			}
			if err := client.SendMessage(constants.EventSnapshot, snap); err != nil {
				logger.Warn("Error sending snapshot to client",
					logger.String("client_id", client.ID),
					logger.Err(err))
				return nil
			}
		}
	}
}

// readLoop answers pings until the client goes away
func (h *StreamHandler) readLoop(client *wspkg.Client) error {
	for {
		msg, err := client.ReadMessage()
		if errors.Is(err, wspkg.ErrInvalidFormat) {
			if sendErr := client.SendCategorizedError(err, constants.ErrorInvalidFormat, constants.ErrorSeverityClient); sendErr != nil {
				return nil
			}
			continue
		}
		if err != nil {
			if !gorilla.IsCloseError(err, gorilla.CloseNormalClosure, gorilla.CloseGoingAway) {
				logger.Debug("WebSocket read ended",
					logger.String("client_id", client.ID),
					logger.Err(err))
			}
			return nil
		}

		switch msg.Event {
		case constants.EventPing:
			if err := client.SendMessage(constants.EventPong, nil); err != nil {
				return nil
			}
		default:
			_ = client.SendErrorMessage(constants.ErrorInvalidFormat, "unsupported event: "+msg.Event)
		}
	}
}
