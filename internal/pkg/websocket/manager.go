package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/triptracker/internal/pkg/constants"
	"github.com/piresc/triptracker/internal/pkg/logger"
	"github.com/piresc/triptracker/internal/pkg/middleware"
	"github.com/piresc/triptracker/internal/pkg/models"
)

const writeWait = 10 * time.Second

// ErrInvalidFormat is returned by ReadMessage for frames that are not a WSMessage
var ErrInvalidFormat = errors.New("invalid message format")

// Client is one connected screen
type Client struct {
	ID      string
	Subject string
	Role    models.Role

	conn    *websocket.Conn
	writeMu sync.Mutex
}

// Manager manages WebSocket connections and client state
type Manager struct {
	sync.RWMutex
	clients  map[string]*Client
	upgrader websocket.Upgrader
}

// NewManager creates a new WebSocket manager
func NewManager() *Manager {
	return &Manager{
		clients: make(map[string]*Client),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades the request and runs handleClient until it
// returns. Identity comes from the claims JWTAuthMiddleware stored on c.
func (m *Manager) HandleConnection(c echo.Context, handleClient func(*Client) error) error {
	client := &Client{ID: uuid.New().String()}
	if subject, ok := c.Get(middleware.ContextSubject).(string); ok {
		client.Subject = subject
	}
	if role, ok := middleware.RoleFromContext(c); ok {
		client.Role = role
	}

	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already answered the request
		logger.Warn("WebSocket upgrade failed",
			logger.String("client_id", client.ID),
			logger.Err(err))
		return nil
	}
	defer ws.Close()
	client.conn = ws

	m.addClient(client)
	defer m.removeClient(client.ID)

	logger.Info("WebSocket client connected",
		logger.String("client_id", client.ID),
		logger.String("subject", client.Subject),
		logger.String("role", string(client.Role)))

	err = handleClient(client)

	logger.Info("WebSocket client disconnected",
		logger.String("client_id", client.ID))
	return err
}

func (m *Manager) addClient(client *Client) {
	m.Lock()
	defer m.Unlock()
	m.clients[client.ID] = client
}

func (m *Manager) removeClient(id string) {
	m.Lock()
	defer m.Unlock()
	delete(m.clients, id)
}

// Count returns the number of connected clients
func (m *Manager) Count() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.clients)
}

// ReadMessage blocks for the next message of the client
func (c *Client) ReadMessage() (models.WSMessage, error) {
	var msg models.WSMessage
	_, raw, err := c.conn.ReadMessage()
	if err != nil {
		return msg, err
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return msg, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return msg, nil
}

// SendMessage sends an event to the client. Safe for concurrent use.
func (c *Client) SendMessage(event string, data interface{}) error {
	var rawData json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("error marshaling message data: %w", err)
		}
		rawData = encoded
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(models.WSMessage{
		Event: event,
		Data:  rawData,
	})
}

// SendErrorMessage sends an error message to the client
func (c *Client) SendErrorMessage(code string, message string) error {
	return c.SendMessage(constants.EventError, models.WSErrorMessage{
		Code:    code,
		Message: message,
	})
}

// SendCategorizedError sends an error message based on severity level
func (c *Client) SendCategorizedError(err error, code string, severity constants.ErrorSeverity) error {
	logger.Error("WebSocket operation failed",
		logger.String("client_id", c.ID),
		logger.String("error_code", code),
		logger.String("severity", severityString(severity)),
		logger.Err(err))

	switch severity {
	case constants.ErrorSeverityClient:
		return c.SendErrorMessage(code, err.Error())
	case constants.ErrorSeveritySecurity:
		return c.SendErrorMessage(code, "Access denied")
	default:
		return c.SendErrorMessage(code, "Operation failed")
	}
}

func severityString(severity constants.ErrorSeverity) string {
	switch severity {
	case constants.ErrorSeverityClient:
		return "client"
	case constants.ErrorSeverityServer:
		return "server"
	case constants.ErrorSeveritySecurity:
		return "security"
	default:
		return "unknown"
	}
}
