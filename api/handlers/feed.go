package handlers

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboards connect from a different origin
	},
}

// CaseFeedHub holds the dashboards subscribed to case lifecycle events
type CaseFeedHub struct {
	clients map[string]*websocket.Conn
	mutex   sync.Mutex
}

var hub = &CaseFeedHub{
	clients: make(map[string]*websocket.Conn),
	mutex:   sync.Mutex{},
}

// HandleCaseFeed upgrades the connection and keeps it registered until the
// dashboard disconnects
func HandleCaseFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade failed", "error", err)
		return
	}

	clientID := uuid.New().String()

	hub.mutex.Lock()
	hub.clients[clientID] = conn
	hub.mutex.Unlock()
	zap.S().Debugw("dashboard connected to /ws/cases", "client", clientID)

	conn.SetCloseHandler(func(code int, text string) error {
		hub.mutex.Lock()
		delete(hub.clients, clientID)
		hub.mutex.Unlock()
		zap.S().Debugw("dashboard disconnected from /ws/cases", "client", clientID)
		return nil
	})

	// drain reads to keep the connection alive
	for {
		if _, _, err := conn.NextReader(); err != nil {
			conn.Close()
			break
		}
	}
}

// broadcastCaseEvent pushes a lifecycle event to every connected dashboard
func broadcastCaseEvent(eventType string, data interface{}) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for clientID, conn := range hub.clients {
		err := conn.WriteJSON(map[string]interface{}{
			"event": eventType,
			"data":  data,
		})
		if err != nil {
			zap.S().Errorw("dropping stale case feed client", "client", clientID, "error", err)
			delete(hub.clients, clientID)
			conn.Close()
		}
	}
}
