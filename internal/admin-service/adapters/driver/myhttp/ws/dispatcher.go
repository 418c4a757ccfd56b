package ws

import (
	"context"
	"net/http"
	"sync"

	"transfer-admin/internal/admin-service/core/domain/model"
	"transfer-admin/internal/mylogger"

	"github.com/gorilla/websocket"
)

// websocketUpgrader is used to upgrade incoming HTTP requests into a persistent websocket connection
var websocketUpgrader = websocket.Upgrader{
	// TODO: restrict origins once the portal's public hostname is fixed
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ClientList is a map used to help manage a map of clients
type ClientList map[*Client]bool

// Dispatcher fans recorded activity out to every connected admin dashboard.
type Dispatcher struct {
	clients ClientList
	sync.RWMutex
	log mylogger.Logger
}

func NewDispatcher(log mylogger.Logger) *Dispatcher {
	return &Dispatcher{
		clients: make(ClientList),
		log:     log,
	}
}

// WsHandler upgrades the request and registers the dashboard connection.
// Authentication already happened in the middleware chain.
func (d *Dispatcher) WsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := d.log.Action("wsHandler")

		userId := r.Header.Get("X-UserId")
		if userId == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		conn, err := websocketUpgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("cannot upgrade", err)
			return
		}

		// The request context dies when this handler returns, the hijacked
		// connection outlives it.
		client := NewClient(context.Background(), conn, d, userId)
		d.AddClient(client)
		log.Info("dashboard connected", "user_id", userId)

		go client.ReadMessage()
		go client.WriteMessage()
	}
}

// Broadcast queues the record on every connected client. Slow clients are
// skipped rather than blocking the caller.
func (d *Dispatcher) Broadcast(rec model.ActivityLog) {
	d.RLock()
	defer d.RUnlock()

	for client := range d.clients {
		select {
		case client.egress <- rec:
		default:
		}
	}
}

func (d *Dispatcher) AddClient(client *Client) {
	d.Lock()
	defer d.Unlock()

	d.clients[client] = true
}

func (d *Dispatcher) RemoveClient(client *Client) {
	d.Lock()
	defer d.Unlock()

	if _, ok := d.clients[client]; ok {
		client.conn.Close()
		delete(d.clients, client)
	}
}
