package ws

import (
	"context"
	"time"

	"transfer-admin/internal/admin-service/core/domain/model"

	"github.com/gorilla/websocket"
)

const (
	egressBuffer = 16
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = (pongWait * 9) / 10
)

type Client struct {
	ctx    context.Context
	conn   *websocket.Conn
	dis    *Dispatcher
	egress chan model.ActivityLog
	userId string
}

func NewClient(ctx context.Context, conn *websocket.Conn, dis *Dispatcher, userId string) *Client {
	return &Client{
		ctx:    ctx,
		conn:   conn,
		dis:    dis,
		egress: make(chan model.ActivityLog, egressBuffer),
		userId: userId,
	}
}

// ReadMessage drains the connection. The feed is one-way, so inbound frames
// only matter for close and pong control handling.
func (c *Client) ReadMessage() {
	defer c.dis.RemoveClient(c)

	c.conn.SetReadLimit(1024)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WriteMessage() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.dis.RemoveClient(c)
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		case rec, ok := <-c.egress:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(rec); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
