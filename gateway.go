/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Seednode/charades/games/charades"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"golang.org/x/time/rate"
)

const (
	sendBuffer     = 32
	maxMessageSize = 4096
	writeWait      = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Dispatcher is the engine surface the gateway drives.
type Dispatcher interface {
	Connect(conn charades.ConnID)
	Dispatch(conn charades.ConnID, event string, data json.RawMessage) error
	Disconnect(conn charades.ConnID)
}

// frame is the wire envelope in both directions.
type frame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type Client struct {
	id      charades.ConnID
	conn    *websocket.Conn
	send    chan frame
	limiter *rate.Limiter
}

// Gateway implements charades.Notifier over websocket connections. Sends never
// block: a client whose queue is full misses the message.
type Gateway struct {
	mu       sync.RWMutex
	clients  map[charades.ConnID]*Client
	channels map[string]map[charades.ConnID]struct{}
}

func NewGateway() *Gateway {
	return &Gateway{
		clients:  make(map[charades.ConnID]*Client),
		channels: make(map[string]map[charades.ConnID]struct{}),
	}
}

func (gw *Gateway) register(c *Client) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	gw.clients[c.id] = c
}

// unregister forgets c and closes its queue, which stops its write pump.
func (gw *Gateway) unregister(c *Client) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	if _, ok := gw.clients[c.id]; !ok {
		return
	}
	delete(gw.clients, c.id)
	for code, members := range gw.channels {
		delete(members, c.id)
		if len(members) == 0 {
			delete(gw.channels, code)
		}
	}
	close(c.send)
}

// trySend must be called with gw.mu held.
func (gw *Gateway) trySend(c *Client, f frame) {
	select {
	case c.send <- f:
	default:
		log.Warn().Str("module", "gateway").Str("conn", string(c.id)).Str("event", f.Event).Msg("send queue full, dropping")
	}
}

func (gw *Gateway) SendTo(conn charades.ConnID, event string, payload any) {
	gw.mu.RLock()
	defer gw.mu.RUnlock()

	if c, ok := gw.clients[conn]; ok {
		gw.trySend(c, frame{Event: event, Data: payload})
	}
}

func (gw *Gateway) Broadcast(code string, event string, payload any) {
	gw.mu.RLock()
	defer gw.mu.RUnlock()

	f := frame{Event: event, Data: payload}
	for id := range gw.channels[code] {
		if c, ok := gw.clients[id]; ok {
			gw.trySend(c, f)
		}
	}
}

func (gw *Gateway) JoinChannel(conn charades.ConnID, code string) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	if _, ok := gw.clients[conn]; !ok {
		return
	}
	members, ok := gw.channels[code]
	if !ok {
		members = make(map[charades.ConnID]struct{})
		gw.channels[code] = members
	}
	members[conn] = struct{}{}
}

func (gw *Gateway) LeaveChannel(conn charades.ConnID, code string) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	members, ok := gw.channels[code]
	if !ok {
		return
	}
	delete(members, conn)
	if len(members) == 0 {
		delete(gw.channels, code)
	}
}

// Members reports how many connections are subscribed to code.
func (gw *Gateway) Members(code string) int {
	gw.mu.RLock()
	defer gw.mu.RUnlock()

	return len(gw.channels[code])
}

// Close drops every connection. Their read pumps then disconnect them from
// the engine as usual.
func (gw *Gateway) Close() {
	gw.mu.RLock()
	defer gw.mu.RUnlock()

	for _, c := range gw.clients {
		_ = c.conn.Close()
	}
}

func serveWS(cfg *Config, gw *Gateway, d Dispatcher) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Debug().Str("module", "gateway").Str("remote", realIP(r)).Err(err).Msg("upgrade failed")
			return
		}

		c := &Client{
			id:      charades.ConnID(uuid.NewString()),
			conn:    conn,
			send:    make(chan frame, sendBuffer),
			limiter: cfg.limiter(),
		}

		gw.register(c)
		d.Connect(c.id)

		log.Info().Str("module", "gateway").Str("conn", string(c.id)).Str("remote", realIP(r)).Msg("client connected")

		var wg conc.WaitGroup
		wg.Go(c.writePump)
		wg.Go(func() { c.readPump(gw, d) })
		wg.Wait()

		log.Info().Str("module", "gateway").Str("conn", string(c.id)).Msg("client disconnected")
	}
}

// readPump feeds inbound frames to d in arrival order. When the socket closes
// the engine sees exactly one Disconnect.
func (c *Client) readPump(gw *Gateway, d Dispatcher) {
	defer func() {
		d.Disconnect(c.id)
		gw.unregister(c)
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Str("module", "gateway").Str("conn", string(c.id)).Err(err).Msg("read failed")
			}
			return
		}

		if !c.limiter.Allow() {
			gw.SendTo(c.id, charades.EventError, charades.ErrorMessage{
				Code:    charades.CodeRateLimited,
				Message: charades.ErrRateLimited.Message,
			})
			continue
		}

		var in inboundFrame
		if err := json.Unmarshal(data, &in); err != nil || in.Event == "" {
			gw.SendTo(c.id, charades.EventError, charades.ErrorMessage{
				Code:    charades.CodeValidation,
				Message: "Malformed frame.",
			})
			continue
		}

		if in.Event == charades.EventDisconnect {
			return
		}

		_ = d.Dispatch(c.id, in.Event, in.Data)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for f := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(f); err != nil {
			return
		}
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
