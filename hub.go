/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"net/http"

	"github.com/Seednode/clueless/game"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// viewMessage is the resolved view as pushed over the websocket and
// returned by /api/view.
type viewMessage struct {
	Type      string     `json:"type"` // "view"
	View      *game.View `json:"view,omitempty"`
	Error     string     `json:"error,omitempty"`      // why no view could be resolved
	SyncError string     `json:"sync_error,omitempty"` // last fetch failed; view may be stale
	Refresh   uint64     `json:"refresh"`
}

// errorMessage answers a single client whose request was refused.
type errorMessage struct {
	Type   string `json:"type"` // "error"
	Detail string `json:"detail"`
}

// clientMessage is what a browser may send.
type clientMessage struct {
	Type   string `json:"type"` // "refresh" or "displaced"
	Choice string `json:"choice,omitempty"`
}

func currentView(seat *game.Seat, syncErr error) viewMessage {
	msg := viewMessage{
		Type:    "view",
		Refresh: seat.Syncer.RefreshCount(),
	}

	if syncErr == nil {
		syncErr = seat.Syncer.LastError()
	}
	if syncErr != nil {
		msg.SyncError = syncErr.Error()
	}

	view, err := seat.View()
	if err != nil {
		msg.Error = err.Error()
	} else {
		msg.View = &view
	}

	return msg
}

type client struct {
	conn *websocket.Conn
	send chan any
}

type clientError struct {
	client *client
	err    error
}

// hub fans the seat's view out to every connected browser.
type hub struct {
	cfg  *Config
	seat *game.Seat

	clients map[*client]bool

	register chan *client
	unreg    chan *client
	refused  chan clientError
	changed  chan struct{}
	done     chan struct{}
}

func newHub(cfg *Config, seat *game.Seat) *hub {
	return &hub{
		cfg:      cfg,
		seat:     seat,
		clients:  make(map[*client]bool),
		register: make(chan *client),
		unreg:    make(chan *client),
		refused:  make(chan clientError),
		changed:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// notify asks the hub to push the view again without a new snapshot, as after
// a local displaced-prompt answer.
func (h *hub) notify() {
	select {
	case h.changed <- struct{}{}:
	default:
	}
}

func (h *hub) run(ctx context.Context) {
	updates, unsubscribe := h.seat.Syncer.Subscribe()
	defer unsubscribe()

	defer close(h.done)
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.clients[c] = true
			logf(h.cfg, "WS: Client connected (%d total)", len(h.clients))

			h.deliver(c, currentView(h.seat, nil))

		case c := <-h.unreg:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				logf(h.cfg, "WS: Client disconnected (%d total)", len(h.clients))
			}

		case ce := <-h.refused:
			if _, ok := h.clients[ce.client]; ok {
				h.deliver(ce.client, errorMessage{Type: "error", Detail: ce.err.Error()})
			}

		case u := <-updates:
			h.broadcast(currentView(h.seat, u.Err))

		case <-h.changed:
			h.broadcast(currentView(h.seat, nil))
		}
	}
}

// deliver and broadcast must only be called from run. A client too slow to
// keep up is dropped.
func (h *hub) deliver(c *client, msg any) {
	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *hub) broadcast(msg any) {
	for c := range h.clients {
		h.deliver(c, msg)
	}
}

func (h *hub) closeAll() {
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *hub) handle(c *client, msg clientMessage) {
	switch msg.Type {
	case "refresh":
		h.seat.Syncer.Trigger()
	case "displaced":
		if err := h.seat.Submitter.AnswerDisplaced(game.DisplacedChoice(msg.Choice)); err != nil {
			select {
			case h.refused <- clientError{client: c, err: err}:
			case <-h.done:
			}
			return
		}
		h.notify()
	default:
		// ignore unknown types
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func serveWS(cfg *Config, h *hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "WS: Upgrade for %s failed: %v", realIP(r), err)
			return
		}

		c := &client{
			conn: conn,
			send: make(chan any, 8),
		}

		select {
		case h.register <- c:
		case <-h.done:
			_ = conn.Close()
			return
		}

		go c.writePump()
		c.readPump(h)
	}
}

func (c *client) readPump(h *hub) {
	defer func() {
		select {
		case h.unreg <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		h.handle(c, msg)
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
