// Package remote feeds pointer events from a websocket into a grip
// surface, letting a remote client (a browser page, a test harness, a
// phone) drive gestures on a local host. Messages use a small JSON
// protocol; grip.Stage's Inject method is a ready-made sink.
package remote

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/phanxgames/grip"
)

// Message is a control websocket payload.
//
//	{"t":"down","x":40,"y":12,"button":0}
//	{"t":"tmove","id":3,"x":100,"y":80}
type Message struct {
	T      string  `json:"t"`
	ID     int64   `json:"id,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Button int     `json:"button,omitempty"`
}

// Handler accepts one control connection at a time and injects decoded
// events into the target. It implements http.Handler.
type Handler struct {
	upgrader websocket.Upgrader
	target   grip.Injector

	mu      sync.Mutex
	conn    *websocket.Conn
	touches []grip.Touch
}

// NewHandler creates a handler injecting into target.
func NewHandler(target grip.Injector) *Handler {
	return &Handler{
		target: target,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and processes control messages until
// the client disconnects or sends an invalid message.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := h.acceptConn(conn); err != nil {
		_ = conn.Close()
		return
	}
	defer h.cleanupConn(conn)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		e, err := h.translate(msg)
		if err != nil {
			return
		}
		h.target.Inject(e)
	}
}

// acceptConn ensures only one active control connection exists.
func (h *Handler) acceptConn(conn *websocket.Conn) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conn != nil {
		return fmt.Errorf("control connection already active")
	}
	h.conn = conn
	return nil
}

func (h *Handler) cleanupConn(conn *websocket.Conn) {
	h.mu.Lock()
	if h.conn == conn {
		h.conn = nil
		h.touches = nil
	}
	h.mu.Unlock()
	_ = conn.Close()
}

// translate maps a protocol message to a pointer event, maintaining the
// active touch set across messages so touch events carry the full list.
func (h *Handler) translate(msg Message) (*grip.PointerEvent, error) {
	switch msg.T {
	case "down":
		return &grip.PointerEvent{
			Kind: grip.KindPress, Family: grip.FamilyMouse,
			Button: grip.MouseButton(msg.Button), X: msg.X, Y: msg.Y,
		}, nil
	case "move":
		return &grip.PointerEvent{
			Kind: grip.KindMove, Family: grip.FamilyMouse,
			X: msg.X, Y: msg.Y,
		}, nil
	case "up":
		return &grip.PointerEvent{
			Kind: grip.KindRelease, Family: grip.FamilyMouse,
			Button: grip.MouseButton(msg.Button), X: msg.X, Y: msg.Y,
		}, nil
	case "tdown":
		h.setTouch(grip.Touch{ID: msg.ID, X: msg.X, Y: msg.Y})
		return &grip.PointerEvent{
			Kind: grip.KindPress, Family: grip.FamilyTouch,
			Touches: h.snapshot(), TouchID: msg.ID,
		}, nil
	case "tmove":
		h.setTouch(grip.Touch{ID: msg.ID, X: msg.X, Y: msg.Y})
		return &grip.PointerEvent{
			Kind: grip.KindMove, Family: grip.FamilyTouch,
			Touches: h.snapshot(),
		}, nil
	case "tup":
		h.setTouch(grip.Touch{ID: msg.ID, X: msg.X, Y: msg.Y})
		ended := h.snapshot()
		h.dropTouch(msg.ID)
		return &grip.PointerEvent{
			Kind: grip.KindRelease, Family: grip.FamilyTouch,
			Touches: ended, TouchID: msg.ID,
		}, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", msg.T)
	}
}

func (h *Handler) setTouch(t grip.Touch) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.touches {
		if h.touches[i].ID == t.ID {
			h.touches[i] = t
			return
		}
	}
	h.touches = append(h.touches, t)
}

func (h *Handler) dropTouch(id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.touches {
		if h.touches[i].ID == id {
			h.touches = append(h.touches[:i], h.touches[i+1:]...)
			return
		}
	}
}

func (h *Handler) snapshot() []grip.Touch {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]grip.Touch(nil), h.touches...)
}
