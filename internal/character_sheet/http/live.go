package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/domain"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/view"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	outboxSize     = 16
)

var errUnknownMessage = errors.New("unknown message type")

func newUpgrader(allowedOrigins []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
}

// originChecker accepts requests without an Origin header, same-host pages
// and the configured CORS origins. "*" accepts everything.
func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[strings.TrimRight(o, "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowed[origin] {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

// Edit message kinds accepted on the live socket.
const (
	EditAbility     = "ability"
	EditLevel       = "level"
	EditProficiency = "proficiency"
	EditField       = "field"
)

// EditMessage is one user edit sent by the page.
type EditMessage struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Value   string `json:"value,omitempty"`
	Checked bool   `json:"checked,omitempty"`
}

// LiveMessage is pushed to the page: the initial state, update batches and errors.
type LiveMessage struct {
	Type    string        `json:"type"`
	State   *view.State   `json:"state,omitempty"`
	Updates []view.Update `json:"updates,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Live upgrades to a websocket. Edits come in as EditMessage; every batch of
// recomputed elements for the session is pushed back, including batches
// caused by other connections or the REST endpoints.
func (h *Handler) Live(c *gin.Context) {
	sid := middleware.SessionID(c)
	ctx := context.WithoutCancel(c.Request.Context())
	logger := logging.NewLogger(ctx)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.LogErrorf("sheet_ws", "upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, unsubscribe := h.svc.Feed().Subscribe(sid)
	defer unsubscribe()

	outbox := make(chan LiveMessage, outboxSize)
	writerDone := make(chan struct{})
	readerDone := make(chan struct{})

	st := h.svc.State(ctx, sid)
	outbox <- LiveMessage{Type: "state", State: &st}

	go func() {
		defer close(writerDone)
		writeLoop(conn, updates, outbox, readerDone)
	}()

	logger.LogInfo("sheet_ws", "live connection opened")
	h.readLoop(ctx, conn, sid, outbox, writerDone)
	close(readerDone)
	<-writerDone
	logger.LogInfo("sheet_ws", "live connection closed")
}

func (h *Handler) readLoop(ctx context.Context, conn *websocket.Conn, sid string, outbox chan<- LiveMessage, writerDone <-chan struct{}) {
	logger := logging.NewLogger(ctx)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.LogWarnf("sheet_ws", "read failed: %v", err)
			}
			return
		}

		var msg EditMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			reply(outbox, writerDone, LiveMessage{Type: "error", Error: "invalid message"})
			continue
		}
		if err := h.apply(ctx, sid, msg); err != nil {
			reply(outbox, writerDone, LiveMessage{Type: "error", Error: err.Error()})
		}
	}
}

func reply(outbox chan<- LiveMessage, writerDone <-chan struct{}, msg LiveMessage) {
	select {
	case outbox <- msg:
	case <-writerDone:
	}
}

// apply routes one edit to the service. Resulting updates arrive through the feed.
func (h *Handler) apply(ctx context.Context, sid string, msg EditMessage) error {
	switch msg.Type {
	case EditAbility:
		_, err := h.svc.SetAbility(ctx, sid, domain.Ability(msg.ID), msg.Value)
		return err
	case EditLevel:
		h.svc.SetLevel(ctx, sid, msg.Value)
		return nil
	case EditProficiency:
		_, err := h.svc.SetProficiency(ctx, sid, msg.ID, msg.Checked)
		return err
	case EditField:
		return h.svc.SetField(ctx, sid, msg.ID, msg.Value)
	default:
		return errUnknownMessage
	}
}

func writeLoop(conn *websocket.Conn, updates <-chan []view.Update, outbox <-chan LiveMessage, readerDone <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	write := func(msg LiveMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(msg)
	}

	for {
		select {
		case batch, ok := <-updates:
			if !ok {
				return
			}
			if err := write(LiveMessage{Type: "updates", Updates: batch}); err != nil {
				conn.Close()
				return
			}
		case msg := <-outbox:
			if err := write(msg); err != nil {
				conn.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		case <-readerDone:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
