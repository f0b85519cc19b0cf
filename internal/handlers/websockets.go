package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"animated_gauge/internal/animation"
	"animated_gauge/internal/card"
	"animated_gauge/internal/gauge"
	"animated_gauge/internal/locale"
	"animated_gauge/internal/models"
	"animated_gauge/internal/render"
	"animated_gauge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	maxFPS           = 120
	minFrameInterval = time.Second / maxFPS
	maxFrameInterval = time.Second
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Message types.
const (
	msgFrame  = "frame"
	msgConfig = "config"
)

// framePayload is one drawn frame. Value is the displayed (interpolated)
// value and is omitted when the gauge shows no finite value.
type framePayload struct {
	Value *float64    `json:"value,omitempty"`
	SVG   string      `json:"svg"`
	Scene gauge.Scene `json:"scene"`
}

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsSurface writes every drawn scene as a frame message. The first write
// error is kept and stops further writes.
type wsSurface struct {
	conn *websocket.Conn
	err  error
}

func (s *wsSurface) Draw(scene gauge.Scene, value float64) {
	p := framePayload{SVG: render.SVG(scene), Scene: scene}
	if scene.Available && !math.IsNaN(value) && !math.IsInf(value, 0) {
		p.Value = &value
	}
	s.send(wsEnvelope{Type: msgFrame, Data: p})
}

func (s *wsSurface) send(env wsEnvelope) {
	if s.err != nil {
		return
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	s.err = s.conn.WriteJSON(env)
}

// @Summary      Animated card stream
// @Description  Websocket: a config message, then one frame message per drawn frame
// @Tags         cards
// @Param        id    path   string  true   "Card id"
// @Param        lang  query  string  false  "Language (en, pl, de)"
// @Param        fps   query  int     false  "Frames per second (1-120)"
// @Router       /ws/cards/{id} [get]
func (h *Handler) wsCard(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	current, err := h.services.Cards.Get(ctx, id)
	if err != nil {
		h.respondServiceError(c, "ws_card_lookup_failed", err, "card", id)
		return
	}
	interval := h.parseFrameInterval(c)
	strs := locale.Lookup(c.Query("lang"), c.GetHeader("Accept-Language"))

	// Subscribe before the upgrade so no update between lookup and loop is lost.
	cardSub := h.services.Cards.SubscribeCard(id)
	defer cardSub.Close()
	entity := current.Config.Entity
	stateSub := h.services.States.SubscribeState(entity)
	defer func() { stateSub.Close() }()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	session := uuid.NewString()
	if h.log != nil {
		h.log.Infow("ws_session_opened", "session", session, "card", id, "entity", entity, "interval", interval)
		defer h.log.Infow("ws_session_closed", "session", session, "card", id)
	}

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	// The card, its scheduler and the frame loop belong to this goroutine.
	surface := &wsSurface{conn: conn}
	loop := animation.NewFrameLoop()
	gaugeCard := card.New(current.Config, loop, time.Now, surface)
	gaugeCard.SetLocale(strs)
	defer gaugeCard.Teardown()

	surface.send(wsEnvelope{Type: msgConfig, Data: newCardResponse(current)})
	gaugeCard.SetState(h.latestState(ctx, entity))

	frames := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		frames.Stop()
		ping.Stop()
	}()

	// Writer/select loop.
	for surface.err == nil {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "session", session, "err", err)
				}
				return
			}
		case now := <-frames.C:
			loop.Fire(now)
		case st := <-stateSub.C:
			gaugeCard.SetState(&st)
		case next := <-cardSub.C:
			gaugeCard.SetConfig(next.Config)
			if next.Config.Entity != entity {
				stateSub.Close()
				entity = next.Config.Entity
				stateSub = h.services.States.SubscribeState(entity)
				gaugeCard.SetState(h.latestState(ctx, entity))
			}
			surface.send(wsEnvelope{Type: msgConfig, Data: newCardResponse(next)})
		}
	}

	if h.log != nil && !isClosedConn(surface.err) {
		h.log.Infow("ws_write_failed", "session", session, "err", surface.err)
	}
}

// latestState returns the entity's snapshot, or nil when there is none yet.
func (h *Handler) latestState(ctx context.Context, entity string) *models.EntityState {
	st, err := h.services.States.Latest(ctx, entity)
	if err != nil {
		if h.log != nil && !errors.Is(err, service.ErrEntityNotFound) {
			h.log.Errorw("ws_get_state_failed", "entity", entity, "err", err)
		}
		return nil
	}
	return &st
}

// parseFrameInterval reads ?fps=30 or ?interval=33ms with bounds, falling
// back to the handler's frame interval.
func (h *Handler) parseFrameInterval(c *gin.Context) time.Duration {
	if s := c.Query("fps"); s != "" {
		if fps, err := strconv.Atoi(s); err == nil && fps > 0 && fps <= maxFPS {
			return time.Second / time.Duration(fps)
		}
	}

	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d >= minFrameInterval && d <= maxFrameInterval {
			return d
		}
	}

	return h.frameInterval
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil && !isClosedConn(err) {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

func isClosedConn(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
