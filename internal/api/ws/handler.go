package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/session"
	"github.com/GriffinCanCode/PelkOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PelkOS/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/PelkOS/backend/internal/shared/id"
	"github.com/GriffinCanCode/PelkOS/backend/internal/utils"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	outBuffer  = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// Message is a client request on the stream
type Message struct {
	Type   string  `json:"type"`
	Window string  `json:"window,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Key    string  `json:"key,omitempty"`
	Line   string  `json:"line,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Handler manages WebSocket connections
type Handler struct {
	sessions *session.Manager
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
	logger   *zap.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(sessions *session.Manager, metrics *monitoring.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
	}
}

// WithTracer traces every client message except drag_move
func (h *Handler) WithTracer(tracer *tracing.Tracer) *Handler {
	h.tracer = tracer
	return h
}

// conn is one upgraded connection. Only the write loop writes to ws.
type conn struct {
	id      string
	ctx     context.Context
	ws      *websocket.Conn
	session *session.Session
	out     chan any
	done    chan struct{}
	once    sync.Once
	logger  *zap.Logger
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
}

// HandleConnection upgrades the request and streams the desktop's events
func (h *Handler) HandleConnection(c *gin.Context) {
	desktopID, err := id.ParseDesktopID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid desktop id"})
		return
	}
	s, err := h.sessions.Get(desktopID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	wsConn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	cn := &conn{
		id:      uuid.New().String(),
		ctx:     context.WithoutCancel(c.Request.Context()),
		ws:      wsConn,
		session: s,
		out:     make(chan any, outBuffer),
		done:    make(chan struct{}),
		metrics: h.metrics,
		tracer:  h.tracer,
	}
	cn.logger = h.logger.With(
		zap.String("connection_id", cn.id),
		zap.String("desktop_id", s.ID.String()),
	)

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}
	cn.logger.Info("WebSocket connected")
	defer cn.logger.Info("WebSocket disconnected")

	// Subscribe before the snapshot so no event falls between them
	events, cancel := s.Subscribe(session.DefaultSubscriberBuffer)
	defer cancel()

	view := s.View()
	if err := cn.write(gin.H{
		"type":          "system",
		"message":       "Connected to PelkOS desktop",
		"connection_id": cn.id,
		"state":         view,
	}, "system"); err != nil {
		cn.ws.Close()
		return
	}

	go cn.writeLoop(events, view.Desktop.Seq)
	cn.readLoop()
}

// readLoop handles client messages until the connection fails
func (cn *conn) readLoop() {
	defer cn.stop()

	cn.ws.SetReadLimit(utils.MaxMessageSize)
	_ = cn.ws.SetReadDeadline(time.Now().Add(pongWait))
	cn.ws.SetPongHandler(func(string) error {
		return cn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := cn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				cn.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		var msg Message
		if err := sonic.Unmarshal(data, &msg); err != nil {
			cn.replyError("invalid message")
			continue
		}
		if cn.metrics != nil {
			cn.metrics.RecordWSMessage("in", msg.Type)
		}

		cn.handle(msg)
	}
}

// handle dispatches msg inside a span continuing the upgrade request's trace
func (cn *conn) handle(msg Message) {
	if cn.tracer == nil || msg.Type == desktop.OpDragMove {
		cn.dispatch(msg)
		return
	}

	span, _ := cn.tracer.Start(cn.ctx, tracing.KindWS, msg.Type, cn.session.ID.String())
	span.SetAttr("connection.id", cn.id)
	if msg.Window != "" {
		span.SetAttr("window.id", msg.Window)
	}
	cn.dispatch(msg)
	cn.tracer.End(span, 0, nil)
}

// writeLoop is the only writer once started: session events, replies and
// pings. Desktop events already folded into the welcome snapshot are skipped.
func (cn *conn) writeLoop(events <-chan session.Event, since uint64) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cn.stop()
		cn.ws.Close()
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				cn.closeNormal("desktop closed")
				return
			}
			if ev.Desktop != nil && ev.Desktop.Seq <= since {
				continue
			}
			if err := cn.write(ev, ev.Type); err != nil {
				return
			}
		case msg := <-cn.out:
			if err := cn.write(msg, "reply"); err != nil {
				return
			}
		case <-ticker.C:
			_ = cn.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cn.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-cn.done:
			return
		}
	}
}

func (cn *conn) write(v any, msgType string) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		cn.logger.Error("Failed to encode WebSocket message", zap.Error(err))
		return nil
	}

	_ = cn.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := cn.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		cn.logger.Debug("WebSocket write failed", zap.Error(err))
		return err
	}
	if cn.metrics != nil {
		cn.metrics.RecordWSMessage("out", msgType)
	}
	return nil
}

func (cn *conn) closeNormal(reason string) {
	_ = cn.ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = cn.ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))
}

func (cn *conn) stop() {
	cn.once.Do(func() { close(cn.done) })
}

// reply queues a message for the write loop
func (cn *conn) reply(v any) {
	select {
	case cn.out <- v:
	case <-cn.done:
	}
}

func (cn *conn) replyError(message string) {
	cn.reply(gin.H{"type": "error", "message": message})
}

func (cn *conn) ack(op string, success bool) {
	cn.reply(gin.H{"type": "ack", "op": op, "success": success})
}

// dispatch applies one client message to the session
func (cn *conn) dispatch(msg Message) {
	s := cn.session
	d := s.Desktop()
	s.Touch()

	switch msg.Type {
	case "ping":
		cn.reply(gin.H{"type": "pong"})

	case "state":
		cn.reply(gin.H{"type": "state", "state": s.View()})

	case desktop.OpOpen, desktop.OpClose, desktop.OpMinimize,
		desktop.OpMaximize, desktop.OpToggle, desktop.OpFocus, "taskbar_click":
		if !cn.validWindow(msg.Window) {
			return
		}
		cn.ack(msg.Type, windowOp(d, msg.Type, msg.Window))

	case desktop.OpDragStart:
		if !cn.validWindow(msg.Window) {
			return
		}
		cn.ack(msg.Type, d.DragStart(msg.Window, desktop.Point{X: msg.X, Y: msg.Y}))

	case desktop.OpDragMove:
		// The desktop event carries the clamped geometry
		d.DragMove(desktop.Point{X: msg.X, Y: msg.Y})

	case desktop.OpDragEnd:
		cn.ack(msg.Type, d.DragEnd())

	case "boot":
		cn.ack(msg.Type, s.Press(msg.Key))

	case "terminal":
		if err := utils.ValidateTerminalLine(msg.Line); err != nil {
			cn.replyError(err.Error())
			return
		}
		// The result is published on the stream
		if _, err := s.Execute(msg.Line); err != nil {
			cn.replyError(err.Error())
		}

	case desktop.OpViewport:
		if err := utils.ValidateViewport(msg.Width, msg.Height); err != nil {
			cn.replyError(err.Error())
			return
		}
		d.SetViewport(desktop.Viewport{
			Width:         msg.Width,
			Height:        msg.Height,
			TaskbarHeight: d.Viewport().TaskbarHeight,
		})

	default:
		cn.replyError("unknown message type")
	}
}

func (cn *conn) validWindow(win string) bool {
	if err := utils.ValidateWindowID(win); err != nil {
		cn.replyError(err.Error())
		return false
	}
	if !cn.session.Catalog().Has(win) {
		cn.replyError("unknown window: " + win)
		return false
	}
	return true
}

func windowOp(d *desktop.Desktop, op, win string) bool {
	switch op {
	case desktop.OpOpen:
		return d.Open(win)
	case desktop.OpClose:
		return d.Close(win)
	case desktop.OpMinimize:
		return d.Minimize(win)
	case desktop.OpMaximize:
		return d.Maximize(win)
	case desktop.OpToggle:
		return d.Toggle(win)
	case desktop.OpFocus:
		return d.Focus(win)
	default:
		return d.TaskbarClick(win)
	}
}
