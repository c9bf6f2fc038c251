package http

import (
	"net/http"

	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/session"
	"github.com/gin-gonic/gin"
)

// PointerRequest is a pointer position in viewport pixels
type PointerRequest struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
}

func (r PointerRequest) point() desktop.Point {
	return desktop.Point{X: *r.X, Y: *r.Y}
}

// windowActions maps route names to desktop operations
var windowActions = map[string]func(*desktop.Desktop, string) bool{
	desktop.OpOpen:     (*desktop.Desktop).Open,
	desktop.OpClose:    (*desktop.Desktop).Close,
	desktop.OpMinimize: (*desktop.Desktop).Minimize,
	desktop.OpMaximize: (*desktop.Desktop).Maximize,
	desktop.OpToggle:   (*desktop.Desktop).Toggle,
	desktop.OpFocus:    (*desktop.Desktop).Focus,
}

// WindowAction returns the handler for one lifecycle operation
func (h *Handlers) WindowAction(action string) gin.HandlerFunc {
	op, ok := windowActions[action]
	if !ok {
		panic("unknown window action: " + action)
	}

	return func(c *gin.Context) {
		s, ok := h.session(c)
		if !ok {
			return
		}
		win, ok := h.window(c, s)
		if !ok {
			return
		}

		changed := op(s.Desktop(), win)
		h.respondWindow(c, s, win, changed)
	}
}

// TaskbarClick routes a click on a taskbar entry
func (h *Handlers) TaskbarClick(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	win, ok := h.window(c, s)
	if !ok {
		return
	}

	changed := s.Desktop().TaskbarClick(win)
	h.respondWindow(c, s, win, changed)
}

// DragStart begins dragging a window
func (h *Handlers) DragStart(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	win, ok := h.window(c, s)
	if !ok {
		return
	}

	var req PointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changed := s.Desktop().DragStart(win, req.point())
	h.respondWindow(c, s, win, changed)
}

// DragMove moves the dragged window
func (h *Handlers) DragMove(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req PointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, moved := s.Desktop().DragMove(req.point())
	resp := gin.H{"success": moved}
	if moved {
		resp["geometry"] = g
	}
	c.JSON(http.StatusOK, resp)
}

// DragEnd finishes the current drag
func (h *Handlers) DragEnd(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	ended := s.Desktop().DragEnd()
	c.JSON(http.StatusOK, gin.H{
		"success": ended,
		"phase":   s.Desktop().DragPhase().String(),
	})
}

func (h *Handlers) respondWindow(c *gin.Context, s *session.Session, win string, changed bool) {
	d := s.Desktop()
	resp := gin.H{
		"success":   changed,
		"window_id": win,
		"taskbar":   d.Taskbar(),
	}
	if rec, ok := d.Window(win); ok {
		resp["window"] = rec
	}
	if active, ok := d.ActiveWindow(); ok {
		resp["active_window"] = active
	}
	c.JSON(http.StatusOK, resp)
}
