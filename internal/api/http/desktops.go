package http

import (
	"net/http"

	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/PelkOS/backend/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BootRequest is a key press on the boot screen
type BootRequest struct {
	Key string `json:"key" binding:"required"`
}

// ViewportRequest is the browser's new inner size
type ViewportRequest struct {
	Width  float64 `json:"width" binding:"required"`
	Height float64 `json:"height" binding:"required"`
}

// TerminalRequest is one line typed into the terminal
type TerminalRequest struct {
	Line string `json:"line"`
}

// CreateDesktop starts a new desktop session
func (h *Handlers) CreateDesktop(c *gin.Context) {
	s, err := h.sessions.Create()
	if err != nil {
		h.logger.Warn("Failed to create desktop", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.View())
}

// ListDesktops lists live desktop sessions
func (h *Handlers) ListDesktops(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"desktops": h.sessions.List(),
		"stats":    h.sessions.Stats(),
	})
}

// GetDesktop returns a desktop's full state
func (h *Handlers) GetDesktop(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.View())
}

// CloseDesktop ends a desktop session
func (h *Handlers) CloseDesktop(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := h.sessions.Close(s.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "desktop_id": s.ID})
}

// Boot forwards a key press to the boot screen
func (h *Handlers) Boot(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req BootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booted := s.Press(req.Key)
	c.JSON(http.StatusOK, gin.H{
		"success": booted,
		"booted":  s.Booted(),
	})
}

// SetViewport updates the bounds used for clamping and maximize
func (h *Handlers) SetViewport(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req ViewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateViewport(req.Width, req.Height); err != nil {
		respondError(c, err)
		return
	}

	d := s.Desktop()
	d.SetViewport(desktop.Viewport{
		Width:         req.Width,
		Height:        req.Height,
		TaskbarHeight: d.Viewport().TaskbarHeight,
	})
	c.JSON(http.StatusOK, gin.H{"viewport": d.Viewport()})
}

// Terminal runs one line in the terminal window
func (h *Handlers) Terminal(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req TerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateTerminalLine(req.Line); err != nil {
		respondError(c, err)
		return
	}

	r, err := s.Execute(req.Line)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
