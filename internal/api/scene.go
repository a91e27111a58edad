package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/naijapath/routeviz/internal/models"
	"github.com/naijapath/routeviz/internal/scene"
)

// SceneHandler exposes the rendered scene as JSON and SVG, plus hover.
type SceneHandler struct {
	scene  SceneService
	events EventCursor
	log    *logrus.Logger
}

// NewSceneHandler creates a SceneHandler. events may be nil.
func NewSceneHandler(s SceneService, events EventCursor, log *logrus.Logger) *SceneHandler {
	return &SceneHandler{scene: s, events: events, log: log}
}

type sceneResponse struct {
	*scene.Snapshot
	LastEventID uint64 `json:"last_event_id"`
}

// Get handles GET /api/v1/scene. last_event_id lets a WebSocket client
// subscribe for everything after this snapshot.
func (h *SceneHandler) Get(c *gin.Context) {
	resp := sceneResponse{Snapshot: h.scene.Snapshot()}
	if h.events != nil {
		resp.LastEventID = h.events.LastEventID()
	}

	c.JSON(http.StatusOK, resp)
}

// SVG handles GET /api/v1/scene.svg.
func (h *SceneHandler) SVG(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.scene.WriteSVG(&buf); err != nil {
		h.log.WithError(err).Error("rendering scene svg")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", buf.Bytes())
}

// HoverEnter handles POST /api/v1/scene/nodes/:id/hover.
func (h *SceneHandler) HoverEnter(c *gin.Context) {
	h.hover(c, h.scene.HoverEnter, true)
}

// HoverLeave handles DELETE /api/v1/scene/nodes/:id/hover.
func (h *SceneHandler) HoverLeave(c *gin.Context) {
	h.hover(c, h.scene.HoverLeave, false)
}

func (h *SceneHandler) hover(c *gin.Context, fn func(string) error, hovered bool) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := fn(id); err != nil {
		if errors.Is(err, models.ErrNodeNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, err.Error())

			return
		}

		h.log.WithError(err).Error("hovering node")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "hovered": hovered})
}
