package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/naijapath/routeviz/internal/models"
	"github.com/naijapath/routeviz/internal/service"
)

// maxStateIDLength bounds state identifiers accepted from clients.
const maxStateIDLength = 64

// RouteHandler serves the find-route, reset and status actions.
type RouteHandler struct {
	svc     RouteService
	history HistoryReader
	log     *logrus.Logger
}

// NewRouteHandler creates a RouteHandler. history may be nil.
func NewRouteHandler(svc RouteService, history HistoryReader, log *logrus.Logger) *RouteHandler {
	return &RouteHandler{svc: svc, history: history, log: log}
}

type routeRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	SpeedMS     int64  `json:"speed_ms"`
}

type routeResponse struct {
	Result   *models.PathResult `json:"result"`
	PathInfo *models.PathInfo   `json:"path_info"`
	Panel    service.Panel      `json:"panel"`
}

type statusResponse struct {
	service.Status
	Panel service.Panel `json:"panel"`
}

// Find handles POST /api/v1/route.
func (h *RouteHandler) Find(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	req.Origin = strings.TrimSpace(req.Origin)
	req.Destination = strings.TrimSpace(req.Destination)

	for _, f := range [...]struct{ name, value string }{
		{"origin", req.Origin},
		{"destination", req.Destination},
	} {
		field, v := f.name, f.value
		if v == "" {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, field+" is required")

			return
		}
		if len(v) > maxStateIDLength {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, models.ErrFieldTooLong(field, maxStateIDLength).Error())

			return
		}
	}

	if req.SpeedMS < 0 {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "speed_ms must not be negative")

		return
	}

	res, err := h.svc.RunRoute(c.Request.Context(), req.Origin, req.Destination, msToDuration(req.SpeedMS))
	if err != nil {
		h.respondRouteError(c, err)

		return
	}

	h.log.WithFields(logrus.Fields{
		"origin":      req.Origin,
		"destination": req.Destination,
		"states":      len(res.Path),
	}).Info("route served")

	c.JSON(http.StatusOK, routeResponse{Result: res, PathInfo: res.Info(), Panel: h.svc.Panel()})
}

func (h *RouteHandler) respondRouteError(c *gin.Context, err error) {
	var (
		verr *models.ValidationError
		rerr *service.RouteError
	)

	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, verr.Message)
	case errors.As(err, &rerr):
		respondError(c, http.StatusBadGateway, ErrCodeRouteFailed, rerr.Message)
	case errors.Is(err, service.ErrSuperseded):
		respondError(c, http.StatusConflict, ErrCodeSuperseded, "request was superseded by a newer request or a reset")
	default:
		h.log.WithError(err).Error("running route")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}

// Reset handles POST /api/v1/reset.
func (h *RouteHandler) Reset(c *gin.Context) {
	h.svc.Reset()
	c.JSON(http.StatusOK, statusResponse{Status: h.svc.Status(), Panel: h.svc.Panel()})
}

// Status handles GET /api/v1/status.
func (h *RouteHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{Status: h.svc.Status(), Panel: h.svc.Panel()})
}

// History handles GET /api/v1/history.
func (h *RouteHandler) History(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusOK, gin.H{"entries": []service.HistoryEntry{}})

		return
	}

	limit := parseInt(c.DefaultQuery("limit", "20"), 20)
	c.JSON(http.StatusOK, gin.H{"entries": h.history.Recent(limit)})
}
