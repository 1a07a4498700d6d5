// README: Zone metrics read endpoint.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"strada/internal/modules/zone"
)

type ZoneHandler struct {
	zones *zone.Service
}

func NewZoneHandler(svc *zone.Service) *ZoneHandler {
	return &ZoneHandler{zones: svc}
}

// ID resolves a coordinate to its grid cell without computing metrics.
func (h *ZoneHandler) ID(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}
	id := zone.GridID(lat, lng)
	center, err := zone.GridCenter(id)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"zone_id": id, "center": center})
}

func (h *ZoneHandler) Metrics(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}
	m, err := h.zones.Metrics(c.Request.Context(), lat, lng)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, m)
}
