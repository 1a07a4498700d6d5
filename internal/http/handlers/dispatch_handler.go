// README: Dispatch endpoints for thresholds, guarantee claims, and flow advice.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"strada/internal/modules/dispatch"
	"strada/internal/types"
)

type DispatchHandler struct {
	dispatch *dispatch.Service
}

func NewDispatchHandler(svc *dispatch.Service) *DispatchHandler {
	return &DispatchHandler{dispatch: svc}
}

func (h *DispatchHandler) Thresholds(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}
	t, err := h.dispatch.Thresholds(c.Request.Context(), lat, lng)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, t)
}

type guaranteeReq struct {
	DriverID    string  `json:"driver_id"`
	WaitMinutes float64 `json:"wait_minutes"`
}

func (h *DispatchHandler) EvaluateGuarantee(c *gin.Context) {
	var req guaranteeReq
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.DriverID == "" {
		writeError(c, http.StatusBadRequest, "missing driver_id")
		return
	}
	if req.WaitMinutes < 0 {
		writeError(c, http.StatusBadRequest, "wait_minutes must be non-negative")
		return
	}
	d, err := h.dispatch.EvaluateGuarantee(c.Request.Context(), types.ID(req.DriverID), req.WaitMinutes)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, d)
}

func (h *DispatchHandler) RecommendFlow(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}
	rec, err := h.dispatch.RecommendFlow(c.Request.Context(), lat, lng)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, rec)
}
