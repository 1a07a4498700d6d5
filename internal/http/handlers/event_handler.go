// README: Ride event log endpoints: append, history, point-in-time state,
// correlation groups, and the recent feed.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"strada/internal/modules/rideevent"
	"strada/internal/types"
)

type EventHandler struct {
	events *rideevent.Service
}

func NewEventHandler(svc *rideevent.Service) *EventHandler {
	return &EventHandler{events: svc}
}

type recordEventReq struct {
	EventType     string         `json:"event_type"`
	ActorID       *string        `json:"actor_id"`
	ActorRole     *string        `json:"actor_role"`
	Payload       map[string]any `json:"payload"`
	PreviousState *string        `json:"previous_state"`
	NewState      *string        `json:"new_state"`
	CorrelationID *string        `json:"correlation_id"`
	Metadata      map[string]any `json:"metadata"`
}

func (h *EventHandler) Record(c *gin.Context) {
	rideID := c.Param("id")
	if rideID == "" {
		writeError(c, http.StatusBadRequest, "missing ride id")
		return
	}
	var req recordEventReq
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	in := rideevent.Input{
		RideID:   types.ID(rideID),
		Type:     rideevent.Type(req.EventType),
		Payload:  req.Payload,
		Metadata: req.Metadata,
	}
	if req.ActorID != nil {
		id := types.ID(*req.ActorID)
		in.ActorID = &id
	}
	if req.ActorRole != nil {
		role := rideevent.ActorRole(*req.ActorRole)
		in.ActorRole = &role
	}
	if req.PreviousState != nil {
		t := rideevent.Type(*req.PreviousState)
		in.PreviousState = &t
	}
	if req.NewState != nil {
		t := rideevent.Type(*req.NewState)
		in.NewState = &t
	}
	if req.CorrelationID != nil {
		id := types.ID(*req.CorrelationID)
		in.CorrelationID = &id
	}

	id, err := h.events.Record(c.Request.Context(), in)
	if err != nil {
		writeEventError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{"event_id": id})
}

func (h *EventHandler) History(c *gin.Context) {
	rideID := c.Param("id")
	if rideID == "" {
		writeError(c, http.StatusBadRequest, "missing ride id")
		return
	}

	var (
		events []rideevent.Event
		err    error
	)
	if t := c.Query("type"); t != "" {
		events, err = h.events.ByType(c.Request.Context(), types.ID(rideID), rideevent.Type(t))
	} else {
		events, err = h.events.History(c.Request.Context(), types.ID(rideID))
	}
	if err != nil {
		writeEventError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"ride_id": rideID, "events": events})
}

func (h *EventHandler) StateAt(c *gin.Context) {
	rideID := c.Param("id")
	if rideID == "" {
		writeError(c, http.StatusBadRequest, "missing ride id")
		return
	}
	at := time.Now()
	if v := c.Query("at"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid at timestamp, want RFC3339")
			return
		}
		at = parsed
	}
	e, err := h.events.StateAt(c.Request.Context(), types.ID(rideID), at)
	if err != nil {
		writeEventError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"ride_id": rideID,
		"at":      at.Format(time.RFC3339),
		"state":   e.Type,
		"event":   e,
	})
}

func (h *EventHandler) ByCorrelation(c *gin.Context) {
	corrID := c.Param("id")
	if corrID == "" {
		writeError(c, http.StatusBadRequest, "missing correlation id")
		return
	}
	events, err := h.events.ByCorrelation(c.Request.Context(), types.ID(corrID))
	if err != nil {
		writeEventError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"correlation_id": corrID, "events": events})
}

func (h *EventHandler) Recent(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	events, err := h.events.Recent(c.Request.Context(), limit)
	if err != nil {
		writeEventError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"events": events})
}
