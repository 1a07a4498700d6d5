// README: City density classification endpoint.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"strada/internal/modules/density"
)

type DensityHandler struct {
	density *density.Service
}

func NewDensityHandler(svc *density.Service) *DensityHandler {
	return &DensityHandler{density: svc}
}

func (h *DensityHandler) Classify(c *gin.Context) {
	snap, err := h.density.Classify(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, snap)
}
