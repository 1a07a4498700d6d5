// README: Base handler utilities (JSON helpers, coordinate parsing, error mapping).
package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"strada/internal/modules/driver"
	"strada/internal/modules/rideevent"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// parseLatLng pulls lat/lng from the query string. Rejects non-numeric and
// non-finite values before they can poison a grid key.
func parseLatLng(c *gin.Context) (lat, lng float64, ok bool) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil || math.IsNaN(lat) || math.IsInf(lat, 0) {
		writeError(c, http.StatusBadRequest, "invalid lat")
		return 0, 0, false
	}
	lng, err = strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil || math.IsNaN(lng) || math.IsInf(lng, 0) {
		writeError(c, http.StatusBadRequest, "invalid lng")
		return 0, 0, false
	}
	return lat, lng, true
}

func writeDriverError(c *gin.Context, err error) {
	switch err {
	case driver.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeEventError(c *gin.Context, err error) {
	switch err {
	case rideevent.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case rideevent.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
