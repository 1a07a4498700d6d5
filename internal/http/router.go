// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"strada/internal/http/handlers"
	"strada/internal/http/middleware"
	"strada/internal/modules/density"
	"strada/internal/modules/dispatch"
	"strada/internal/modules/driver"
	"strada/internal/modules/rideevent"
	"strada/internal/modules/zone"
)

type RouterDeps struct {
	Zones    *zone.Service
	Density  *density.Service
	Dispatch *dispatch.Service
	Drivers  *driver.Service
	Events   *rideevent.Service
	Log      zerolog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log), middleware.Logging(deps.Log))

	zoneHandler := handlers.NewZoneHandler(deps.Zones)
	r.GET("/api/zones/id", zoneHandler.ID)
	r.GET("/api/zones/metrics", zoneHandler.Metrics)

	densityHandler := handlers.NewDensityHandler(deps.Density)
	r.GET("/api/city/density", densityHandler.Classify)

	dispatchHandler := handlers.NewDispatchHandler(deps.Dispatch)
	r.GET("/api/dispatch/thresholds", dispatchHandler.Thresholds)
	r.POST("/api/dispatch/guarantee", dispatchHandler.EvaluateGuarantee)
	r.GET("/api/dispatch/flow", dispatchHandler.RecommendFlow)

	driverHandler := handlers.NewDriverHandler(deps.Drivers)
	r.POST("/api/drivers/:id/availability", driverHandler.SetAvailability)
	r.PUT("/api/drivers/:id/location", driverHandler.UpdateLocation)

	eventHandler := handlers.NewEventHandler(deps.Events)
	r.POST("/api/rides/:id/events", eventHandler.Record)
	r.GET("/api/rides/:id/events", eventHandler.History)
	r.GET("/api/rides/:id/state", eventHandler.StateAt)
	r.GET("/api/events/correlation/:id", eventHandler.ByCorrelation)
	r.GET("/api/events/recent", eventHandler.Recent)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
