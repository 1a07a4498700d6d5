// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"strada/internal/config"
	httptransport "strada/internal/http"
	"strada/internal/infra"
	"strada/internal/maps"
	"strada/internal/modules/density"
	"strada/internal/modules/dispatch"
	"strada/internal/modules/driver"
	"strada/internal/modules/rideevent"
	"strada/internal/modules/zone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal(err)
	}
	log := infra.NewLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	driverService := driver.NewService(driver.NewStore(redisClient))
	zoneService := zone.NewService(zone.NewStore(pool), driverService, cfg.Dispatch)
	densityService := density.NewService(density.NewStore(pool), driverService)

	var eta dispatch.ETAEstimator
	if cfg.Maps.APIKey != "" {
		routes, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatal().Err(err).Msg("maps client init failed")
		}
		eta = routes
	}
	dispatchService := dispatch.NewService(densityService, zoneService, driverService, eta, cfg.Dispatch, log)

	eventService := rideevent.NewService(rideevent.NewStore(pool), log)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Zones:    zoneService,
		Density:  densityService,
		Dispatch: dispatchService,
		Drivers:  driverService,
		Events:   eventService,
		Log:      log,
	})

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}
