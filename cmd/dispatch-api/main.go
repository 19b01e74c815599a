// README: Entry point; loads config, wires services, starts HTTP server and dispatch workers.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ridedispatch/internal/config"
	httptransport "ridedispatch/internal/http"
	"ridedispatch/internal/infra"
	"ridedispatch/internal/logging"
	"ridedispatch/internal/modules/dispatch"
	"ridedispatch/internal/modules/driver"
	"ridedispatch/internal/modules/events"
	"ridedispatch/internal/modules/ride"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	rideStore := ride.NewStore(dbPool)
	rideSvc := ride.NewService(rideStore)
	driverStore := driver.NewStore(dbPool)
	publisher := events.NewPublisher(redisClient)

	loops := make([]dispatch.Loop, 0, cfg.Dispatch.Matchers+1)
	for i := 0; i < cfg.Dispatch.Matchers; i++ {
		name := "matcher"
		if cfg.Dispatch.Matchers > 1 {
			name = fmt.Sprintf("matcher-%d", i+1)
		}
		engine := dispatch.NewEngine(dbPool, rideStore, driverStore, publisher, cfg.Dispatch,
			log.With().Str("worker", name).Logger())
		loops = append(loops, dispatch.Loop{Name: name, Run: engine.Run})
	}
	completer := dispatch.NewCompleter(dbPool, rideStore, driverStore, publisher, cfg.Dispatch,
		log.With().Str("worker", "completer").Logger())
	loops = append(loops, dispatch.Loop{Name: "completer", Run: completer.Run})

	supervisor := dispatch.NewSupervisor(cfg.Dispatch, log, loops...)
	go supervisor.Run(ctx)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Rides:   rideSvc,
		Drivers: driverStore,
		Logger:  log,
	})
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.HTTP.Addr).Int("matchers", cfg.Dispatch.Matchers).Msg("dispatch service starting")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
