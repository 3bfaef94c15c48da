package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"acc-orientation/internal/api"
	"acc-orientation/internal/config"
	"acc-orientation/internal/engine"
	"acc-orientation/internal/feed"
	"acc-orientation/internal/recorder"
)

var (
	configPath = flag.String("config", "", "Path to YAML config overriding built-in defaults")
	port       = flag.Int("port", 0, "Port to listen on (overrides config)")
)

func main() {
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Feed: synthetic tumble generator, or manual (API-fed) with no source
	var source feed.Source
	if cfg.Feed.Mode == "synthetic" {
		source = feed.Synthetic{
			Gravity: cfg.Reference.Up.Vec3().Magnitude(),
			SweepHz: cfg.Feed.SweepHz,
			Surge:   cfg.Feed.Surge,
		}
	}

	pipeline := &feed.Chain{
		Stages: []feed.Transform{
			feed.Bias{Offset: cfg.Feed.Bias.Vec3()},
			feed.Saturation{FullScale: cfg.Feed.FullScale},
		},
	}

	eng := engine.New(engine.Config{
		Up:       cfg.Reference.Up.Vec3(),
		UpFront:  cfg.Reference.UpFront.Vec3(),
		TickHz:   cfg.Engine.TickHz,
		Source:   source,
		Pipeline: pipeline,
	})

	rec, err := recorder.New(cfg.Output.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create recorder")
	}

	server := api.NewServer(eng)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Handler(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := eng.Run(ctx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Engine error")
		}
	}()

	if rec != nil {
		go func() {
			ch, unsub := eng.Subscribe(ctx)
			defer unsub()
			for st := range ch {
				if err := rec.Write(st); err != nil {
					log.Error().Err(err).Msg("Recorder write failed")
					return
				}
			}
		}()
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("feed", cfg.Feed.Mode).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	cancel()

	if err := rec.Close(); err != nil {
		log.Error().Err(err).Msg("Recorder close error")
	}

	log.Info().Msg("Shutdown complete")
}
