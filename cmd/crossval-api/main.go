package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourorg/crossval/internal/crossval"
	"github.com/yourorg/crossval/internal/event"
	"github.com/yourorg/crossval/internal/extract"
	"github.com/yourorg/crossval/internal/extract/layouts"
	"github.com/yourorg/crossval/internal/server"
)

func main() {
	_ = godotenv.Load()
	cfg := server.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	location := time.UTC
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		location = loc
	} else {
		logger.Warn("invalid timezone, falling back to UTC", "tz", cfg.Timezone, "error", err)
	}

	extractors := map[event.DocumentType]extract.Extractor{
		event.TypeMTR: extract.NewRegistry(layouts.NewMTRLayout()),
		event.TypeCDF: extract.NewRegistry(layouts.NewCDFLayout()),
	}

	validator := crossval.New(crossval.Config{
		DateToleranceDays:          cfg.DateToleranceDays,
		WeightDiscrepancyThreshold: cfg.WeightDiscrepancyThreshold,
		Location:                   location,
		MaxConcurrentAttachments:   cfg.MaxConcurrentAttachments,
	}, extractors, crossval.NewDebugSink(logger, cfg.DebugCompare), logger)

	svc := server.NewService(cfg, validator, server.NewMetrics(), logger)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      svc.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	logger.Info("crossval api listening", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
