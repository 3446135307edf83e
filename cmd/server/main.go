package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crepdde/pddepack/internal/api"
	"github.com/crepdde/pddepack/internal/assemble"
	"github.com/crepdde/pddepack/internal/config"
	"github.com/crepdde/pddepack/internal/dispatch"
	"github.com/crepdde/pddepack/internal/extool"
	"github.com/crepdde/pddepack/internal/pdftext"
	"github.com/crepdde/pddepack/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := extool.NewRunner(cfg.MaxConcurrentTools, cfg.ToolTimeout, log)

	extractor := &pdftext.Extractor{
		FallbackPdftotext: cfg.PdftotextFallback,
		Runner:            runner,
		PdftotextPath:     cfg.PdftotextPath,
	}

	var merger assemble.Merger = assemble.PdfcpuMerger{}
	if cfg.Merger == "pdfunite" {
		merger = &assemble.PdfuniteMerger{Runner: runner, Path: cfg.PdfunitePath}
	}

	var converter dispatch.Converter = dispatch.DocxConverter{}
	if cfg.Converter == "pandoc" {
		converter = &dispatch.PandocConverter{Runner: runner, Path: cfg.PandocPath}
	}

	orch := pipeline.NewOrchestrator(cfg, extractor, merger, converter, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting pddepack", "port", cfg.Port, "merger", cfg.Merger, "converter", cfg.Converter)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
