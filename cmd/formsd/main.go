package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/form-intake/internal/common"
	"github.com/joseph-ayodele/form-intake/internal/extract"
	"github.com/joseph-ayodele/form-intake/internal/ingest"
	"github.com/joseph-ayodele/form-intake/internal/ocr"
	"github.com/joseph-ayodele/form-intake/internal/pipeline"
	repo "github.com/joseph-ayodele/form-intake/internal/repository"
	"github.com/joseph-ayodele/form-intake/internal/server"
)

func main() {
	envFile := pflag.String("env-file", ".env", "dotenv file read before the process environment (optional)")
	pflag.Parse()

	cfg, err := common.LoadConfig(*envFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(2)
	}
	logger := common.NewLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("form-intake stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *common.Config, logger *slog.Logger) error {
	// Legacy upload directory; uploads are processed in memory and never written here.
	if err := os.MkdirAll(cfg.Upload.Dir, 0o750); err != nil {
		logger.Error("failed to create uploads directory", "dir", cfg.Upload.Dir, "error", err)
		return err
	}

	forms, err := repo.Open(ctx, repo.Config{
		DSN:             cfg.Database.URL,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
		QueryTimeout:    cfg.Database.QueryTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = forms.Close(closeCtx)
	}()

	if err := forms.Ping(ctx); err != nil {
		logger.Error("failed to ping database", "error", err)
		return err
	}
	logger.Info("database health OK")

	var images extract.ImageOCR
	if cfg.OCR.Enabled {
		images = ocr.NewEngine(ocr.Config{
			Tesseract:     cfg.OCR.Tesseract,
			TesseractLang: cfg.OCR.Lang,
			TessdataDir:   cfg.OCR.TessdataDir,
		}, logger)
		logger.Info("image ocr enabled", "tesseract", cfg.OCR.Tesseract, "lang", cfg.OCR.Lang)
	}
	extractor := extract.NewExtractor(images, logger)
	processor := pipeline.NewProcessor(logger, extractor, forms, cfg.Upload.ExtractTimeout)
	acceptor := ingest.NewAcceptor(cfg.Upload.MaxBytes, logger)
	formService := server.NewFormService(acceptor, processor, logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           formService.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	var health *server.HealthServer
	if cfg.Server.GRPCHealthAddr != "" {
		health, err = server.NewHealthServer(cfg.Server.GRPCHealthAddr, logger)
		if err != nil {
			return err
		}
		g.Go(health.Serve)
		health.SetServing(true)
	}

	g.Go(func() error {
		logger.Info("form-intake listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")
		if health != nil {
			health.SetServing(false)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		if health != nil {
			health.Stop()
		}
		return err
	})

	return g.Wait()
}
