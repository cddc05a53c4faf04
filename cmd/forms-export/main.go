package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"

	"github.com/joseph-ayodele/form-intake/internal/common"
	"github.com/joseph-ayodele/form-intake/internal/export"
	repo "github.com/joseph-ayodele/form-intake/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		envFile = pflag.String("env-file", ".env", "dotenv file read before the process environment (optional)")
		out     = pflag.StringP("out", "o", "forms.xlsx", "output XLSX file path")
	)
	pflag.Parse()

	cfg, err := common.LoadConfig(*envFile)
	if err != nil {
		printError("Error: loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	logger := common.NewLogger(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	forms, err := repo.Open(ctx, repo.Config{
		DSN:          cfg.Database.URL,
		MaxConns:     2,
		DialTimeout:  cfg.Database.DialTimeout,
		QueryTimeout: cfg.Database.QueryTimeout,
	}, logger)
	if err != nil {
		printError("Error: opening database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = forms.Close(closeCtx)
	}()

	data, err := export.NewService(forms, logger).ExportFormsXLSX(ctx)
	if err != nil {
		printError("Error: export: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		printError("Error: writing %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d bytes)\n", *out, len(data))
}
