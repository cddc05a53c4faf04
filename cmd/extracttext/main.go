package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/joseph-ayodele/form-intake/internal/common"
	"github.com/joseph-ayodele/form-intake/internal/extract"
	"github.com/joseph-ayodele/form-intake/internal/ingest"
	"github.com/joseph-ayodele/form-intake/internal/ocr"
	"github.com/joseph-ayodele/form-intake/internal/pipeline/parsefields"
)

// extracttext runs a local file through the same acceptance, extraction and
// field parsing as POST /upload, without touching the database.
func main() {
	var (
		withOCR  = pflag.Bool("ocr", false, "enable tesseract for PNG/JPEG input")
		lang     = pflag.String("lang", "eng", "tesseract language")
		timeout  = pflag.Duration("timeout", 2*time.Minute, "extraction timeout")
		logLevel = pflag.String("loglevel", "info", "log level (debug, info, warn, error)")
		showText = pflag.Bool("text", false, "print the full extracted text")
	)
	pflag.Parse()
	logger := common.NewLogger(os.Stderr, *logLevel)

	if pflag.NArg() != 1 {
		logger.Error("usage", "cmd", "extracttext [--ocr] [--text] <file.pdf|png|jpeg>")
		os.Exit(2)
	}
	path := pflag.Arg(0)

	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if _, _, _, err := ingest.Check(filepath.Base(path), mediaType); err != nil {
		logger.Error("file rejected", "path", path, "error", err)
		os.Exit(1)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read file", "path", path, "error", err)
		os.Exit(1)
	}

	var images extract.ImageOCR
	if *withOCR {
		images = ocr.NewEngine(ocr.Config{TesseractLang: *lang}, logger)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := extract.NewExtractor(images, logger).Extract(ctx, data, mediaType)
	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err)
		os.Exit(1)
	}
	logger.Info("extraction ok", "path", path, "method", res.Method, "pages", res.Pages, "chars", len(res.Text), "duration", res.Duration)
	if *showText {
		fmt.Println(res.Text)
	}

	fields, err := parsefields.Parse(res.Text)
	if err != nil {
		logger.Error("field parsing failed", "path", path, "error", err)
		os.Exit(1)
	}
	fmt.Printf("name:  %s\nemail: %s\n", fields.Name, fields.Email)
}
