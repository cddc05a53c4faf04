package ocr

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type Config struct {
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string // default "eng"
	TessdataDir   string
	PSM           int // e.g., 6 is good for uniform block of text
}

type Result struct {
	Text     string
	Method   string
	Language string
	Duration time.Duration
	Warnings []string
}

// Engine runs tesseract over in-memory image bytes.
type Engine struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return NewEngineWithRunner(cfg, execRunner{logger: logger}, logger)
}

// NewEngineWithRunner is NewEngine with a caller-supplied command runner.
func NewEngineWithRunner(cfg Config, r Runner, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	return &Engine{cfg: cfg, runner: r, logger: logger}
}

// ExtractImage pipes the image to `tesseract stdin stdout` and returns the normalized text.
func (e *Engine) ExtractImage(ctx context.Context, data []byte) (Result, error) {
	start := time.Now()
	args := []string{"stdin", "stdout", "-l", e.cfg.TesseractLang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}

	e.logger.Debug("starting image ocr", "bytes", len(data), "lang", e.cfg.TesseractLang)
	out, errb, err := e.runner.Run(ctx, bytes.NewReader(data), e.cfg.Tesseract, args...)
	res := Result{
		Method:   "image-ocr",
		Language: e.cfg.TesseractLang,
		Duration: time.Since(start),
	}
	if err != nil {
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			res.Warnings = append(res.Warnings, msg)
		}
		return res, fmt.Errorf("tesseract: %w", err)
	}
	res.Text = Normalize(string(out))
	return res, nil
}
