package extract

import (
	"context"
	"errors"
	"time"

	"github.com/joseph-ayodele/form-intake/internal/ocr"
)

// TextExtractor is stage 1 of the submit pipeline: document bytes -> text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, mediaType string) (TextExtractionResult, error)
}

// ImageOCR turns image bytes into text. Satisfied by *ocr.Engine.
type ImageOCR interface {
	ExtractImage(ctx context.Context, data []byte) (ocr.Result, error)
}

type TextExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // "PDF" | "IMAGE"
	Method     string // "pdf-text" | "image-ocr"
	Duration   time.Duration
	Warnings   []string
}

var (
	// ErrImageUnsupported is returned for PNG/JPEG uploads when no OCR engine is configured.
	ErrImageUnsupported = errors.New("text extraction from images is not enabled")
	// ErrUnsupportedMediaType is returned for media types outside the upload allow-list.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)
