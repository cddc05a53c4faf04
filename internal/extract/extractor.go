package extract

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/joseph-ayodele/form-intake/constants"
	"github.com/joseph-ayodele/form-intake/internal/common"
)

// Extractor routes uploads by media type: PDFs through the in-process PDF
// reader, images through the optional OCR engine.
type Extractor struct {
	images   ImageOCR
	pdfSlots *semaphore.Weighted
	logger   *slog.Logger
}

// NewExtractor builds an Extractor. images may be nil, in which case image
// uploads fail with ErrImageUnsupported.
func NewExtractor(images ImageOCR, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		images:   images,
		pdfSlots: semaphore.NewWeighted(int64(2 * runtime.GOMAXPROCS(0))),
		logger:   logger,
	}
}

// Extract returns the plain text of data. Every failure is an EXTRACTION AppError.
func (e *Extractor) Extract(ctx context.Context, data []byte, mediaType string) (TextExtractionResult, error) {
	start := time.Now()
	format := constants.MapMediaTypeToFormat(mediaType)
	e.logger.Debug("starting text extraction", "media_type", mediaType, "format", format, "bytes", len(data))

	var (
		res TextExtractionResult
		err error
	)
	switch format {
	case constants.PDF:
		res, err = e.extractPDF(ctx, data)
	case constants.IMAGE:
		res, err = e.extractImage(ctx, data)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mediaType)
	}
	res.Duration = time.Since(start)
	if err != nil {
		e.logger.Error("text extraction failed", "media_type", mediaType, "error", err)
		return res, common.ExtractionError(constants.MsgExtractionFailed, err)
	}
	return res, nil
}

// extractPDF parses in a separate goroutine so the caller's deadline is
// honoured. A parse that outlives its deadline keeps its slot, and the upload
// buffer, until it returns; the slots bound how many of those can pile up.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) (TextExtractionResult, error) {
	if err := e.pdfSlots.Acquire(ctx, 1); err != nil {
		return TextExtractionResult{SourceType: string(constants.PDF)}, fmt.Errorf("pdf extraction: %w", err)
	}
	type out struct {
		text  string
		pages int
		err   error
	}
	done := make(chan out, 1)
	go func() {
		defer e.pdfSlots.Release(1)
		text, pages, err := pdfText(data)
		done <- out{text: text, pages: pages, err: err}
	}()

	select {
	case <-ctx.Done():
		return TextExtractionResult{SourceType: string(constants.PDF)}, fmt.Errorf("pdf extraction: %w", ctx.Err())
	case o := <-done:
		return TextExtractionResult{
			Text:       o.text,
			Pages:      o.pages,
			SourceType: string(constants.PDF),
			Method:     "pdf-text",
		}, o.err
	}
}

func (e *Extractor) extractImage(ctx context.Context, data []byte) (TextExtractionResult, error) {
	res := TextExtractionResult{SourceType: string(constants.IMAGE)}
	if e.images == nil {
		return res, ErrImageUnsupported
	}
	r, err := e.images.ExtractImage(ctx, data)
	res.Text = r.Text
	res.Pages = 1
	res.Method = r.Method
	res.Warnings = r.Warnings
	return res, err
}
