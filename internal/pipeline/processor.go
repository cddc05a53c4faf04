package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/form-intake/internal/common"
	"github.com/joseph-ayodele/form-intake/internal/entity"
	"github.com/joseph-ayodele/form-intake/internal/extract"
	"github.com/joseph-ayodele/form-intake/internal/ingest"
	"github.com/joseph-ayodele/form-intake/internal/pipeline/parsefields"
	"github.com/joseph-ayodele/form-intake/internal/repository"
)

// Processor runs an accepted upload through text extraction, field parsing
// and persistence. Stages run strictly in order; the first failure ends the
// request and nothing is stored.
type Processor struct {
	Logger         *slog.Logger
	Extractor      extract.TextExtractor
	Forms          repository.FormRepository
	ExtractTimeout time.Duration
}

func NewProcessor(logger *slog.Logger, tx extract.TextExtractor, forms repository.FormRepository, extractTimeout time.Duration) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Extractor: tx, Forms: forms, ExtractTimeout: extractTimeout}
}

// Submit extracts, parses and persists one upload, returning the stored form.
func (p *Processor) Submit(ctx context.Context, up *ingest.Upload) (*entity.Form, error) {
	log := common.LoggerFromContext(ctx, p.Logger)

	// 1) text
	ectx, cancel := common.WithTimeout(ctx, p.ExtractTimeout)
	res, err := p.Extractor.Extract(ectx, up.Data, up.MediaType)
	cancel()
	if err != nil {
		log.Error("pipeline.extract.failed", "filename", up.Filename, "media_type", up.MediaType, "err", err)
		return nil, err
	}
	log.Info("pipeline.extract.ok",
		"filename", up.Filename,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"elapsed_ms", res.Duration.Milliseconds(),
	)

	// 2) fields
	fields, err := parsefields.Parse(res.Text)
	if err != nil {
		log.Warn("pipeline.parse.failed", "filename", up.Filename, "err", err)
		return nil, err
	}

	// 3) persist, keeping the full text rather than just the matches
	form, err := p.Forms.Insert(ctx, fields.Name, fields.Email, res.Text)
	if err != nil {
		log.Error("pipeline.persist.failed", "filename", up.Filename, "err", err)
		return nil, err
	}
	log.Info("pipeline.submit.ok", "form_id", form.ID, "filename", up.Filename)
	return form, nil
}

// List returns every stored form.
func (p *Processor) List(ctx context.Context) ([]*entity.Form, error) {
	forms, err := p.Forms.ListAll(ctx)
	if err != nil {
		common.LoggerFromContext(ctx, p.Logger).Error("pipeline.list.failed", "err", err)
		return nil, err
	}
	return forms, nil
}
