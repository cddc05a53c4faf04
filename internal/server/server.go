package server

import (
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	"github.com/joseph-ayodele/form-intake/internal/ingest"
	"github.com/joseph-ayodele/form-intake/internal/pipeline"
)

// multipartSlack is the allowance on top of the file cap for multipart
// boundaries, part headers and small form fields.
const multipartSlack int64 = 1 << 20

// FormService serves the upload and listing endpoints.
type FormService struct {
	acceptor  *ingest.Acceptor
	processor *pipeline.Processor
	logger    *slog.Logger
}

func NewFormService(acceptor *ingest.Acceptor, processor *pipeline.Processor, logger *slog.Logger) *FormService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FormService{
		acceptor:  acceptor,
		processor: processor,
		logger:    logger,
	}
}

// Handler returns the routed handler with CORS, request IDs, access logging
// and the upload size guard applied.
func (s *FormService) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /upload", limitBody(s.acceptor.MaxBytes()+multipartSlack, http.HandlerFunc(s.Upload)))
	mux.HandleFunc("GET /forms", s.ListForms)

	var h http.Handler = mux
	h = accessLog(s.logger, h)
	h = requestID(s.logger, h)
	h = cors.AllowAll().Handler(h)
	return h
}
