package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joseph-ayodele/form-intake/constants"
	"github.com/joseph-ayodele/form-intake/internal/common"
	"github.com/joseph-ayodele/form-intake/internal/entity"
)

type uploadResponse struct {
	Message string       `json:"message"`
	Form    *entity.Form `json:"form"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Upload handles POST /upload: accept, extract, parse, persist.
func (s *FormService) Upload(w http.ResponseWriter, r *http.Request) {
	log := common.LoggerFromContext(r.Context(), s.logger)

	mr, err := r.MultipartReader()
	if err != nil {
		// not multipart at all, so there is no file; Accept reports it
		log.Warn("upload without multipart body", "error", err)
	}
	up, err := s.acceptor.Accept(mr)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	form, err := s.processor.Submit(r.Context(), up)
	if err != nil {
		s.writeError(w, r, err, constants.MsgSaveFailed)
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{Message: constants.MsgUploaded, Form: form})
}

// ListForms handles GET /forms.
func (s *FormService) ListForms(w http.ResponseWriter, r *http.Request) {
	forms, err := s.processor.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, constants.MsgListFailed)
		return
	}
	if forms == nil {
		forms = []*entity.Form{}
	}
	writeJSON(w, http.StatusOK, forms)
}

// writeError maps the error taxonomy onto status codes and bodies.
// persistMsg is the message used for PERSISTENCE failures on this route.
func (s *FormService) writeError(w http.ResponseWriter, r *http.Request, err error, persistMsg string) {
	s.logger.Warn("request failed",
		"request_id", common.RequestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"code", common.CodeOf(err),
		"error", err,
	)
	var appErr *common.AppError
	if !errors.As(err, &appErr) {
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: "Internal server error", Error: err.Error()})
		return
	}
	switch appErr.Code {
	case common.CodeMissingFile:
		writeJSON(w, http.StatusBadRequest, errorBody{Message: constants.MsgNoFile})
	case common.CodeValidation, common.CodeFieldExtraction:
		writeJSON(w, http.StatusBadRequest, errorBody{Message: appErr.Message})
	case common.CodeExtraction:
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: constants.MsgExtractionFailed, Error: common.Detail(err)})
	case common.CodePersistence:
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: persistMsg, Error: common.Detail(err)})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: "Internal server error", Error: common.Detail(err)})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
