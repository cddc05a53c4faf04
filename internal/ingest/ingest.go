package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/form-intake/constants"
	"github.com/joseph-ayodele/form-intake/internal/common"
)

// FileField is the multipart field an upload must arrive in.
const FileField = "file"

// Upload is an accepted file, held entirely in memory for the request.
type Upload struct {
	Filename  string
	Ext       string
	MediaType string
	Format    constants.Format
	Size      int64
	Data      []byte
}

// Acceptor screens incoming multipart uploads before any processing happens.
type Acceptor struct {
	maxBytes int64
	logger   *slog.Logger
}

func NewAcceptor(maxBytes int64, logger *slog.Logger) *Acceptor {
	if logger == nil {
		logger = slog.Default()
	}
	if maxBytes <= 0 {
		maxBytes = constants.MaxUploadBytes
	}
	return &Acceptor{maxBytes: maxBytes, logger: logger}
}

// MaxBytes returns the per-file cap this acceptor enforces.
func (a *Acceptor) MaxBytes() int64 {
	return a.maxBytes
}

// Accept scans the multipart stream for the first file in FileField,
// validates it and reads it into memory. Other parts are skipped.
func (a *Acceptor) Accept(mr *multipart.Reader) (*Upload, error) {
	if mr == nil {
		return nil, common.MissingFileError(constants.MsgNoFile)
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, common.MissingFileError(constants.MsgNoFile)
		}
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, common.ValidationError(constants.MsgFileTooLarge, err)
			}
			return nil, common.ValidationError("malformed multipart body", err)
		}
		if part.FormName() != FileField || part.FileName() == "" {
			_ = part.Close()
			continue
		}
		up, err := a.read(part)
		_ = part.Close()
		return up, err
	}
}

func (a *Acceptor) read(part *multipart.Part) (*Upload, error) {
	filename := part.FileName()
	ext, mediaType, format, err := Check(filename, part.Header.Get("Content-Type"))
	if err != nil {
		a.logger.Warn("upload rejected", "filename", filename, "content_type", part.Header.Get("Content-Type"), "error", err)
		return nil, err
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(part, a.maxBytes+1))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, common.ValidationError(constants.MsgFileTooLarge, err)
		}
		return nil, common.ValidationError("read upload", err)
	}
	if n > a.maxBytes {
		a.logger.Warn("upload rejected", "filename", filename, "reason", "too large", "max_bytes", a.maxBytes)
		return nil, common.ValidationError(constants.MsgFileTooLarge,
			fmt.Errorf("file exceeds %d bytes", a.maxBytes))
	}

	a.logger.Debug("upload accepted", "filename", filename, "media_type", mediaType, "size", n)
	return &Upload{
		Filename:  filename,
		Ext:       ext,
		MediaType: mediaType,
		Format:    format,
		Size:      n,
		Data:      buf.Bytes(),
	}, nil
}

// Check validates a filename and its declared content type against the
// allow-lists. Both must pass and name the same format, so a .png declared
// as application/pdf is rejected.
func Check(filename, contentType string) (ext, mediaType string, format constants.Format, err error) {
	ext = constants.NormalizeExt(filepath.Ext(filename))
	if !AllowedExt(ext) {
		return "", "", "", common.ValidationError(constants.MsgInvalidFileType,
			fmt.Errorf("extension %q not allowed", ext))
	}
	mediaType, _, perr := mime.ParseMediaType(contentType)
	if perr != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	format = constants.MapMediaTypeToFormat(mediaType)
	if format == "" {
		return "", "", "", common.ValidationError(constants.MsgInvalidFileType,
			fmt.Errorf("media type %q not allowed", contentType))
	}
	if constants.MapExtToFormat(ext) != format {
		return "", "", "", common.ValidationError(constants.MsgInvalidFileType,
			fmt.Errorf("extension %q does not match media type %q", ext, mediaType))
	}
	return ext, mediaType, format, nil
}

// AllowedExt checks if a file extension is in the allowed set.
func AllowedExt(ext string) bool {
	ext = constants.NormalizeExt(ext)
	_, ok := constants.AllowedExtensions[ext]
	return ok
}
