package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/form-intake/internal/repository"
)

const sheet = "Forms"

// maxCellChars is Excel's hard limit on characters in one cell.
const maxCellChars = 32767

// Service is a tiny façade over the form store that produces XLSX bytes for exports.
type Service struct {
	forms  repository.FormRepository
	logger *slog.Logger
}

func NewService(forms repository.FormRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{forms: forms, logger: logger}
}

// ExportFormsXLSX returns an XLSX workbook (as bytes) with one row per stored form.
func (s *Service) ExportFormsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	forms, err := s.forms.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("query forms: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	// rename the default sheet rather than leaving an empty "Sheet1" behind
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Name", "Email", "Submitted At", "Extracted Text"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, form := range forms {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, form.ID.String())
		write(2, form.Name)
		write(3, form.Email)
		write(4, form.CreatedAt.UTC().Format(time.RFC3339))
		write(5, truncate(form.ExtractedText, maxCellChars))
	}

	_ = f.SetColWidth(sheet, "A", "A", 38) // id
	_ = f.SetColWidth(sheet, "B", "C", 28) // name, email
	_ = f.SetColWidth(sheet, "D", "D", 22) // timestamp
	_ = f.SetColWidth(sheet, "E", "E", 80) // text

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(forms),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
