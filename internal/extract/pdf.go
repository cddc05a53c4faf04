package extract

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfText reads the cross-reference structure with pdfcpu first, so that
// non-PDF or truncated streams fail fast with a useful error, then pulls the
// linear text content with ledongthuc/pdf. Layout is not preserved.
func pdfText(data []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return "", 0, fmt.Errorf("read pdf structure: %w", err)
	}
	if err := pctx.EnsurePageCount(); err != nil {
		return "", 0, fmt.Errorf("count pages: %w", err)
	}
	pages = pctx.PageCount

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", pages, fmt.Errorf("open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", pages, fmt.Errorf("extract text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", pages, fmt.Errorf("read text: %w", err)
	}
	return buf.String(), pages, nil
}
