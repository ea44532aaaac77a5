// Package pdfsplit turns a multi-page PDF into independent single-page PDFs.
package pdfsplit

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rotisserie/eris"

	"intakeflow/internal/domain"
)

// Splitter splits PDFs with pdfcpu.
type Splitter struct {
	conf *model.Configuration
}

// New returns a Splitter using pdfcpu's default configuration.
func New() *Splitter {
	return &Splitter{conf: model.NewDefaultConfiguration()}
}

// PageCount validates the document and returns its number of pages.
func (s *Splitter) PageCount(pdf []byte) (int, error) {
	if len(pdf) == 0 {
		return 0, fmt.Errorf("pdfsplit: empty input: %w", domain.ErrMalformedDocument)
	}
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), s.conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, eris.Wrap(err, "pdfsplit: read"))
	}
	if ctx.PageCount == 0 {
		return 0, fmt.Errorf("pdfsplit: document has no pages: %w", domain.ErrMalformedDocument)
	}
	return ctx.PageCount, nil
}

// Split returns one standalone PDF per page, in original order. When
// maxPages > 0 only the first min(maxPages, total) pages are produced.
func (s *Splitter) Split(pdf []byte, maxPages int) ([][]byte, error) {
	total, err := s.PageCount(pdf)
	if err != nil {
		return nil, err
	}
	if maxPages > 0 && maxPages < total {
		total = maxPages
	}

	pages := make([][]byte, 0, total)
	for nr := 1; nr <= total; nr++ {
		var buf bytes.Buffer
		if err := api.Trim(bytes.NewReader(pdf), &buf, []string{strconv.Itoa(nr)}, s.conf); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, eris.Wrapf(err, "pdfsplit: extract page %d", nr))
		}
		pages = append(pages, buf.Bytes())
	}
	return pages, nil
}
