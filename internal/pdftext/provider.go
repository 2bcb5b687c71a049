// Package pdftext adapts the PDF text-layout library to the pipeline's
// page-source contract: per page, a flat list of positioned text fragments.
package pdftext

import (
	"bytes"

	pdf "github.com/ledongthuc/pdf"

	"escala/internal"
	"escala/internal/pipeline"
)

type Opener struct{}

func (Opener) Open(data []byte) (pipeline.PageSource, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return &document{reader: r}, nil
}

type document struct {
	reader *pdf.Reader
}

func (d *document) NumPages() int {
	return d.reader.NumPage()
}

func (d *document) PageFragments(page int) ([]internal.TextFragment, error) {
	p := d.reader.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}

	content := p.Content()
	out := make([]internal.TextFragment, 0, len(content.Text))
	for _, t := range content.Text {
		out = append(out, internal.TextFragment{Text: t.S, X: t.X, Y: t.Y})
	}
	return out, nil
}

func (d *document) Close() error {
	return nil
}
