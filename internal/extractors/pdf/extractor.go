// Package pdf extracts text from PDF uploads. Only uncompressed
// literal text operators are understood; anything else fails with an
// extraction error rather than producing placeholder content.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Type returns the document type this extractor handles.
func (e *Extractor) Type() domain.DocumentType {
	return domain.TypePDF
}

// Extract pulls literal strings out of uncompressed content streams.
// Compressed or image-only PDFs yield no text and fail.
func (e *Extractor) Extract(_ context.Context, raw []byte) (string, error) {
	if !bytes.HasPrefix(raw, []byte("%PDF-")) {
		return "", fmt.Errorf("%w: missing PDF header", domain.ErrExtractionFailed)
	}

	text := literalStrings(raw)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no extractable text (compressed or image-only PDF)", domain.ErrExtractionFailed)
	}
	return text, nil
}

// literalStrings collects (…) string operands between BT/ET text
// blocks. This covers PDFs written without stream compression; it is
// deliberately not a full PDF parser.
func literalStrings(raw []byte) string {
	var out strings.Builder

	rest := raw
	for {
		bt := bytes.Index(rest, []byte("BT"))
		if bt < 0 {
			break
		}
		rest = rest[bt+2:]
		et := bytes.Index(rest, []byte("ET"))
		if et < 0 {
			break
		}
		block := rest[:et]
		rest = rest[et+2:]

		appendBlockText(&out, block)
	}

	return strings.TrimSpace(out.String())
}

func appendBlockText(out *strings.Builder, block []byte) {
	depth := 0
	escaped := false
	var current []byte

	for _, b := range block {
		switch {
		case escaped:
			current = append(current, b)
			escaped = false
		case b == '\\' && depth > 0:
			escaped = true
		case b == '(':
			depth++
			if depth == 1 {
				current = current[:0]
			}
		case b == ')':
			if depth > 0 {
				depth--
				if depth == 0 && utf8.Valid(current) {
					out.Write(current)
					out.WriteByte(' ')
				}
			}
		case depth > 0:
			current = append(current, b)
		}
	}
	if out.Len() > 0 {
		out.WriteByte('\n')
	}
}
