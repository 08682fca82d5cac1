// Package jsondoc extracts indexable text from JSON uploads by
// flattening scalar values with their key paths.
package jsondoc

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles JSON documents.
type Extractor struct{}

// New creates a new JSON extractor.
func New() *Extractor {
	return &Extractor{}
}

// Type returns the document type this extractor handles.
func (e *Extractor) Type() domain.DocumentType {
	return domain.TypeJSON
}

// Extract flattens the JSON value tree into "path: value" lines so
// field names remain searchable next to their values.
func (e *Extractor) Extract(_ context.Context, raw []byte) (string, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("%w: invalid JSON: %v", domain.ErrExtractionFailed, err)
	}

	var lines []string
	flatten("", value, &lines)
	return strings.Join(lines, "\n"), nil
}

func flatten(path string, value any, lines *[]string) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flatten(joinPath(path, k), v[k], lines)
		}
	case []any:
		for i, item := range v {
			flatten(joinPath(path, strconv.Itoa(i)), item, lines)
		}
	case string:
		*lines = append(*lines, path+": "+v)
	case float64:
		*lines = append(*lines, path+": "+strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		*lines = append(*lines, path+": "+strconv.FormatBool(v))
	case nil:
		// Nulls carry no searchable signal.
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
