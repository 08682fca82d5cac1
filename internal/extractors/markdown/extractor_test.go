package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

func TestType(t *testing.T) {
	assert.Equal(t, domain.TypeMarkdown, New().Type())
}

func TestExtract_StripsFormatting(t *testing.T) {
	raw := []byte("# Heading\n\nSome **bold** and *italic* text with a [link](https://example.com).\n\n- item one\n- item two\n\n```go\nfunc hidden() {}\n```\n\n> quoted line\n")

	text, err := New().Extract(context.Background(), raw)
	require.NoError(t, err)

	assert.Contains(t, text, "Heading")
	assert.Contains(t, text, "Some bold and italic text with a link.")
	assert.Contains(t, text, "item one")
	assert.Contains(t, text, "quoted line")
	assert.NotContains(t, text, "#")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "https://example.com")
	assert.NotContains(t, text, "func hidden")
	assert.NotContains(t, text, ">")
}

func TestExtract_InvalidUTF8(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte{0xc3, 0x28})
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
