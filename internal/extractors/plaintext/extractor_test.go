package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

func TestType(t *testing.T) {
	assert.Equal(t, domain.TypeText, New().Type())
}

func TestExtract_Success(t *testing.T) {
	text, err := New().Extract(context.Background(), []byte("Plain text content.\nSecond line."))
	require.NoError(t, err)
	assert.Equal(t, "Plain text content.\nSecond line.", text)
}

func TestExtract_InvalidUTF8(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte{0xff, 0xfe, 0x00})
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_Empty(t *testing.T) {
	text, err := New().Extract(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, text)
}
