package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureWriterBuffersWithinLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: 200, limit: 32}

	_, err := cw.Write([]byte(`{"ok":`))
	require.NoError(t, err)
	_, err = cw.Write([]byte(`true}`))
	require.NoError(t, err)

	assert.True(t, cw.cacheable())
	assert.Equal(t, `{"ok":true}`, cw.buf.String())
	assert.Equal(t, `{"ok":true}`, rec.Body.String(), "client sees the full body")
}

func TestCaptureWriterSkipsOversizedResponses(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: 200, limit: 8}

	big := []byte(`[{"id":"a"},{"id":"b"},{"id":"c"}]`)
	_, err := cw.Write(big)
	require.NoError(t, err)

	assert.False(t, cw.cacheable(), "a body over the limit must never be stored")
	assert.Zero(t, cw.buf.Len(), "no truncated capture kept around")
	assert.Equal(t, string(big), rec.Body.String(), "the client still gets the full body")
}

func TestCaptureWriterUnlimitedWhenNoCap(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: 200, limit: 0}

	payload := []byte(`{"listings":[]}`)
	_, err := cw.Write(payload)
	require.NoError(t, err)

	assert.True(t, cw.cacheable())
	assert.Equal(t, string(payload), cw.buf.String())
}
