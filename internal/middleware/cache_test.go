package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	body := []byte(`{"success":true}`)

	encoded, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(encoded)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	_, _, _, ok := decodePayload([]byte("short"))
	assert.False(t, ok)
}

func TestCacheableSkipsOversizedBody(t *testing.T) {
	assert.True(t, cacheable(http.StatusOK, 100, 1024))
	assert.True(t, cacheable(http.StatusOK, 100, 0), "zero limit means unlimited")
	assert.False(t, cacheable(http.StatusOK, 2048, 1024), "over-limit bodies must not be stored")
	assert.False(t, cacheable(http.StatusInternalServerError, 10, 1024))
}

func TestCaptureWriterTracksFullSize(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 8}

	payload := strings.Repeat("x", 20)
	_, err := cw.Write([]byte(payload))
	require.NoError(t, err)

	// The client still receives the whole response; only the capture
	// buffer is bounded, and the recorded size reflects the real body so
	// cacheable() can reject it.
	assert.Equal(t, payload, rec.Body.String())
	assert.Equal(t, int64(20), cw.size)
	assert.False(t, cacheable(cw.status, cw.size, cw.limit))
}
