package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brotliRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Brotli())
	r.GET("/body", handler)
	return r
}

func getBody(r *gin.Engine, acceptEncoding string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/body", nil)
	if acceptEncoding != "" {
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestBrotliSmallBodyPassesThrough(t *testing.T) {
	t.Parallel()

	r := brotliRouter(func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := getBody(r, "br")
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "ok", w.Body.String())
}

func TestBrotliCompressesLargeBody(t *testing.T) {
	t.Parallel()

	payload := strings.Repeat("abcdefgh", 256)
	r := brotliRouter(func(c *gin.Context) {
		c.String(http.StatusOK, payload)
	})

	w := getBody(r, "br")
	assert.Equal(t, "br", w.Header().Get("Content-Encoding"))

	decoded, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	assert.Equal(t, payload, string(decoded))

	// Without Accept-Encoding: br the body is untouched.
	plain := getBody(r, "gzip")
	assert.Empty(t, plain.Header().Get("Content-Encoding"))
	assert.Equal(t, payload, plain.Body.String())
}

// A small write after a large one must stay inside the compressed stream,
// not trail it as raw bytes.
func TestBrotliCompressedTailWrite(t *testing.T) {
	t.Parallel()

	head := bytes.Repeat([]byte("x"), 2048)
	tail := []byte("tail")
	r := brotliRouter(func(c *gin.Context) {
		c.Status(http.StatusOK)
		_, err := c.Writer.Write(head)
		require.NoError(t, err)
		_, err = c.Writer.Write(tail)
		require.NoError(t, err)
	})

	w := getBody(r, "br")
	assert.Equal(t, "br", w.Header().Get("Content-Encoding"))

	decoded, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	assert.Equal(t, append(head, tail...), decoded)
}
