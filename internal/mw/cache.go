package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// cachedPage is a replayable successful response. Only the content type is
// kept from the headers; the archive endpoints serve plain JSON.
type cachedPage struct {
	status      int
	contentType string
	body        []byte
}

// teeWriter copies the response body into a buffer on its way out so a
// successful response can be stored after the handler returns.
type teeWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *teeWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	return w.ResponseWriter.Write(p)
}

func (w *teeWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache serves repeated GETs of read-mostly endpoints (pricing, history
// aggregates) from memory. Never mount it on the unit routes: the polling
// contract depends on every read seeing the live registry.
func Cache(store *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if hit, ok := store.Get(key); ok {
			page := hit.(cachedPage)
			c.Data(page.status, page.contentType, page.body)
			c.Abort()
			return
		}

		tw := &teeWriter{ResponseWriter: c.Writer}
		c.Writer = tw

		c.Next()

		if status := tw.Status(); status >= 200 && status < 300 {
			store.Set(key, cachedPage{
				status:      status,
				contentType: tw.Header().Get("Content-Type"),
				body:        tw.buf.Bytes(),
			}, ttl)
		}
	}
}
