package security

import (
	"bytes"
	"errors"
	"io"
	"net/http"
)

// BodyLimit rejects request payloads larger than Max bytes before they
// reach a handler. Quote sessions and pricebook documents are small, so an
// oversized payload is always a client error.
type BodyLimit struct {
	Max int64
}

// Middleware answers 413 for oversized payloads and otherwise replays the
// buffered body to the next handler.
func (b BodyLimit) Middleware(next http.Handler) http.Handler {
	if b.Max <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}
		if r.ContentLength > b.Max {
			http.Error(w, "request entity too large", http.StatusRequestEntityTooLarge)
			return
		}

		var buf bytes.Buffer
		n, err := io.Copy(&buf, io.LimitReader(r.Body, b.Max+1))
		if err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if n > b.Max {
			http.Error(w, "request entity too large", http.StatusRequestEntityTooLarge)
			return
		}

		_ = r.Body.Close()
		r.Body = io.NopCloser(&buf)
		r.ContentLength = n
		next.ServeHTTP(w, r)
	})
}
