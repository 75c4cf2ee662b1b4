// Package middleware holds HTTP middleware for the subseq API.
package middleware

import (
	"log"
	"net/http"
	"os"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs one line per request: method, path, status, bytes
// written, duration and the chi request id.
func RequestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				logger.Printf("INFO: %s %s %d %dB %s [%s]",
					r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(),
					time.Since(start).Round(time.Microsecond),
					chimiddleware.GetReqID(r.Context()))
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
