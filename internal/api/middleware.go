package api

import (
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/schools-server/internal/api/schema"
	"net/http"
	"runtime/debug"
	"strings"
	"time"
)

const (
	headerRequestID    = "X-Request-Id"
	maxRequestIDLength = 128
)

// middlewareRequestID assigns every request an ID (reusing a client-provided one), exposes it in the response
// headers and injects a logger carrying the ID into the request context
func (service *Service) middlewareRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		id := request.Header.Get(headerRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		writer.Header().Set(headerRequestID, id)

		logger := log.With().Str("request_id", id).Logger()
		next.ServeHTTP(writer, request.WithContext(logger.WithContext(request.Context())))
	})
}

// middlewareLogRequests logs every handled request and turns panics into internal errors
func (service *Service) middlewareLogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		start := time.Now()
		logger := zerolog.Ctx(request.Context())

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error().Interface("panic", rec).Bytes("stack", debug.Stack()).Msg("recovered from a panic while handling a request")
				if wrapped.Status() == 0 {
					service.writer.WriteError(wrapped, schema.ErrInternal)
				}
			}

			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info().
				Str("method", request.Method).
				Str("path", request.URL.Path).
				Int("status", status).
				Int("bytes", wrapped.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("handled request")
		}()

		next.ServeHTTP(wrapped, request)
	})
}

// middlewareRedirectSlashes strips trailing slashes from all paths except the documentation ones, as static
// directories are addressed with one
func (service *Service) middlewareRedirectSlashes(next http.Handler) http.Handler {
	redirecting := middleware.RedirectSlashes(next)
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if strings.HasPrefix(request.URL.Path, docsPath+"/") {
			next.ServeHTTP(writer, request)
			return
		}
		redirecting.ServeHTTP(writer, request)
	})
}
