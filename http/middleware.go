package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sagarc03/docserver"
)

type resolvedPathKey struct{}

// ResolvedPathFromContext returns the path stored by ResolvePathMiddleware.
func ResolvedPathFromContext(ctx context.Context) (docserver.ResolvedPath, bool) {
	p, ok := ctx.Value(resolvedPathKey{}).(docserver.ResolvedPath)
	return p, ok
}

// ResolvePathMiddleware resolves the decoded request path against the public
// root and stores the result in the request context. Paths escaping the
// root are rejected with 403.
func ResolvePathMiddleware(resolver PathResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := resolver.Resolve(r.URL.Path)
			if err != nil {
				HandleError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), resolvedPathKey{}, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BasicAuthMiddleware enforces HTTP Basic authentication against creds.
// Credentials are checked on every request; nothing is cached.
func BasicAuthMiddleware(creds docserver.Credentials, realm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, password, ok := docserver.ParseBasicAuth(r.Header.Get("Authorization"))
			if !ok || !creds.Verify(user, password) {
				slog.Debug("basic auth rejected", "method", r.Method, "path", r.URL.Path, "header_present", r.Header.Get("Authorization") != "")
				WriteUnauthorized(w, realm)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// HeadersMiddleware sets Connection: close and Date on every response.
func HeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Connection", "close")
		w.Header().Set("Date", time.Now().UTC().Format(http.TimeFormat))
		next.ServeHTTP(w, r)
	})
}

// RecoverMiddleware turns a panic into a 500 if nothing has been written
// yet. Once the response has started the connection is aborted instead.
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.Error("unhandled error", "error", fmt.Sprint(rec), "method", r.Method, "path", r.URL.Path)

			if ww.Status() != 0 {
				panic(http.ErrAbortHandler)
			}
			WriteError(ww, http.StatusInternalServerError)
		}()

		next.ServeHTTP(ww, r)
	})
}

// RequestLoggerMiddleware logs one line per request with its outcome.
func RequestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			slog.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
