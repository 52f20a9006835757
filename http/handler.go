package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sagarc03/docserver"
)

type Service interface {
	Get(ctx context.Context, p docserver.ResolvedPath) (docserver.Document, error)
	Put(ctx context.Context, p docserver.ResolvedPath, content io.Reader) (docserver.PutResult, error)
	Delete(ctx context.Context, p docserver.ResolvedPath) error
}

// PathResolver maps a decoded URL path onto the public root.
type PathResolver interface {
	Resolve(requestPath string) (docserver.ResolvedPath, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age"`
}

type HandlerConfig struct {
	Credentials docserver.Credentials
	// Realm defaults to docserver.DefaultRealm.
	Realm string
	// MaxUploadSize limits PUT bodies in bytes; 0 means no limit.
	MaxUploadSize int64
	CORS          CORSConfig
}

// Handler provides HTTP handlers for document operations.
type Handler struct {
	config   HandlerConfig
	resolver PathResolver
	service  Service
}

// NewHandler creates a new Handler with the given configuration, path
// resolver and service.
func NewHandler(config *HandlerConfig, resolver PathResolver, service Service) *Handler {
	cfg := *config
	if cfg.Realm == "" {
		cfg.Realm = docserver.DefaultRealm
	}
	return &Handler{
		config:   cfg,
		resolver: resolver,
		service:  service,
	}
}

// Router returns an http.Handler serving GET, PUT and DELETE on every path.
// Method dispatch happens before path resolution, and path resolution before
// authentication, so an unsupported method is always 405 and an escaping
// path is always 403.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(HeadersMiddleware)
	r.Use(RequestLoggerMiddleware)
	r.Use(RecoverMiddleware)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed)
	})

	r.Group(func(r chi.Router) {
		r.Use(ResolvePathMiddleware(h.resolver))
		r.Get("/*", h.handleGet)

		r.Group(func(r chi.Router) {
			r.Use(BasicAuthMiddleware(h.config.Credentials, h.config.Realm))
			r.Put("/*", h.handlePut)
			r.Delete("/*", h.handleDelete)
		})
	})

	return r
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := ResolvedPathFromContext(r.Context())
	if !ok {
		HandleError(w, errors.New("resolved path missing from context"))
		return
	}

	doc, err := h.service.Get(r.Context(), p)
	if err != nil {
		HandleError(w, err)
		return
	}

	WriteDocument(w, doc)
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	p, ok := ResolvedPathFromContext(r.Context())
	if !ok {
		HandleError(w, errors.New("resolved path missing from context"))
		return
	}

	body := r.Body
	if h.config.MaxUploadSize > 0 {
		body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadSize)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			HandleError(w, fmt.Errorf("read body: %w", docserver.ErrTooLarge))
		} else {
			HandleError(w, fmt.Errorf("read body: %w", err))
		}
		return
	}

	result, err := h.service.Put(r.Context(), p, bytes.NewReader(data))
	if err != nil {
		HandleError(w, err)
		return
	}

	if result.Created {
		WriteEmpty(w, http.StatusCreated)
		return
	}
	WriteEmpty(w, http.StatusNoContent)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := ResolvedPathFromContext(r.Context())
	if !ok {
		HandleError(w, errors.New("resolved path missing from context"))
		return
	}

	if err := h.service.Delete(r.Context(), p); err != nil {
		HandleError(w, err)
		return
	}

	WriteEmpty(w, http.StatusNoContent)
}
