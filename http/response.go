package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sagarc03/docserver"
)

// WriteError writes a plain text response whose body is the status text.
func WriteError(w http.ResponseWriter, code int) {
	body := http.StatusText(code)
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(code)
	if _, err := io.WriteString(w, body); err != nil {
		slog.Debug("failed to write error response", "error", err)
	}
}

// WriteEmpty writes a response without a body. 204 responses carry no
// Content-Type or Content-Length.
func WriteEmpty(w http.ResponseWriter, code int) {
	if code != http.StatusNoContent {
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Set("Content-Length", "0")
	}
	w.WriteHeader(code)
}

// WriteDocument writes doc with a 200 status.
func WriteDocument(w http.ResponseWriter, doc docserver.Document) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Content); err != nil {
		slog.Debug("failed to write document", "path", doc.Path, "error", err)
	}
}

// WriteUnauthorized writes a 401 with a Basic challenge for realm.
func WriteUnauthorized(w http.ResponseWriter, realm string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`"`)
	WriteError(w, http.StatusUnauthorized)
}

// HandleError writes appropriate error response based on error type
func HandleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, docserver.ErrNotFound):
		slog.Debug("request error", "error", err)
		WriteError(w, http.StatusNotFound)
	case errors.Is(err, docserver.ErrForbidden):
		slog.Warn("request error", "error", err)
		WriteError(w, http.StatusForbidden)
	case errors.Is(err, docserver.ErrUnauthorized):
		slog.Debug("request error", "error", err)
		WriteUnauthorized(w, docserver.DefaultRealm)
	case errors.Is(err, docserver.ErrTooLarge):
		slog.Debug("request error", "error", err)
		WriteError(w, http.StatusRequestEntityTooLarge)
	default:
		slog.Error("request error", "error", err)
		WriteError(w, http.StatusInternalServerError)
	}
}
