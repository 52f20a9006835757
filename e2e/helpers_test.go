package e2e_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sagarc03/docserver"
	"github.com/sagarc03/docserver/config"
	"github.com/sagarc03/docserver/filesystem"
	dochttp "github.com/sagarc03/docserver/http"
)

// testServer is a running document server backed by a temp public root.
type testServer struct {
	URL  string
	Root string
	cfg  *config.Config
}

// startServer loads configYAML through config.Load, wires the full stack and
// serves it with httptest. The public root is a fresh temp directory unless
// the YAML sets storage.path.
func startServer(t *testing.T, configYAML string) *testServer {
	t.Helper()

	for _, name := range []string{"PORT", "AUTH_USER", "AUTH_PASS", "PUBLIC_DIR", "LOG_LEVEL", "ENV"} {
		t.Setenv(name, "")
	}
	t.Setenv("PUBLIC_DIR", filepath.Join(t.TempDir(), "public"))

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configYAML), 0o600), "write config file")

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err, "load config")

	resolver, err := docserver.NewResolver(cfg.Storage.Path)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(resolver.Root(), 0o755))

	root, err := os.OpenRoot(resolver.Root())
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })

	service, err := docserver.NewDocumentService(filesystem.NewFileStorage(root))
	require.NoError(t, err)

	handlerConfig := dochttp.HandlerConfig{
		Credentials:   cfg.Auth.Credentials(),
		Realm:         cfg.Auth.Realm,
		MaxUploadSize: cfg.Server.MaxUploadSize,
		CORS:          cfg.CORS,
	}
	handler := dochttp.NewHandler(&handlerConfig, resolver, service)

	srv := httptest.NewServer(handler.Router())
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Root: resolver.Root(), cfg: cfg}
}

// writeFile places a file directly in the public root.
func (s *testServer) writeFile(t *testing.T, rel, content string) {
	t.Helper()
	full := filepath.Join(s.Root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

// readFile reads a file directly from the public root.
func (s *testServer) readFile(t *testing.T, rel string) (string, bool) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return "", false
	}
	require.NoError(t, err)
	return string(data), true
}

type response struct {
	Status int
	Header http.Header
	Body   string
	Close  bool
}

// do sends a request. A non-empty user sets Basic credentials.
func (s *testServer) do(t *testing.T, method, path, body, user, pass string) response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	if user != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return response{Status: resp.StatusCode, Header: resp.Header, Body: string(data), Close: resp.Close}
}
