// Package http provides the HTTP layer of the document server.
//
// The router accepts GET, PUT and DELETE on every path and answers anything
// else with 405. Requests then pass through path resolution (403 for paths
// escaping the public root), Basic authentication for PUT and DELETE (401
// with a WWW-Authenticate challenge) and finally the Service.
//
// # Usage
//
//	resolver, _ := docserver.NewResolver("./public")
//	handlerCfg := http.HandlerConfig{
//	    Credentials: docserver.Credentials{User: "admin", Password: "secret"},
//	}
//	handler := http.NewHandler(&handlerCfg, resolver, service)
//	http.ListenAndServe(":3000", handler.Router())
//
// # Middleware
//
//   - HeadersMiddleware: Connection: close and Date on every response
//   - RecoverMiddleware: panics become 500, or abort the connection once
//     the response has started
//   - RequestLoggerMiddleware: one slog line per request
//   - ResolvePathMiddleware: maps the URL path into the public root
//   - BasicAuthMiddleware: checks credentials on every request
//
// Error bodies are the plain status text, for example "Not Found".
package http
