// Package docserver serves a directory tree over HTTP with read access for
// everyone and Basic-auth gated writes.
//
// The package holds the pieces the HTTP layer is built on:
//
//   - Resolver: maps a decoded URL path to a file inside the public root
//   - DocumentService: GET/PUT/DELETE semantics over a FileStorage
//   - Credentials: expected Basic auth user and password
//   - ContentTypeFor: the fixed extension to MIME type table
//
// # Example Usage
//
//	resolver, err := docserver.NewResolver("./public")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	root, err := os.OpenRoot(resolver.Root())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	service, err := docserver.NewDocumentService(filesystem.NewFileStorage(root))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p, err := resolver.Resolve("/docs/")
//	doc, err := service.Get(ctx, p) // serves docs/index.html
//
// See the http package for the router and middleware, and the filesystem
// package for the storage backend.
package docserver
