package docserver

// ResolvedPath is a request path mapped onto the public root.
type ResolvedPath struct {
	// Abs is the absolute filesystem path.
	Abs string
	// Rel is Abs relative to the public root, "." for the root itself.
	Rel string
	// DirRequest is set when the URL path was empty or ended with "/".
	DirRequest bool
}

// Document is a file read from the public root.
type Document struct {
	Path        string
	ContentType string
	Content     []byte
}

// PutResult reports the outcome of a write.
type PutResult struct {
	Created      bool
	BytesWritten int64
}

type SaveResult struct {
	BytesWritten int64
}
