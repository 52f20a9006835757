package docserver

import "path/filepath"

// DefaultContentType is used for extensions missing from the table.
const DefaultContentType = "application/octet-stream"

var mimeTypes = map[string]string{
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".txt":  "text/plain",
	".ico":  "image/x-icon",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
}

// ContentTypeFor returns the content type for name based on its extension.
// Matching is case-sensitive; unknown extensions yield DefaultContentType.
func ContentTypeFor(name string) string {
	if ct, ok := mimeTypes[filepath.Ext(name)]; ok {
		return ct
	}
	return DefaultContentType
}
