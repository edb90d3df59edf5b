package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler serves the single-page application build.
// Unknown paths fall back to index.html so client-side routing works.
type StaticHandler struct {
	root string
}

// NewStaticHandler creates a StaticHandler rooted at dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{root: dir}
}

// Serve handles GET /* for anything not matched by an API route.
func (h *StaticHandler) Serve(w http.ResponseWriter, r *http.Request) {
	// Reject path traversal before touching the filesystem
	cleaned := filepath.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") {
		cleaned = "index.html"
	}

	path := filepath.Join(h.root, cleaned)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		path = filepath.Join(h.root, "index.html")
	}

	http.ServeFile(w, r, path)
}
