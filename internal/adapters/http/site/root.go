// Package site serves the rendered static site.
package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
)

// Error constants
var (
	ErrServe = errors.New("static site serve failed")
)

// Register attaches the static site rooted at dir to mux at /. It returns
// an error wrapping ErrServe when dir is not a readable directory; no route
// is registered in that case.
func Register(_ context.Context, mux *http.ServeMux, dir string) error {
	if mux == nil {
		panic("mux is nil")
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrServe, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrServe, dir)
	}
	mux.Handle("/", NewRootHandler(dir))
	return nil
}

// RootHandler handles requests for files of the static site.
type RootHandler struct {
	files http.Handler
}

// NewRootHandler creates a root handler serving dir.
func NewRootHandler(dir string) *RootHandler {
	return &RootHandler{files: http.FileServer(http.Dir(dir))}
}

// ServeHTTP serves GET and HEAD requests from the site directory.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	h.files.ServeHTTP(w, r)
}
