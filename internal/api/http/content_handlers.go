package http

import (
	"errors"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/imuno/internal/config"
	"github.com/mind-engage/imuno/internal/content"
	"github.com/mind-engage/imuno/internal/storage"
)

// GET /modules/{moduleID}
func GetModuleHandler(loader *content.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "moduleID"))
		m, err := loader.Module(r.Context(), id)
		if err != nil {
			writeContentError(w, r, "load module", err)
			return
		}
		config.JSON(w, http.StatusOK, m)
	}
}

// GET /references
func ListReferencesHandler(loader *content.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refs, err := loader.References(r.Context())
		if err != nil {
			writeContentError(w, r, "load references", err)
			return
		}
		config.JSON(w, http.StatusOK, refs)
	}
}

// documentTypes lists the extensions served by GetDocumentHandler. SVG is
// left out since it can carry script.
var documentTypes = map[string]bool{
	".json": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// GET /documents/* serves content documents and the images they link to.
// Module documents go through the loader so their rich text is sanitised;
// every other document is passed through as stored.
func GetDocumentHandler(src storage.Source, loader *content.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		ext := strings.ToLower(path.Ext(name))
		if name == "" || !documentTypes[ext] || strings.Contains(name, "\\") || hasParentSegment(name) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		if id, ok := content.ModuleIDFromDocument(name); ok {
			m, err := loader.Module(r.Context(), id)
			if err != nil {
				writeContentError(w, r, "load module", err)
				return
			}
			config.JSON(w, http.StatusOK, m)
			return
		}

		b, err := src.Fetch(r.Context(), name)
		if err != nil {
			writeContentError(w, r, "fetch document", err)
			return
		}
		ct := mime.TypeByExtension(ext)
		if ct == "" {
			ct = "application/octet-stream"
		}
		w.Header().Set("Content-Type", ct)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		_, _ = w.Write(b)
	}
}

func hasParentSegment(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

func writeContentError(w http.ResponseWriter, r *http.Request, what string, err error) {
	switch {
	case errors.Is(err, content.ErrInvalidModuleID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		config.WithContext(r.Context()).WithError(err).Error(what)
		http.Error(w, what+": upstream content unavailable", http.StatusBadGateway)
	}
}
