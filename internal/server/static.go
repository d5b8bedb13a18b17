package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// mountDocs serves the static docs bundle under /docs when the
// configured directory exists. Hashed asset files get aggressive cache
// headers; HTML entry points are always revalidated so a redeploy is
// picked up immediately.
func (s *Server) mountDocs(r chi.Router) {
	if !s.docsAvailable() {
		s.log.Info("docs bundle missing, not mounting",
			zap.String("docs_dir", s.cfg.Paths.DocsDir))
		return
	}
	s.docsOn = true

	fileServer := http.FileServer(http.Dir(s.cfg.Paths.DocsDir))
	handler := http.StripPrefix("/docs", docsCacheHeaders(fileServer))

	r.Handle("/docs", http.RedirectHandler("/docs/", http.StatusMovedPermanently))
	r.Handle("/docs/*", handler)
	s.log.Info("docs mounted", zap.String("docs_dir", s.cfg.Paths.DocsDir))
}

func docsCacheHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/assets/") {
			// Bundled assets carry content hashes in their names.
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		next.ServeHTTP(w, r)
	})
}
