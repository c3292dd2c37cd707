package httpapi

import (
	"embed"
	"net/http"
)

//go:embed static/index.html
var embeddedStatic embed.FS

func newStaticHandler() http.Handler {
	page, err := embeddedStatic.ReadFile("static/index.html")
	if err != nil {
		return http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.static.ServeHTTP(w, r)
}
