package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"k8s.io/klog/v2"
)

//go:embed templates/index.html
var templateFS embed.FS

type indexData struct {
	Options   OptionsResponse
	Copyright string
}

func parseIndex() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/index.html")
}

// handleIndex serves the selection form.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	data := indexData{Options: options(), Copyright: s.copyright}
	if err := s.index.Execute(&buf, data); err != nil {
		klog.Errorf("Error rendering index page: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
