package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/jonathan/deal-docs/internal/generator"
	"github.com/jonathan/deal-docs/internal/server/middleware"
	"github.com/jonathan/deal-docs/internal/types"
	"k8s.io/klog/v2"
)

// maxRequestBody bounds the generate request body.
const maxRequestBody = 1 << 16

// Option is a selectable value in the options response.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionsResponse lists the values the generate endpoint accepts.
type OptionsResponse struct {
	DocumentTypes []Option `json:"documentTypes"`
	Industries    []Option `json:"industries"`
}

// handleGenerate builds the requested document and returns it as a download.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetRequestID(r.Context())

	var req types.GenerationRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil {
		err = &ErrRequestBody{Cause: err}
		klog.V(2).Infof("Rejected generate request %s: %v", id, err)
		s.errorResponse(w, HTTPStatus(err), PublicMessage(err, msgGenerateFailed))
		return
	}

	result, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			klog.Errorf("Error generating document %s/%s (request %s): %v", req.DocumentType, req.Industry, id, err)
		} else {
			klog.V(2).Infof("Rejected generate request %s: %v", id, err)
		}
		s.errorResponse(w, status, PublicMessage(err, msgGenerateFailed))
		return
	}

	if result.Degraded {
		klog.Infof("Generated %s without key considerations (request %s)", result.Filename, id)
	}
	s.fileResponse(w, result)
}

// handleTestDocument returns the fixed connectivity test document.
func (s *Server) handleTestDocument(w http.ResponseWriter, r *http.Request) {
	result, err := s.generator.GenerateTest(r.Context())
	if err != nil {
		klog.Errorf("Error generating test document (request %s): %v", middleware.GetRequestID(r.Context()), err)
		s.errorResponse(w, http.StatusInternalServerError, msgTestGenerateFailed)
		return
	}
	s.fileResponse(w, result)
}

// handleOptions lists the document types and industries.
func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, options())
}

func options() OptionsResponse {
	resp := OptionsResponse{
		DocumentTypes: make([]Option, 0, len(types.DocumentTypes())),
		Industries:    make([]Option, 0, len(types.Industries())),
	}
	for _, dt := range types.DocumentTypes() {
		resp.DocumentTypes = append(resp.DocumentTypes, Option{Value: string(dt), Label: dt.Title()})
	}
	for _, ind := range types.Industries() {
		resp.Industries = append(resp.Industries, Option{Value: string(ind), Label: ind.Title()})
	}
	return resp
}

// fileResponse writes a generated document as an attachment.
func (s *Server) fileResponse(w http.ResponseWriter, result *generator.Result) {
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", contentDisposition(result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		klog.Errorf("Error writing %s: %v", result.Filename, err)
	}
}

// contentDisposition builds an attachment header with filename quoted or
// encoded as needed.
func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
