package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/deal-docs/internal/catalog"
	"github.com/jonathan/deal-docs/internal/config"
	"github.com/jonathan/deal-docs/internal/document"
	"github.com/jonathan/deal-docs/internal/generator"
	"github.com/jonathan/deal-docs/internal/rendering"
	"github.com/jonathan/deal-docs/internal/server/middleware"
	"github.com/jonathan/deal-docs/internal/server/ratelimit"
	"github.com/jonathan/deal-docs/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreAnyFunction("k8s.io/klog/v2.(*flushDaemon).run.func1"))
}

var fixedTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type failingSerializer struct{}

func (failingSerializer) Serialize(*document.Document) ([]byte, error) {
	return nil, &rendering.RenderError{Message: "disk on fire"}
}

type testOptions struct {
	serializer rendering.Serializer
	strict     bool
	rateLimit  *ratelimit.Config
}

func newTestServer(t *testing.T, opts testOptions) *Server {
	t.Helper()

	if opts.serializer == nil {
		opts.serializer = rendering.NewDocxSerializer()
	}
	if opts.rateLimit == nil {
		opts.rateLimit = &ratelimit.Config{Enabled: false}
	}

	cfg := config.Default()
	gen := generator.New(
		catalog.Default(),
		document.NewAssembler(cfg.Publisher),
		opts.serializer,
		generator.WithClock(func() time.Time { return fixedTime }),
		generator.WithStrictSelection(opts.strict),
	)

	s, err := New(Config{
		Port:      0,
		Generator: gen,
		RateLimit: opts.rateLimit,
		Copyright: cfg.Publisher.Copyright,
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func postGenerate(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func attachmentName(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	require.Equal(t, "attachment", disposition)
	return params["filename"]
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["error"]
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, testOptions{})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGenerate_Success(t *testing.T) {
	s := newTestServer(t, testOptions{})

	w := postGenerate(t, s.Handler(), `{"documentType":"information_memorandum","industry":"managed_it_services"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, rendering.MIMEType, w.Header().Get("Content-Type"))
	assert.Equal(t, "information_memorandum_managed_it_services_20250314093000.docx", attachmentName(t, w))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), "body should be a zip archive")
}

func TestGenerate_Deterministic(t *testing.T) {
	s := newTestServer(t, testOptions{})
	body := `{"documentType":"sales_prospectus","industry":"engineering"}`

	first := postGenerate(t, s.Handler(), body)
	second := postGenerate(t, s.Handler(), body)

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
}

func TestGenerate_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing industry", body: `{"documentType":"information_memorandum"}`},
		{name: "missing document type", body: `{"industry":"engineering"}`},
		{name: "empty values", body: `{"documentType":"","industry":""}`},
		{name: "empty object", body: `{}`},
		{name: "malformed json", body: `{"documentType":`},
		{name: "empty body", body: ``},
	}

	s := newTestServer(t, testOptions{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postGenerate(t, s.Handler(), tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, types.MissingSelectionMessage, errorBody(t, w))
		})
	}
}

func TestGenerate_UnknownPairDegrades(t *testing.T) {
	s := newTestServer(t, testOptions{})

	w := postGenerate(t, s.Handler(), `{"documentType":"annual_report","industry":"engineering"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "annual_report_engineering_20250314093000.docx")
}

func TestGenerate_FilenameEscaped(t *testing.T) {
	s := newTestServer(t, testOptions{})

	w := postGenerate(t, s.Handler(), `{"documentType":"x\"; evil=1","industry":"engineering"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `x"; evil=1_engineering_20250314093000.docx`, attachmentName(t, w))
	_, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.NotContains(t, params, "evil")
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t, "attachment; filename=a_b_20250101000000.docx", contentDisposition("a_b_20250101000000.docx"))

	_, params, err := mime.ParseMediaType(contentDisposition("énergie_b.docx"))
	require.NoError(t, err)
	assert.Equal(t, "énergie_b.docx", params["filename"])
}

func TestGenerate_StrictSelection(t *testing.T) {
	s := newTestServer(t, testOptions{strict: true})

	w := postGenerate(t, s.Handler(), `{"documentType":"annual_report","industry":"engineering"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, types.UnknownSelectionMessage, errorBody(t, w))
}

func TestGenerate_SerializerFailure(t *testing.T) {
	s := newTestServer(t, testOptions{serializer: failingSerializer{}})

	w := postGenerate(t, s.Handler(), `{"documentType":"business_overview","industry":"engineering"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to generate document", errorBody(t, w))
	assert.NotContains(t, w.Body.String(), "disk on fire")
}

func TestTestDocument(t *testing.T) {
	s := newTestServer(t, testOptions{})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/test", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, rendering.MIMEType, w.Header().Get("Content-Type"))
	assert.Equal(t, "test-document.docx", attachmentName(t, w))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestTestDocument_Failure(t *testing.T) {
	s := newTestServer(t, testOptions{serializer: failingSerializer{}})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/test", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to generate test document", errorBody(t, w))
}

func TestOptionsEndpoint(t *testing.T) {
	s := newTestServer(t, testOptions{})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/options", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp OptionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.DocumentTypes, 4)
	require.Len(t, resp.Industries, 2)
	assert.Equal(t, Option{Value: "information_memorandum", Label: "Information Memorandum"}, resp.DocumentTypes[0])
	assert.Equal(t, Option{Value: "managed_it_services", Label: "Managed It Services"}, resp.Industries[0])
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(t, testOptions{})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `<option value="investment_thesis">Investment Thesis</option>`)
	assert.Contains(t, body, `<option value="engineering">Engineering</option>`)
	assert.Contains(t, body, "Cloud Development Group")
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, testOptions{})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerate_WrongMethod(t *testing.T) {
	s := newTestServer(t, testOptions{})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/generate", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, testOptions{})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/generate", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t, testOptions{})

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
	})

	t.Run("propagated", func(t *testing.T) {
		const id = "3f2b8c1e-9a4d-4e6f-8b7a-1c2d3e4f5a6b"
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(middleware.RequestIDHeader, id)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		assert.Equal(t, id, w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, testOptions{rateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/api/generate", Method: http.MethodPost, Limit: 1, Window: time.Hour, Burst: 1},
		},
	}})
	body := `{"documentType":"investment_thesis","industry":"engineering"}`

	first := postGenerate(t, s.Handler(), body)
	second := postGenerate(t, s.Handler(), body)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	health := httptest.NewRecorder()
	s.Handler().ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestNew_RequiresGenerator(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := newTestServer(t, testOptions{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: http.StatusOK},
		{name: "validation", err: &types.ValidationError{Field: "Industry", Message: types.MissingSelectionMessage}, expected: http.StatusBadRequest},
		{name: "request body", err: &ErrRequestBody{Cause: io.ErrUnexpectedEOF}, expected: http.StatusBadRequest},
		{name: "generation", err: &generator.GenerationError{Message: "boom"}, expected: http.StatusInternalServerError},
		{name: "wrapped validation", err: errors.Join(errors.New("ctx"), &types.ValidationError{Message: "x"}), expected: http.StatusBadRequest},
		{name: "unknown", err: assert.AnError, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, types.UnknownSelectionMessage,
		PublicMessage(&types.ValidationError{Message: types.UnknownSelectionMessage}, msgGenerateFailed))
	assert.Equal(t, types.MissingSelectionMessage,
		PublicMessage(&ErrRequestBody{Cause: io.EOF}, msgGenerateFailed))
	assert.Equal(t, msgGenerateFailed,
		PublicMessage(&generator.GenerationError{Message: "secret detail"}, msgGenerateFailed))
}
