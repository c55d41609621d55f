package httpapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourorg/hr-field-resolver/internal/alias"
	"github.com/yourorg/hr-field-resolver/internal/config"
	"github.com/yourorg/hr-field-resolver/internal/facade"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
	"github.com/yourorg/hr-field-resolver/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	registry, err := schemaregistry.NewRegistry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	aliases, err := alias.NewWithDefaults()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := facade.New(storage.New(time.Hour), registry, aliases, nil, 1<<20)

	cfg := &config.Config{
		CORSOrigins:     []string{"http://localhost:3000"},
		TrustedProxies:  []string{"127.0.0.1"},
		IngestRateLimit: 1000,
		MapRateLimit:    1000,
		RateLimitWindow: time.Minute,
	}
	return NewRouter(cfg, f)
}

func multipartCSV(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return buf, w.FormDataContentType()
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestIngestEndToEndFlow(t *testing.T) {
	r := newTestRouter(t)

	body, contentType := multipartCSV(t, "roster.csv",
		"EmployeeID,FirstName,LastName,Email\n1,Alice,Smith,alice@example.com\n2,Bob,Jones,bob@example.com\n")

	req := httptest.NewRequest(http.MethodPost, "/api/ingest", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("ingest: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var ingestResp ingestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &ingestResp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ingestResp.FileID == "" {
		t.Fatal("expected a non-empty file_id")
	}
	if ingestResp.RowCount != 2 {
		t.Fatalf("expected 2 rows, got %d", ingestResp.RowCount)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/files/"+ingestResp.FileID+"/detect-entity", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("detect-entity: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var detectResp detectEntityResponse
	if err := json.Unmarshal(w.Body.Bytes(), &detectResp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detectResp.Entity != "Employee" {
		t.Fatalf("expected Employee, got %q", detectResp.Entity)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/files/"+ingestResp.FileID+"/auto-map?entity=Employee", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("auto-map: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var mapResp resolutionReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &mapResp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mapResp.Mappings) == 0 {
		t.Fatal("expected at least one mapping")
	}

	mappingsBody, err := json.Marshal(mappingsRequest{Mappings: mapResp.Mappings})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	validateReq := httptest.NewRequest(http.MethodPost, "/api/files/"+ingestResp.FileID+"/validate?entity=Employee", bytes.NewReader(mappingsBody))
	validateReq.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, validateReq)
	if w.Code != http.StatusOK {
		t.Fatalf("validate: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var validateResp validationReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &validateResp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !validateResp.IsValid {
		t.Fatalf("expected valid report, got issues: %+v", validateResp.Issues)
	}

	transformBody, err := json.Marshal(transformRequest{Mappings: mapResp.Mappings, Format: "csv"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	transformReq := httptest.NewRequest(http.MethodPost, "/api/files/"+ingestResp.FileID+"/transform?entity=Employee", bytes.NewReader(transformBody))
	transformReq.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, transformReq)
	if w.Code != http.StatusOK {
		t.Fatalf("transform: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.Len() == 0 {
		t.Fatal("expected non-empty transform body")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/files/"+ingestResp.FileID+"/quality-gate?entity=Employee", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("quality-gate: expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestIngestRejectsMissingFile(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/ingest", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDetectEntityUnknownFileReturns404(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/files/does-not-exist/detect-entity", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
