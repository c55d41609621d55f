// Package httpapi is the thin HTTP driver over the Resolver Facade (C11):
// it decodes requests, calls the Facade, and encodes responses. All
// domain logic lives in internal/facade and below.
package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourorg/hr-field-resolver/internal/facade"
	"github.com/yourorg/hr-field-resolver/internal/httpapi/middleware"
	"github.com/yourorg/hr-field-resolver/internal/ingest"
	"github.com/yourorg/hr-field-resolver/internal/storage"
	"github.com/yourorg/hr-field-resolver/internal/transform"
)

// Handlers holds the Facade and wires every route to a handler method.
type Handlers struct {
	Facade *facade.Facade
}

// NewHandlers builds a Handlers from a Facade.
func NewHandlers(f *facade.Facade) *Handlers {
	return &Handlers{Facade: f}
}

// Health reports liveness, per the teacher's handlers/health.go shape.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "hr-field-resolver"})
}

// Metrics exposes the request counters collected by middleware.MetricsMiddleware.
func (h *Handlers) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.GetMetrics())
}

// Ingest handles POST /api/ingest: a multipart upload of one HR export
// file, per spec §4.6.
func (h *Handlers) Ingest(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(&middleware.ErrBadRequest{Err: errors.New("missing multipart field \"file\"")})
		return
	}

	opened, err := fileHeader.Open()
	if err != nil {
		c.Error(&middleware.ErrBadRequest{Err: err})
		return
	}
	defer opened.Close()

	raw, err := io.ReadAll(opened)
	if err != nil {
		c.Error(&middleware.ErrBadRequest{Err: err})
		return
	}

	fileID, meta, err := h.Facade.Ingest(raw, fileHeader.Filename)
	if err != nil {
		c.Error(classifyIngestError(err))
		return
	}

	c.JSON(http.StatusOK, toIngestResponse(fileID, meta))
}

// DetectEntity handles GET /api/files/:id/detect-entity, per spec §4.8.
func (h *Handlers) DetectEntity(c *gin.Context) {
	fileID := c.Param("id")
	result, err := h.Facade.DetectEntity(c.Request.Context(), fileID)
	if err != nil {
		c.Error(classifyLookupError(err))
		return
	}
	c.JSON(http.StatusOK, toDetectEntityResponse(result))
}

// AutoMap handles POST /api/files/:id/auto-map?entity=Employee, per §4.3.
func (h *Handlers) AutoMap(c *gin.Context) {
	fileID := c.Param("id")
	entity := c.Query("entity")
	if entity == "" {
		c.Error(&middleware.ErrBadRequest{Err: errors.New("missing \"entity\" query parameter")})
		return
	}

	report, err := h.Facade.AutoMap(c.Request.Context(), fileID, entity)
	if err != nil {
		c.Error(classifyLookupError(err))
		return
	}
	c.JSON(http.StatusOK, toResolutionReportResponse(report))
}

// Validate handles POST /api/files/:id/validate?entity=Employee, per §4.5.
func (h *Handlers) Validate(c *gin.Context) {
	fileID := c.Param("id")
	entity := c.Query("entity")
	if entity == "" {
		c.Error(&middleware.ErrBadRequest{Err: errors.New("missing \"entity\" query parameter")})
		return
	}

	var req mappingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(&middleware.ErrBadRequest{Err: err})
		return
	}

	report, err := h.Facade.Validate(fileID, entity, fromMappingDTOs(req.Mappings))
	if err != nil {
		c.Error(classifyLookupError(err))
		return
	}
	c.JSON(http.StatusOK, toValidationReportResponse(report))
}

// Transform handles POST /api/files/:id/transform?entity=Employee, per §4.7.
func (h *Handlers) Transform(c *gin.Context) {
	fileID := c.Param("id")
	entity := c.Query("entity")
	if entity == "" {
		c.Error(&middleware.ErrBadRequest{Err: errors.New("missing \"entity\" query parameter")})
		return
	}

	var req transformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(&middleware.ErrBadRequest{Err: err})
		return
	}

	format, err := parseFormat(req.Format)
	if err != nil {
		c.Error(&middleware.ErrBadRequest{Err: err})
		return
	}

	out, err := h.Facade.Transform(fileID, entity, fromMappingDTOs(req.Mappings), format)
	if err != nil {
		c.Error(classifyTransformError(err))
		return
	}

	contentType := "text/csv"
	if format == transform.FormatXML {
		contentType = "application/xml"
	}
	c.Data(http.StatusOK, contentType, out)
}

// QualityGate handles GET /api/files/:id/quality-gate?entity=Employee, a
// supplemented endpoint surfacing ResolutionReport.NeedsReview without
// requiring the caller to re-derive it from the full mapping set.
func (h *Handlers) QualityGate(c *gin.Context) {
	fileID := c.Param("id")
	entity := c.Query("entity")
	if entity == "" {
		c.Error(&middleware.ErrBadRequest{Err: errors.New("missing \"entity\" query parameter")})
		return
	}

	report, err := h.Facade.AutoMap(c.Request.Context(), fileID, entity)
	if err != nil {
		c.Error(classifyLookupError(err))
		return
	}
	c.JSON(http.StatusOK, qualityGateResponse{
		NeedsReview:   report.NeedsReview,
		ReviewReasons: report.ReviewReasons,
	})
}

func parseFormat(raw string) (transform.Format, error) {
	switch transform.Format(raw) {
	case transform.FormatCSV:
		return transform.FormatCSV, nil
	case transform.FormatXML:
		return transform.FormatXML, nil
	default:
		return "", errors.New("format must be \"csv\" or \"xml\"")
	}
}

// classifyIngestError maps Ingestor errors (§7 taxonomy) to HTTP status.
func classifyIngestError(err error) error {
	var tooLarge *ingest.FileTooLargeError
	var badFormat *ingest.InvalidFileFormatError
	var encodingErr *ingest.EncodingError
	var delimErr *ingest.DelimiterError
	switch {
	case errors.As(err, &tooLarge):
		return &middleware.ErrRequestTooLarge{Err: err}
	case errors.As(err, &badFormat), errors.As(err, &encodingErr), errors.As(err, &delimErr):
		return &middleware.ErrBadRequest{Err: err}
	default:
		return err
	}
}

// classifyLookupError maps Retrieve/Get lookups (FILE_NOT_FOUND,
// SCHEMA_NOT_FOUND) to 404, everything else falls through to 500.
func classifyLookupError(err error) error {
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, facade.ErrSchemaNotFound) {
		return &middleware.ErrNotFound{Err: err}
	}
	return err
}

// classifyTransformError adds DATA_LOSS_DETECTED / invalid-state mapping
// on top of the lookup taxonomy, per §4.7's precondition.
func classifyTransformError(err error) error {
	var invalidState *facade.InvalidStateError
	var dataLoss *transform.DataLossError
	switch {
	case errors.As(err, &invalidState), errors.As(err, &dataLoss):
		return &middleware.ErrUnprocessable{Err: err}
	default:
		return classifyLookupError(err)
	}
}
