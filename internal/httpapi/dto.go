package httpapi

import (
	"github.com/yourorg/hr-field-resolver/internal/classify"
	"github.com/yourorg/hr-field-resolver/internal/ingest"
	"github.com/yourorg/hr-field-resolver/internal/resolver"
	"github.com/yourorg/hr-field-resolver/internal/validate"
)

// ingestResponse is the wire shape for POST /api/ingest.
type ingestResponse struct {
	FileID             string                    `json:"file_id"`
	Encoding           string                    `json:"encoding"`
	Delimiter          string                    `json:"delimiter,omitempty"`
	SourceFormat       string                    `json:"source_format"`
	RowCount           int                       `json:"row_count"`
	ColumnCount        int                       `json:"column_count"`
	MultiValueColumns  []multiValueColumnDTO     `json:"multi_value_columns,omitempty"`
}

type multiValueColumnDTO struct {
	Column       string   `json:"column"`
	Separator    string   `json:"separator"`
	SampleValues []string `json:"sample_values,omitempty"`
}

func toIngestResponse(fileID string, meta *ingest.ParseMetadata) ingestResponse {
	resp := ingestResponse{
		FileID:       fileID,
		Encoding:     meta.Encoding,
		Delimiter:    meta.Delimiter,
		SourceFormat: meta.SourceFormat,
		RowCount:     meta.RowCount,
		ColumnCount:  meta.ColumnCount,
	}
	for _, mv := range meta.MultiValueColumns {
		resp.MultiValueColumns = append(resp.MultiValueColumns, multiValueColumnDTO{
			Column:       mv.Column,
			Separator:    mv.Separator,
			SampleValues: mv.SampleValues,
		})
	}
	return resp
}

// detectEntityResponse is the wire shape for GET /api/files/:id/detect-entity.
type detectEntityResponse struct {
	Entity     string      `json:"entity"`
	Confidence float64     `json:"confidence"`
	AllScores  []scoreDTO  `json:"all_scores"`
}

type scoreDTO struct {
	Entity           string  `json:"entity"`
	Confidence       float64 `json:"confidence"`
	RequiredCoverage float64 `json:"required_coverage"`
}

func toDetectEntityResponse(r *classify.Result) detectEntityResponse {
	resp := detectEntityResponse{Entity: r.Entity, Confidence: r.Confidence}
	for _, s := range r.AllScores {
		resp.AllScores = append(resp.AllScores, scoreDTO{
			Entity:           s.Entity,
			Confidence:       s.Confidence,
			RequiredCoverage: s.RequiredCoverage,
		})
	}
	return resp
}

// mappingDTO mirrors resolver.Mapping over the wire, used both as a
// ResolutionReport member and as client-supplied input to validate/transform.
type mappingDTO struct {
	Source       string            `json:"source"`
	Target       string            `json:"target"`
	Confidence   float64           `json:"confidence"`
	Method       string            `json:"method,omitempty"`
	Alternatives []alternativeDTO  `json:"alternatives,omitempty"`
}

type alternativeDTO struct {
	Target     string  `json:"target"`
	Confidence float64 `json:"confidence"`
}

func toMappingDTOs(mappings []resolver.Mapping) []mappingDTO {
	out := make([]mappingDTO, 0, len(mappings))
	for _, m := range mappings {
		dto := mappingDTO{Source: m.Source, Target: m.Target, Confidence: m.Confidence, Method: string(m.Method)}
		for _, alt := range m.Alternatives {
			dto.Alternatives = append(dto.Alternatives, alternativeDTO{Target: alt.Target, Confidence: alt.Confidence})
		}
		out = append(out, dto)
	}
	return out
}

func fromMappingDTOs(dtos []mappingDTO) []resolver.Mapping {
	out := make([]resolver.Mapping, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, resolver.Mapping{
			Source:     dto.Source,
			Target:     dto.Target,
			Confidence: dto.Confidence,
			Method:     resolver.Method(dto.Method),
		})
	}
	return out
}

// resolutionReportResponse is the wire shape for POST /api/files/:id/auto-map.
type resolutionReportResponse struct {
	Mappings          []mappingDTO `json:"mappings"`
	UnmappedSources   []string     `json:"unmapped_sources,omitempty"`
	UnmappedTargets   []string     `json:"unmapped_targets,omitempty"`
	MappingPercentage float64      `json:"mapping_percentage"`
	NeedsReview       bool         `json:"needs_review"`
	ReviewReasons     []string     `json:"review_reasons,omitempty"`
}

func toResolutionReportResponse(r *resolver.ResolutionReport) resolutionReportResponse {
	return resolutionReportResponse{
		Mappings:          toMappingDTOs(r.Mappings),
		UnmappedSources:   r.UnmappedSources,
		UnmappedTargets:   r.UnmappedTargets,
		MappingPercentage: r.MappingPercentage,
		NeedsReview:       r.NeedsReview,
		ReviewReasons:     r.ReviewReasons,
	}
}

// mappingsRequest is the body of validate/transform requests: the
// client-confirmed mapping set produced from an (edited) auto-map response.
type mappingsRequest struct {
	Mappings []mappingDTO `json:"mappings"`
}

// validationReportResponse is the wire shape for POST /api/files/:id/validate.
type validationReportResponse struct {
	IsValid bool        `json:"is_valid"`
	Issues  []issueDTO  `json:"issues"`
}

type issueDTO struct {
	Code       string   `json:"code"`
	Severity   string   `json:"severity"`
	Message    string   `json:"message"`
	Column     string   `json:"column,omitempty"`
	Target     string   `json:"target,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	Count      int      `json:"count,omitempty"`
	SampleRows []int    `json:"sample_rows,omitempty"`
}

func toValidationReportResponse(r *validate.Report) validationReportResponse {
	resp := validationReportResponse{IsValid: r.IsValid}
	for _, iss := range r.Issues {
		resp.Issues = append(resp.Issues, issueDTO{
			Code:       string(iss.Code),
			Severity:   string(iss.Severity),
			Message:    iss.Message,
			Column:     iss.Column,
			Target:     iss.Target,
			Suggestion: iss.Suggestion,
			Count:      iss.Count,
			SampleRows: iss.SampleRows,
		})
	}
	return resp
}

// transformRequest is the body of POST /api/files/:id/transform.
type transformRequest struct {
	Mappings []mappingDTO `json:"mappings"`
	Format   string       `json:"format"` // "csv" or "xml"
}

// qualityGateResponse is the wire shape for the supplemented
// GET /api/files/:id/quality-gate endpoint.
type qualityGateResponse struct {
	NeedsReview   bool     `json:"needs_review"`
	ReviewReasons []string `json:"review_reasons,omitempty"`
}
