package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mosipdecode/backend/internal/domain"
	"github.com/mosipdecode/backend/internal/infrastructure/ocrclient"
	"github.com/mosipdecode/backend/internal/infrastructure/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DocumentProcessor is the use case surface the handlers depend on
type DocumentProcessor interface {
	Languages() []string
	Recognize(ctx context.Context, document []byte, language string) (*domain.OCRBatch, error)
	ExtractDocument(ctx context.Context, document []byte, language string) (domain.ExtractionResult, error)
	ExtractBatch(batch *domain.OCRBatch) (domain.ExtractionResult, error)
	DetectDocument(ctx context.Context, document []byte, language string) (*domain.DetectionReport, error)
	VerifyDocument(ctx context.Context, document []byte, language string, claims domain.VerificationClaim) (domain.ExtractionResult, domain.VerificationResult, error)
	VerifyBatch(batch *domain.OCRBatch, claims domain.VerificationClaim) (domain.ExtractionResult, domain.VerificationResult, error)
	QuickVerify(result domain.VerificationResult) bool
	VerifyPages(batches []*domain.OCRBatch, claims domain.VerificationClaim) (domain.MultiPageVerification, error)
}

// HandlerConfig holds settings for the HTTP handlers
type HandlerConfig struct {
	MaxUploadBytes int64
	Logger         *zerolog.Logger
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	documents      DocumentProcessor
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewHandler creates a new HTTP handler. A nil processor makes every API endpoint answer 503.
func NewHandler(documents DocumentProcessor, config HandlerConfig) *Handler {
	maxUpload := config.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 20 << 20
	}
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = config.Logger.With().Str("component", "http").Logger()
	}
	return &Handler{
		documents:      documents,
		maxUploadBytes: maxUpload,
		logger:         logger,
	}
}

// HealthCheck returns the health status of the API and the supported languages
func (h *Handler) HealthCheck(c *gin.Context) {
	languages := []string{}
	if h.documents != nil {
		languages = h.documents.Languages()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "mosipdecode-backend",
		"version":   "1.0.0",
		"languages": languages,
	})
}

// Extract handles POST /api/v1/extract with a multipart document upload
func (h *Handler) Extract(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	document, language, err := h.readDocument(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	extracted, err := h.documents.ExtractDocument(c.Request.Context(), document, language)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"extracted_data": extracted,
	})
}

// ExtractFragments handles POST /api/v1/extract/fragments with an OCR batch as JSON
func (h *Handler) ExtractFragments(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	body, err := h.readBody(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	batch, err := ocrclient.DecodeBatch(body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	extracted, err := h.documents.ExtractBatch(batch)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"extracted_data": extracted,
	})
}

// Detect handles POST /api/v1/detect and lists every OCR detection
func (h *Handler) Detect(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	document, language, err := h.readDocument(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	detections, err := h.documents.DetectDocument(c.Request.Context(), document, language)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"language":   detections.Language,
		"detections": detections.Detections,
		"summary":    detections.Summary,
	})
}

// Verify handles POST /api/v1/verify: a document upload plus verification_data claims.
// Blank claims are skipped, so an all-blank object answers 200 with an empty breakdown.
// ?format=xlsx returns the result as a workbook.
func (h *Handler) Verify(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	document, language, err := h.readDocument(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	claims, err := domain.ParseClaims([]byte(c.PostForm("verification_data")))
	if err != nil {
		h.respondError(c, err)
		return
	}

	extracted, result, err := h.documents.VerifyDocument(c.Request.Context(), document, language, claims)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondVerification(c, extracted, result)
}

// fragmentsVerifyRequest is the JSON body of /api/v1/verify/fragments
type fragmentsVerifyRequest struct {
	Batch  json.RawMessage `json:"batch"`
	Claims json.RawMessage `json:"claims"`
}

// VerifyFragments handles POST /api/v1/verify/fragments with an OCR batch and claims as JSON
func (h *Handler) VerifyFragments(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	body, err := h.readBody(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req fragmentsVerifyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}
	batch, err := ocrclient.DecodeBatch(req.Batch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	claims, err := domain.ParseClaims(req.Claims)
	if err != nil {
		h.respondError(c, err)
		return
	}

	extracted, result, err := h.documents.VerifyBatch(batch, claims)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondVerification(c, extracted, result)
}

// QuickVerify handles POST /api/v1/verify/quick and answers with a single pass/fail
func (h *Handler) QuickVerify(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	document, language, err := h.readDocument(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	claims, err := domain.ParseClaims([]byte(c.PostForm("verification_data")))
	if err != nil {
		h.respondError(c, err)
		return
	}

	_, result, err := h.documents.VerifyDocument(c.Request.Context(), document, language, claims)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"verified":   h.documents.QuickVerify(result),
		"match_rate": result.Summary.OverallMatchRate,
	})
}

// multipageRequest is the JSON body of /api/v1/verify/multipage
type multipageRequest struct {
	Pages  json.RawMessage `json:"pages"`
	Claims json.RawMessage `json:"claims"`
}

// VerifyMultipage handles POST /api/v1/verify/multipage.
// JSON bodies carry recognized pages; multipart bodies carry one "documents" file per page.
func (h *Handler) VerifyMultipage(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var (
		batches []*domain.OCRBatch
		claims  domain.VerificationClaim
		err     error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		batches, claims, err = h.readMultipageUpload(c)
	} else {
		batches, claims, err = h.readMultipageJSON(c)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	out, err := h.documents.VerifyPages(batches, claims)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"total_pages":          out.TotalPages,
		"pages":                out.Pages,
		"overall_verification": out.Overall,
	})
}

func (h *Handler) readMultipageJSON(c *gin.Context) ([]*domain.OCRBatch, domain.VerificationClaim, error) {
	body, err := h.readBody(c)
	if err != nil {
		return nil, nil, err
	}
	var req multipageRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	batches, err := ocrclient.DecodeBatches(req.Pages)
	if err != nil {
		return nil, nil, err
	}
	claims, err := domain.ParseClaims(req.Claims)
	if err != nil {
		return nil, nil, err
	}
	return batches, claims, nil
}

func (h *Handler) readMultipageUpload(c *gin.Context) ([]*domain.OCRBatch, domain.VerificationClaim, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	files := form.File["documents"]
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w: no documents uploaded", domain.ErrInvalidRequest)
	}

	claims, err := domain.ParseClaims([]byte(c.PostForm("verification_data")))
	if err != nil {
		return nil, nil, err
	}

	language := c.PostForm("language")
	batches := make([]*domain.OCRBatch, 0, len(files))
	for i, fh := range files {
		document, err := readFileHeader(fh)
		if err != nil {
			return nil, nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		batch, err := h.documents.Recognize(c.Request.Context(), document, language)
		if err != nil {
			return nil, nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		batches = append(batches, batch)
	}
	return batches, claims, nil
}

func (h *Handler) respondVerification(c *gin.Context, extracted domain.ExtractionResult, result domain.VerificationResult) {
	if c.Query("format") == "xlsx" {
		data, err := report.VerificationWorkbook(result, extracted)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="verification.xlsx"`)
		c.Data(http.StatusOK, xlsxContentType, data)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"extracted_data": extracted,
		"verification":   result,
	})
}

// ready answers 503 when no document processor is wired
func (h *Handler) ready(c *gin.Context) bool {
	if h.documents == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "document service not configured",
		})
		return false
	}
	return true
}

// readDocument reads the "document" upload and the optional "language" form field
func (h *Handler) readDocument(c *gin.Context) ([]byte, string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fh, err := c.FormFile("document")
	if err != nil {
		return nil, "", fmt.Errorf("%w: document file is required: %w", domain.ErrInvalidRequest, err)
	}
	document, err := readFileHeader(fh)
	if err != nil {
		return nil, "", err
	}
	return document, c.PostForm("language"), nil
}

func (h *Handler) readBody(c *gin.Context) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	return body, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open upload: %v", domain.ErrInvalidRequest, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read upload: %v", domain.ErrInvalidRequest, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidRequest)
	}
	return data, nil
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	event := h.logger.Warn()
	if status >= http.StatusInternalServerError {
		event = h.logger.Error()
	}
	event.Err(err).
		Str("request_id", c.GetString(requestIDKey)).
		Int("status", status).
		Msg("request failed")

	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

func statusFor(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidBatch),
		errors.Is(err, domain.ErrUnsupportedLanguage):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOCRFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
