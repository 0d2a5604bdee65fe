package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mosipdecode/backend/internal/domain"
)

// DocumentServiceConfig holds configuration for the document service
type DocumentServiceConfig struct {
	CacheTTL time.Duration
	Logger   *zerolog.Logger
}

// DocumentService runs uploaded documents through recognition, extraction and verification.
// The cache is optional; a nil cache disables it.
type DocumentService struct {
	cache        domain.CacheRepository
	engine       domain.OCREngine
	extraction   *ExtractionService
	verification *VerificationService
	cacheTTL     time.Duration
	logger       zerolog.Logger
}

// NewDocumentService creates a new document service with dependencies
func NewDocumentService(
	cache domain.CacheRepository,
	engine domain.OCREngine,
	extraction *ExtractionService,
	verification *VerificationService,
	config DocumentServiceConfig,
) *DocumentService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = config.Logger.With().Str("component", "document").Logger()
	}

	return &DocumentService{
		cache:        cache,
		engine:       engine,
		extraction:   extraction,
		verification: verification,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// Languages lists the supported language tags
func (s *DocumentService) Languages() []string {
	return s.extraction.Registry().Languages()
}

// Recognize runs OCR on a document.
// Flow: check cache -> call OCR engine -> cache successful batches -> return
func (s *DocumentService) Recognize(ctx context.Context, document []byte, language string) (*domain.OCRBatch, error) {
	if len(document) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidRequest)
	}
	if s.engine == nil {
		return nil, fmt.Errorf("%w: no OCR engine configured", domain.ErrOCRFailure)
	}

	language = s.extraction.Registry().Resolve(language).Language()
	cacheKey := generateCacheKey(document, language)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		s.logger.Debug().Str("key", cacheKey).Msg("OCR cache hit")
		return cached, nil
	}

	batch, err := s.engine.Recognize(ctx, document, language)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOCRFailure, err)
	}
	if batch.Language == "" {
		batch.Language = language
	}

	if batch.Error == "" {
		if err := s.setInCache(ctx, cacheKey, batch); err != nil {
			s.logger.Warn().Err(err).Str("key", cacheKey).Msg("failed to cache OCR batch")
		}
	}

	return batch, nil
}

// ExtractDocument recognizes a document and resolves its fields
func (s *DocumentService) ExtractDocument(ctx context.Context, document []byte, language string) (domain.ExtractionResult, error) {
	batch, err := s.Recognize(ctx, document, language)
	if err != nil {
		return nil, err
	}
	return s.extraction.Extract(batch)
}

// ExtractBatch resolves fields from an already recognized batch
func (s *DocumentService) ExtractBatch(batch *domain.OCRBatch) (domain.ExtractionResult, error) {
	return s.extraction.Extract(batch)
}

// DetectDocument recognizes a document and lists its detections
func (s *DocumentService) DetectDocument(ctx context.Context, document []byte, language string) (*domain.DetectionReport, error) {
	batch, err := s.Recognize(ctx, document, language)
	if err != nil {
		return nil, err
	}
	return s.extraction.Detect(batch)
}

// DetectBatch lists the detections of an already recognized batch
func (s *DocumentService) DetectBatch(batch *domain.OCRBatch) (*domain.DetectionReport, error) {
	return s.extraction.Detect(batch)
}

// VerifyDocument recognizes a document and verifies claims against it.
// Blank claims are skipped; a claim set with none left yields an empty breakdown.
func (s *DocumentService) VerifyDocument(
	ctx context.Context,
	document []byte,
	language string,
	claims domain.VerificationClaim,
) (domain.ExtractionResult, domain.VerificationResult, error) {
	extracted, err := s.ExtractDocument(ctx, document, language)
	if err != nil {
		return nil, domain.VerificationResult{}, err
	}

	return extracted, s.verification.Verify(claims, extracted), nil
}

// VerifyBatch verifies claims against an already recognized batch
func (s *DocumentService) VerifyBatch(
	batch *domain.OCRBatch,
	claims domain.VerificationClaim,
) (domain.ExtractionResult, domain.VerificationResult, error) {
	extracted, err := s.extraction.Extract(batch)
	if err != nil {
		return nil, domain.VerificationResult{}, err
	}

	return extracted, s.verification.Verify(claims, extracted), nil
}

// QuickVerify applies the pass/fail gate to a verification result
func (s *DocumentService) QuickVerify(result domain.VerificationResult) bool {
	return s.verification.QuickVerify(result)
}

// VerifyPages extracts every page and keeps the best verdict per claim.
// A recognizer error on any page fails the whole call.
func (s *DocumentService) VerifyPages(
	batches []*domain.OCRBatch,
	claims domain.VerificationClaim,
) (domain.MultiPageVerification, error) {
	if len(batches) == 0 {
		return domain.MultiPageVerification{}, fmt.Errorf("%w: no pages", domain.ErrInvalidRequest)
	}

	pages := make([]domain.ExtractionResult, 0, len(batches))
	for i, batch := range batches {
		extracted, err := s.extraction.Extract(batch)
		if err != nil {
			return domain.MultiPageVerification{}, fmt.Errorf("page %d: %w", i+1, err)
		}
		pages = append(pages, extracted)
	}

	return s.verification.VerifyPages(claims, pages), nil
}

// generateCacheKey creates a cache key from the document digest.
// Format: "ocr:{language}:{sha256}"
func generateCacheKey(document []byte, language string) string {
	sum := sha256.Sum256(document)
	return fmt.Sprintf("ocr:%s:%s", language, hex.EncodeToString(sum[:]))
}

// getFromCache retrieves an OCR batch from cache
func (s *DocumentService) getFromCache(ctx context.Context, key string) (*domain.OCRBatch, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if batch, ok := value.(*domain.OCRBatch); ok {
		return batch, nil
	}

	// Cache backends hand back decoded JSON, so round-trip it into the typed batch
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, domain.ErrCacheMiss
	}
	var batch domain.OCRBatch
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return &batch, nil
}

// setInCache stores an OCR batch in cache
func (s *DocumentService) setInCache(ctx context.Context, key string, batch *domain.OCRBatch) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, key, batch, s.cacheTTL)
}
