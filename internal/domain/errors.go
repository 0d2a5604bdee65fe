package domain

import "errors"

var (
	// ErrOCRFailure is returned when the OCR collaborator fails or reports an error.
	// Extraction never returns a partial result alongside it.
	ErrOCRFailure = errors.New("OCR engine failed")

	// ErrMalformedFragment marks a single OCR fragment that cannot be used
	ErrMalformedFragment = errors.New("malformed OCR fragment")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidBatch is returned when an OCR batch payload violates its schema
	ErrInvalidBatch = errors.New("invalid OCR batch")

	// ErrUnsupportedLanguage is returned when no label catalog exists for a language
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
