package ocrclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mosipdecode/backend/internal/domain"
)

// batchSchema describes an OCR batch as accepted by the JSON endpoints and the CLI.
const batchSchema = `{
  "type": "object",
  "required": ["fragments"],
  "properties": {
    "language": {"type": "string"},
    "error": {"type": "string"},
    "fragments": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["text", "confidence"],
        "properties": {
          "text": {"type": "string"},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1},
          "box": {
            "type": "array",
            "items": {
              "type": "array",
              "items": {"type": "number"},
              "minItems": 2,
              "maxItems": 2
            }
          }
        }
      }
    }
  }
}`

// engineResponseSchema describes the remote recognizer's reply.
const engineResponseSchema = `{
  "type": "object",
  "properties": {
    "texts": {"type": "array", "items": {"type": "string"}},
    "scores": {"type": "array", "items": {"type": "number"}},
    "boxes": {
      "type": "array",
      "items": {"type": "array", "items": {"type": "array", "items": {"type": "number"}}}
    },
    "language": {"type": "string"},
    "elapsed_time": {"type": "number"},
    "error": {"type": ["string", "null"]}
  }
}`

var (
	compileOnce    sync.Once
	compiledBatch  *jsonschema.Schema
	compiledEngine *jsonschema.Schema
	compileErr     error
)

func schemas() (*jsonschema.Schema, *jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledBatch, compileErr = compile("batch.json", batchSchema)
		if compileErr != nil {
			return
		}
		compiledEngine, compileErr = compile("engine.json", engineResponseSchema)
	})
	return compiledBatch, compiledEngine, compileErr
}

func compile(name, raw string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader([]byte(raw))); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return schema, nil
}

func validate(schema *jsonschema.Schema, data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidBatch, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidBatch, err)
	}
	return nil
}

// ValidateBatch checks raw JSON against the OCR batch schema
func ValidateBatch(data []byte) error {
	batch, _, err := schemas()
	if err != nil {
		return err
	}
	return validate(batch, data)
}

// DecodeBatch validates and decodes a single OCR batch
func DecodeBatch(data []byte) (*domain.OCRBatch, error) {
	if err := ValidateBatch(data); err != nil {
		return nil, err
	}
	var batch domain.OCRBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBatch, err)
	}
	return &batch, nil
}

// DecodeBatches validates and decodes a JSON array of OCR batches, one per page
func DecodeBatches(data []byte) ([]*domain.OCRBatch, error) {
	var pages []json.RawMessage
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("%w: expected an array of batches: %v", domain.ErrInvalidBatch, err)
	}

	batches := make([]*domain.OCRBatch, 0, len(pages))
	for i, page := range pages {
		batch, err := DecodeBatch(page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

// ValidateEngineResponse checks a recognizer reply before it is mapped
func ValidateEngineResponse(data []byte) error {
	_, engine, err := schemas()
	if err != nil {
		return err
	}
	return validate(engine, data)
}
