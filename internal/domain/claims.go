package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseClaims decodes a JSON object of claims. Numbers and booleans are
// stringified and nulls dropped; nested values are rejected.
func ParseClaims(raw []byte) (VerificationClaim, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("%w: verification_data is required", ErrInvalidRequest)
	}

	var values map[string]interface{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("%w: verification_data must be a JSON object: %v", ErrInvalidRequest, err)
	}

	claims := make(VerificationClaim, len(values))
	for k, v := range values {
		switch val := v.(type) {
		case nil:
		case string:
			claims[k] = val
		case float64:
			claims[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			claims[k] = strconv.FormatBool(val)
		default:
			return nil, fmt.Errorf("%w: claim %q must be a scalar", ErrInvalidRequest, k)
		}
	}
	return claims, nil
}
