package services

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest is the one fatal aggregation error: required context is
// missing and fan-out was never attempted.
var ErrInvalidRequest = errors.New("invalid request: location is required")

// WeightValidationError rejects a weight replacement whose components do not
// sum to 1.0 within tolerance. The previous snapshot stays active.
type WeightValidationError struct {
	Sum float64
}

func (e *WeightValidationError) Error() string {
	return fmt.Sprintf("algorithm weights must sum to 1.0 (got %.4f)", e.Sum)
}
