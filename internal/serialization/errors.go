package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: data may be corrupted")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrTruncated          = errors.New("snapshot is truncated")
	ErrTrailingData       = errors.New("unexpected data after snapshot")
	ErrTooManyLayers      = errors.New("too many layers in snapshot")
	ErrLayerTooLarge      = errors.New("layer size exceeds maximum")
	ErrNilSnapshot        = errors.New("nil snapshot")
)

// ValidationError provides detailed information about an inconsistent snapshot.
type ValidationError struct {
	Type    string // Type of error (e.g., "shape_mismatch", "invalid_layers")
	Field   string // Field involved (e.g., "weight.0")
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Field, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}
