package nearby

import (
	"errors"

	"github.com/kailas-cloud/nearby/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery      = domain.ErrInvalidQuery
	ErrSourceUnavailable = domain.ErrSourceUnavailable
	ErrUnknownEntityType = domain.ErrUnknownEntityType

	// ErrNoStore is returned by write operations on a client without a store.
	ErrNoStore = errors.New("nearby: no store configured (use WithValkey or WithRedis)")
)

// ValidationError names the query parameter that failed validation.
// Retrieve it with errors.As.
type ValidationError = domain.ValidationError
