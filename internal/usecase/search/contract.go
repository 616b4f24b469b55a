package search

import (
	"context"

	"github.com/kailas-cloud/nearby/internal/domain/entity"
	"github.com/kailas-cloud/nearby/internal/domain/geo"
)

// FetchHints describe the search region. Sources without spatial indexing may
// ignore them and return every record; the pipeline re-checks each candidate.
type FetchHints struct {
	Center      geo.Coordinate
	RadiusMiles float64
	Box         geo.Box
}

// CandidateSource fetches all candidate records of one entity type.
// Implementations must honour ctx cancellation.
type CandidateSource interface {
	FetchAll(ctx context.Context, hints FetchHints) ([]entity.Raw, error)
}

// CandidateSourceFunc adapts a function to CandidateSource.
type CandidateSourceFunc func(ctx context.Context, hints FetchHints) ([]entity.Raw, error)

// FetchAll calls f.
func (f CandidateSourceFunc) FetchAll(ctx context.Context, hints FetchHints) ([]entity.Raw, error) {
	return f(ctx, hints)
}
