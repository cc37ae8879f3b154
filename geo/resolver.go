// Package geo holds the geocoding collaborator contract and the enrichment rules the
// flow applies to provider results.
package geo

import (
	"context"

	"github.com/tbxark/locationagent/types"
)

// Resolver is the geocoding provider. QueryText returns candidates ordered by provider
// confidence, possibly none. ReverseGeocode returns nil when nothing is known about
// the point. Errors are provider failures.
type Resolver interface {
	QueryText(ctx context.Context, apiKey, text string) ([]types.Location, error)
	ReverseGeocode(ctx context.Context, apiKey string, point types.Point) (*types.Location, error)
}
