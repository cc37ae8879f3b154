package geo

import (
	"context"
	"strings"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/tbxark/locationagent/types"
)

const defaultReverseRadiusMeters = 2000

// StaticResolver answers from a fixed list of locations. A query returns, in list order,
// every location whose label or name contains all of its words; reverse lookups return
// the nearest location within a radius.
type StaticResolver struct {
	Locations []types.Location `json:"locations" yaml:"locations"`
	// ReverseRadiusMeters caps the distance of a reverse match. Zero uses 2km.
	ReverseRadiusMeters float64 `json:"reverse_radius_meters" yaml:"reverse_radius_meters"`
}

func NewStaticResolver(locations ...types.Location) *StaticResolver {
	return &StaticResolver{Locations: locations}
}

func (r *StaticResolver) QueryText(ctx context.Context, apiKey, text string) ([]types.Location, error) {
	terms := strings.Fields(strings.ToLower(text))
	if len(terms) == 0 {
		return nil, nil
	}
	var out []types.Location
	for _, loc := range r.Locations {
		haystack := strings.ToLower(loc.Label(", ") + " " + loc.Name)
		if containsAll(haystack, terms) {
			out = append(out, *loc.Clone())
		}
	}
	return out, nil
}

func containsAll(haystack string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

func (r *StaticResolver) ReverseGeocode(ctx context.Context, apiKey string, point types.Point) (*types.Location, error) {
	radius := r.ReverseRadiusMeters
	if radius <= 0 {
		radius = defaultReverseRadiusMeters
	}
	target := toOrb(point)
	var best *types.Location
	bestDistance := radius
	for i := range r.Locations {
		loc := &r.Locations[i]
		if loc.Point == nil {
			continue
		}
		d := orbgeo.Distance(target, toOrb(*loc.Point))
		if d <= bestDistance {
			best = loc
			bestDistance = d
		}
	}
	if best == nil {
		return nil, nil
	}
	return best.Clone(), nil
}

// orb points are (lon, lat)
func toOrb(p types.Point) orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

var _ Resolver = (*StaticResolver)(nil)
