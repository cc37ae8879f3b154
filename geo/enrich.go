package geo

import (
	"fmt"

	"github.com/tbxark/locationagent/patch"
	"github.com/tbxark/locationagent/types"
)

// enrichablePaths are the address pointers a reverse geocode may fill. Street-level
// results are not trusted, so street_address is absent; the formatted address is too,
// since it would carry the street.
var enrichablePaths = map[string]bool{
	types.FieldLocality.JSONPointer():   true,
	types.FieldRegion.JSONPointer():     true,
	types.FieldPostalCode.JSONPointer(): true,
	types.FieldCountry.JSONPointer():    true,
}

// Enrich copies the address fields of geocoded into loc where loc has none yet.
// A nil geocoded result leaves loc untouched.
func Enrich(loc *types.Location, geocoded *types.Location) (*types.Location, error) {
	if loc == nil || geocoded == nil || geocoded.Address == nil {
		return loc, nil
	}
	source := types.Location{Address: geocoded.Address}
	ops, err := patch.FillMissing(types.Location{Address: loc.Address}, source)
	if err != nil {
		return loc, fmt.Errorf("diff geocoded address: %w", err)
	}
	ops = patch.FilterAllowed(ops, enrichablePaths)
	if len(ops) == 0 {
		return loc, nil
	}
	enriched, err := patch.ApplyRFC6902(*loc, ops)
	if err != nil {
		return loc, fmt.Errorf("apply geocoded address: %w", err)
	}
	return &enriched, nil
}
