package types

// PostalAddress is the caller-facing address shape.
type PostalAddress struct {
	FormattedAddress string `json:"formatted_address,omitempty"`
	StreetAddress    string `json:"street_address,omitempty"`
	Locality         string `json:"locality,omitempty"`
	Region           string `json:"region,omitempty"`
	PostalCode       string `json:"postal_code,omitempty"`
	Country          string `json:"country,omitempty"`
}

type GeoCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is the record handed back to the calling application once a location is confirmed.
type Place struct {
	Type    string          `json:"type,omitempty"`
	Name    string          `json:"name,omitempty"`
	Address *PostalAddress  `json:"address,omitempty"`
	Geo     *GeoCoordinates `json:"geo,omitempty"`
}

func NewPlace(loc *Location, separator string) *Place {
	if loc == nil {
		return nil
	}
	place := &Place{
		Type: loc.EntityType,
		Name: loc.Name,
	}
	if loc.Address != nil {
		place.Address = &PostalAddress{
			FormattedAddress: loc.FormattedAddress(separator),
			StreetAddress:    loc.Address.StreetAddress,
			Locality:         loc.Address.Locality,
			Region:           loc.Address.Region,
			PostalCode:       loc.Address.PostalCode,
			Country:          loc.Address.Country,
		}
	}
	if loc.Point != nil {
		place.Geo = &GeoCoordinates{
			Latitude:  loc.Point.Latitude,
			Longitude: loc.Point.Longitude,
		}
	}
	return place
}
