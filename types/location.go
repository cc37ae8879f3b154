package types

import (
	"fmt"
	"strings"
)

// AddressField is one flag of an AddressRequirement bit set.
type AddressField uint8

const (
	FieldStreetAddress AddressField = 1 << iota
	FieldLocality
	FieldRegion
	FieldPostalCode
	FieldCountry
)

// AddressRequirement is a set of AddressField flags. The zero value requires nothing.
type AddressRequirement = AddressField

// AllAddressFields lists the fields in prompting order.
var AllAddressFields = []AddressField{
	FieldStreetAddress,
	FieldLocality,
	FieldRegion,
	FieldPostalCode,
	FieldCountry,
}

var fieldNames = map[AddressField]string{
	FieldStreetAddress: "street_address",
	FieldLocality:      "locality",
	FieldRegion:        "region",
	FieldPostalCode:    "postal_code",
	FieldCountry:       "country",
}

func (f AddressField) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	parts := make([]string, 0, len(AllAddressFields))
	for _, field := range f.Fields() {
		parts = append(parts, fieldNames[field])
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// JSONPointer is the RFC6901 pointer of the field inside a serialized Location.
func (f AddressField) JSONPointer() string {
	return "/address/" + fieldNames[f]
}

// Has reports whether every flag of field is set in f.
func (f AddressField) Has(field AddressField) bool {
	return field != 0 && f&field == field
}

// Fields expands the set into single flags, in prompting order.
func (f AddressField) Fields() []AddressField {
	out := make([]AddressField, 0, len(AllAddressFields))
	for _, field := range AllAddressFields {
		if f.Has(field) {
			out = append(out, field)
		}
	}
	return out
}

// ParseAddressField maps a field name to its flag. Names are case-insensitive and
// accept both snake_case and camelCase forms.
func ParseAddressField(name string) (AddressField, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
	for field, fieldName := range fieldNames {
		if strings.ReplaceAll(fieldName, "_", "") == normalized {
			return field, nil
		}
	}
	return 0, fmt.Errorf("unknown address field %q", name)
}

// ParseAddressRequirement folds a list of field names into a requirement set.
func ParseAddressRequirement(names []string) (AddressRequirement, error) {
	var req AddressRequirement
	for _, name := range names {
		field, err := ParseAddressField(name)
		if err != nil {
			return 0, err
		}
		req |= field
	}
	return req, nil
}

type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Address struct {
	FormattedAddress string `json:"formatted_address,omitempty"`
	StreetAddress    string `json:"street_address,omitempty"`
	Locality         string `json:"locality,omitempty"`
	Region           string `json:"region,omitempty"`
	PostalCode       string `json:"postal_code,omitempty"`
	Country          string `json:"country,omitempty"`
}

// Get returns the value of a single field.
func (a *Address) Get(field AddressField) string {
	if a == nil {
		return ""
	}
	switch field {
	case FieldStreetAddress:
		return a.StreetAddress
	case FieldLocality:
		return a.Locality
	case FieldRegion:
		return a.Region
	case FieldPostalCode:
		return a.PostalCode
	case FieldCountry:
		return a.Country
	default:
		return ""
	}
}

// Compose joins the structured parts the way a postal label reads.
func (a *Address) Compose(separator string) string {
	if a == nil {
		return ""
	}
	regionLine := strings.TrimSpace(strings.Join(nonEmpty(a.Region, a.PostalCode), " "))
	return strings.Join(nonEmpty(a.StreetAddress, a.Locality, regionLine, a.Country), separator)
}

type Location struct {
	Point      *Point   `json:"point,omitempty"`
	Address    *Address `json:"address,omitempty"`
	Name       string   `json:"name,omitempty"`
	EntityType string   `json:"entity_type,omitempty"`
}

// MissingFields returns the flags of req whose address value is empty.
func (l *Location) MissingFields(req AddressRequirement) AddressRequirement {
	var missing AddressRequirement
	for _, field := range req.Fields() {
		var addr *Address
		if l != nil {
			addr = l.Address
		}
		if strings.TrimSpace(addr.Get(field)) == "" {
			missing |= field
		}
	}
	return missing
}

// Satisfies reports whether every field flagged in req is non-empty.
func (l *Location) Satisfies(req AddressRequirement) bool {
	return l.MissingFields(req) == 0
}

// HasAddress reports whether any structured or formatted address value is present.
func (l *Location) HasAddress() bool {
	if l == nil || l.Address == nil {
		return false
	}
	return *l.Address != Address{}
}

// FormattedAddress prefers the provider formatted address and falls back to the parts.
func (l *Location) FormattedAddress(separator string) string {
	if l == nil || l.Address == nil {
		return ""
	}
	if l.Address.FormattedAddress != "" {
		return l.Address.FormattedAddress
	}
	return l.Address.Compose(separator)
}

// Label is the text a user sees for this location.
func (l *Location) Label(separator string) string {
	if addr := l.FormattedAddress(separator); addr != "" {
		return addr
	}
	if l != nil && l.Name != "" {
		return l.Name
	}
	if l != nil && l.Point != nil {
		return fmt.Sprintf("%.6f, %.6f", l.Point.Latitude, l.Point.Longitude)
	}
	return ""
}

// SameAs reports value equality of the address or of the point.
func (l *Location) SameAs(other *Location) bool {
	if l == nil || other == nil {
		return false
	}
	if l.HasAddress() && other.HasAddress() && *l.Address == *other.Address {
		return true
	}
	if l.Point != nil && other.Point != nil && *l.Point == *other.Point {
		return true
	}
	return false
}

// Clone returns a deep copy.
func (l *Location) Clone() *Location {
	if l == nil {
		return nil
	}
	out := *l
	if l.Point != nil {
		p := *l.Point
		out.Point = &p
	}
	if l.Address != nil {
		a := *l.Address
		out.Address = &a
	}
	return &out
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
