package location

import (
	"net/url"
	"strings"

	"storefront/internal/domain"
)

// Recognized location keys. Anything else in a location string is
// ignored rather than rejected.
const (
	keyCategory = "category"
	keySearch   = "search"
)

// Encode maps committed criteria to their canonical location query
// string. Empty fields are omitted; zero criteria encode to "".
func Encode(criteria domain.FilterCriteria) string {
	values := url.Values{}
	if criteria.Category != "" {
		values.Set(keyCategory, criteria.Category)
	}
	if criteria.SearchText != "" {
		values.Set(keySearch, criteria.SearchText)
	}
	return values.Encode()
}

// Parse maps a raw location query string back to criteria. It is
// deliberately permissive: unknown keys are ignored and malformed pairs
// are treated as absent, so an externally crafted location can never
// fail, only degrade to "no constraint".
//
// An external location carrying both keys is valid input even though
// this engine never produces one; category is authoritative and the
// search text is dropped.
func Parse(raw string) domain.FilterCriteria {
	raw = strings.TrimPrefix(raw, "?")

	// url.ParseQuery keeps whatever pairs did parse, which is exactly
	// the permissive behavior we want on malformed input.
	values, _ := url.ParseQuery(raw)

	if category := values.Get(keyCategory); category != "" {
		return domain.FilterCriteria{Category: category}
	}
	if search := values.Get(keySearch); search != "" {
		return domain.FilterCriteria{SearchText: search}
	}
	return domain.FilterCriteria{}
}
