package domain

// FilterCriteria is the pair of mutually-exclusive catalog filters. At
// most one field is non-empty in any committed state: the user-facing
// mutators clear the other field, last writer wins.
type FilterCriteria struct {
	Category   string `json:"category"`
	SearchText string `json:"search"`
}

// WithCategory commits a category filter and drops any search text.
func (f FilterCriteria) WithCategory(value string) FilterCriteria {
	return FilterCriteria{Category: value}
}

// WithSearchText commits a search filter and drops any category.
func (f FilterCriteria) WithSearchText(value string) FilterCriteria {
	return FilterCriteria{SearchText: value}
}

// IsZero reports whether no filter is active.
func (f FilterCriteria) IsZero() bool {
	return f.Category == "" && f.SearchText == ""
}
