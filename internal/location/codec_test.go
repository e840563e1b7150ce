package location

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/domain"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, "category=clothes", Encode(domain.FilterCriteria{Category: "clothes"}))
	assert.Equal(t, "search=red", Encode(domain.FilterCriteria{SearchText: "red"}))
	assert.Equal(t, "", Encode(domain.FilterCriteria{}))
}

func TestParse(t *testing.T) {
	t.Run("round trip for any committed criteria", func(t *testing.T) {
		for _, criteria := range []domain.FilterCriteria{
			{},
			{Category: "clothes"},
			{SearchText: "red"},
			{Category: "home & garden"},
			{SearchText: "100% cotton"},
		} {
			assert.Equal(t, criteria, Parse(Encode(criteria)), "criteria %+v", criteria)
		}
	})

	t.Run("leading question mark is tolerated", func(t *testing.T) {
		assert.Equal(t, domain.FilterCriteria{Category: "clothes"}, Parse("?category=clothes"))
	})

	t.Run("category is authoritative when both keys are set", func(t *testing.T) {
		parsed := Parse("category=clothes&search=red")
		assert.Equal(t, domain.FilterCriteria{Category: "clothes"}, parsed)
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		assert.Equal(t, domain.FilterCriteria{SearchText: "red"}, Parse("utm_source=mail&search=red"))
	})

	t.Run("malformed values are treated as absent", func(t *testing.T) {
		assert.Equal(t, domain.FilterCriteria{}, Parse("category=%zz"))
		assert.Equal(t, domain.FilterCriteria{}, Parse(";;;"))
	})
}
