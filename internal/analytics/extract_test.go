package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingPrice(t *testing.T) {
	tests := []struct {
		name     string
		listing  *Listing
		expected float64
	}{
		{
			name:     "total price wins",
			listing:  &Listing{TotalPrice: fptr(25.50), ExtractedPrice: fptr(20), ExtractedShipping: fptr(4)},
			expected: 25.50,
		},
		{
			name:     "price plus shipping",
			listing:  &Listing{ExtractedPrice: fptr(20), ExtractedShipping: fptr(4.99)},
			expected: 24.99,
		},
		{
			name:     "price without shipping",
			listing:  &Listing{ExtractedPrice: fptr(20)},
			expected: 20,
		},
		{
			name:     "shipping without price",
			listing:  &Listing{ExtractedShipping: fptr(4.99)},
			expected: 4.99,
		},
		{
			name:     "no price fields",
			listing:  &Listing{ItemID: "abc"},
			expected: 0,
		},
		{
			name:     "nil listing",
			listing:  nil,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ListingPrice(tt.listing), 0.0001)
		})
	}
}

func TestListingPriceDoesNotMutate(t *testing.T) {
	l := Listing{ExtractedPrice: fptr(20), ExtractedShipping: fptr(5)}
	before := l
	_ = ListingPrice(&l)
	assert.Equal(t, before, l)
}
