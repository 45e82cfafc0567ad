package analytics

// ListingPrice derives a usable price from a raw listing record. The scraped
// total price wins when present; otherwise item price and shipping are summed,
// each treated as zero when missing. A nil listing yields 0 so callers can
// feed unchecked records straight through.
func ListingPrice(l *Listing) float64 {
	if l == nil {
		return 0
	}
	if l.TotalPrice != nil {
		return *l.TotalPrice
	}
	var price float64
	if l.ExtractedPrice != nil {
		price = *l.ExtractedPrice
	}
	if l.ExtractedShipping != nil {
		price += *l.ExtractedShipping
	}
	return price
}
