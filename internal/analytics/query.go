package analytics

import "strings"

// Exclusion clauses appended by BuildSearchQuery. Clause order is fixed so the
// same options always produce the same query string.
const (
	lotExclusions       = "-lot -bulk -bundle"
	gradedExclusions    = "-psa -bgs -sgc -graded"
	variationExclusions = "-refractor -prizm -gold"
)

// BuildSearchQuery appends marketplace exclusion clauses to a search query.
// Options combine additively in the order excludeLots, ungradedOnly, baseOnly;
// with no options set the query is returned unchanged.
func BuildSearchQuery(query string, opts QueryOptions) string {
	parts := []string{query}
	if opts.ExcludeLots {
		parts = append(parts, lotExclusions)
	}
	if opts.UngradedOnly {
		parts = append(parts, gradedExclusions)
	}
	if opts.BaseOnly {
		parts = append(parts, variationExclusions)
	}
	return strings.Join(parts, " ")
}
