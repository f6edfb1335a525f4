package suitability

import "strings"

// Bucket partitions segments into the two summary sections drawn on the
// detail page.
type Bucket int

const (
	BucketApparel Bucket = iota
	BucketHome
)

// Section headings as printed on the sheet.
const (
	ApparelHeading = "Apparel"
	HomeHeading    = "Home & Accessories"
)

// homeKeywords classify a segment label into the home-and-accessories
// bucket. Anything else counts as apparel.
var homeKeywords = []string{"home", "accessor", "uniform", "workwear", "work"}

// Classify assigns a segment label to a bucket by keyword match.
func Classify(segment string) Bucket {
	s := strings.ToLower(segment)
	for _, kw := range homeKeywords {
		if strings.Contains(s, kw) {
			return BucketHome
		}
	}
	return BucketApparel
}

// Partition splits aggregated groups into the apparel and home buckets,
// preserving their aggregate order within each bucket.
func Partition(groups []Group) (apparel, home []Group) {
	for _, g := range groups {
		if Classify(g.Segment) == BucketHome {
			home = append(home, g)
		} else {
			apparel = append(apparel, g)
		}
	}
	return apparel, home
}
