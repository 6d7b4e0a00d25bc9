package adresse

import "strings"

// Clean strips organisational and postal noise from a raw query: postal
// boxes, CEDEX, floors, phone numbers, "lieu-dit" prefixes. It also expands
// "s/" and "s/s" and pads 4-digit runs to 5 digits.
//
// The padding assumes a 4-digit run between spaces is a postcode that lost
// its leading zero, so a year ("8 mai 1945 Paris") is padded too.
func (r *Rules) Clean(q string) string {
	for _, rule := range r.noise {
		q = rule.apply(q)
	}
	return strings.TrimSpace(spaces.ReplaceAllString(q, " "))
}

// Clean applies the default rules.
func Clean(q string) string { return Default().Clean(q) }
