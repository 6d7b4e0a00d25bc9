package adresse

// Extract returns the address part of s, from the house number to the end
// of the string ("Centre social 3 rue du Laurier 73000 CHAMBERY" gives
// "3 rue du Laurier 73000 CHAMBERY"). Without a house number followed by a
// street type, s is returned unchanged.
func (r *Rules) Extract(s string) string {
	if m := r.extract.FindString(s); m != "" {
		return m
	}
	return s
}

// Extract applies the default rules.
func Extract(s string) string { return Default().Extract(s) }
