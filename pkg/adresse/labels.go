package adresse

// TypeMunicipality is the result type of a city.
const TypeMunicipality = "municipality"

// Result is the part of a search result the label generator reads and fills.
type Result struct {
	Names       []string `json:"names"`
	City        string   `json:"city,omitempty"`
	Postcode    string   `json:"postcode,omitempty"`
	Housenumber string   `json:"housenumber,omitempty"`
	Type        string   `json:"type,omitempty"`
	Labels      []string `json:"labels,omitempty"`
}

// MakeLabels fills res.Labels with the display variants of every name, most
// specific first: "1 bis rue des Lilas 75010 Paris" down to "rue des Lilas".
// A result that already has labels is left untouched.
func MakeLabels(res *Result) {
	if len(res.Labels) > 0 {
		return
	}
	for _, name := range res.Names {
		res.Labels = append(res.Labels, nameLabels(res, name)...)
	}
}

func nameLabels(res *Result, name string) []string {
	var labels []string
	add := func(label string) {
		labels = append([]string{label}, labels...)
		if res.Housenumber != "" {
			labels = append([]string{res.Housenumber + " " + label}, labels...)
		}
	}

	if res.Postcode != "" && res.Type == TypeMunicipality {
		add(name + " " + res.Postcode)
		add(res.Postcode + " " + name)
	}
	add(name)
	if res.City != "" && res.City != name {
		add(name + " " + res.City)
		if res.Postcode != "" {
			add(name + " " + res.Postcode)
			add(name + " " + res.Postcode + " " + res.City)
		}
	}
	return labels
}
