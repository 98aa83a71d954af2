// File path: internal/segment/segment.go
package segment

// NotAvailable is the sentinel rendered for any attribute a segment is
// missing.
const NotAvailable = "N/A"

// Field is one passthrough column that matched no normalization rule.
// Order follows the source table.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Segment is the canonical customer cohort record driving persona
// generation. All attributes except ID are free text and optional; age and
// product counts are display values, never arithmetic operands.
type Segment struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Age             string  `json:"age"`
	NbProducts      string  `json:"nbProducts"`
	RevenueHommes   string  `json:"revenueHommes"`
	RevenueFemmes   string  `json:"revenueFemmes"`
	MobileAccess    string  `json:"mobileAccess"`
	EmailAccess     string  `json:"emailAccess"`
	Characteristics string  `json:"characteristics"`
	Extra           []Field `json:"extra,omitempty"`
}

// Display returns the attribute value or the NotAvailable sentinel.
func Display(v string) string {
	if v == "" {
		return NotAvailable
	}
	return v
}

// Defaults returns the built-in segment set loaded into every new session.
func Defaults() []Segment {
	return []Segment{
		{
			ID:              0,
			Name:            "Les clients fideles et hyper-connectes",
			Age:             "40",
			NbProducts:      "8",
			RevenueHommes:   "100 000 - 200 000 FCFA",
			RevenueFemmes:   "100 000 - 200 000 FCFA",
			MobileAccess:    "99%",
			EmailAccess:     "85%",
			Characteristics: "Maturite professionnelle, clients de base stable",
		},
		{
			ID:              1,
			Name:            "Les racines de confiance",
			Age:             "62",
			NbProducts:      "8",
			RevenueHommes:   "200 000 - 300 000 FCFA",
			RevenueFemmes:   "0 - 100 000 FCFA",
			MobileAccess:    "97%",
			EmailAccess:     "57%",
			Characteristics: "Anciens fonctionnaires, revenus constants",
		},
		{
			ID:              2,
			Name:            "Les ambassadeurs de demain",
			Age:             "36",
			NbProducts:      "3",
			RevenueHommes:   "0 - 100 000 FCFA",
			RevenueFemmes:   "0 - 100 000 FCFA",
			MobileAccess:    "98%",
			EmailAccess:     "60%",
			Characteristics: "En transition professionnelle, hyper-connectes",
		},
		{
			ID:              3,
			Name:            "Les champions fonctionnaires",
			Age:             "44",
			NbProducts:      "14",
			RevenueHommes:   "300 000 - 400 000 FCFA",
			RevenueFemmes:   "0 - 100 000 FCFA",
			MobileAccess:    "99%",
			EmailAccess:     "88%",
			Characteristics: "Plus grands utilisateurs, hyper-consommateurs",
		},
		{
			ID:              4,
			Name:            "Les fideles discrets",
			Age:             "41",
			NbProducts:      "3",
			RevenueHommes:   "0 - 100 000 FCFA",
			RevenueFemmes:   "0 - 100 000 FCFA",
			MobileAccess:    "98%",
			EmailAccess:     NotAvailable,
			Characteristics: "Employes stables, utilisation minimale",
		},
	}
}

// ByID returns the segment with the given id, or false when absent.
func ByID(segments []Segment, id int) (Segment, bool) {
	for _, seg := range segments {
		if seg.ID == id {
			return seg, true
		}
	}
	return Segment{}, false
}
