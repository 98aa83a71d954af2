// File path: internal/segment/normalizer.go
package segment

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Canonical field names written by the normalization rules.
const (
	fieldID              = "id"
	fieldName            = "name"
	fieldAge             = "age"
	fieldNbProducts      = "nbProducts"
	fieldRevenueHommes   = "revenueHommes"
	fieldRevenueFemmes   = "revenueFemmes"
	fieldMobileAccess    = "mobileAccess"
	fieldEmailAccess     = "emailAccess"
	fieldCharacteristics = "characteristics"
)

type rule struct {
	field   string
	needles []string
}

// rules maps raw column names to canonical fields. Evaluated top to bottom
// against the lower-cased column name; the first rule whose needle is a
// substring wins. Order matters: "female" contains "male", so the income
// rules must stay in this sequence to reproduce the historical mapping.
var rules = []rule{
	{fieldID, []string{"id"}},
	{fieldName, []string{"name", "nom"}},
	{fieldAge, []string{"age"}},
	{fieldNbProducts, []string{"product", "produit"}},
	{fieldRevenueHommes, []string{"homme", "male"}},
	{fieldRevenueFemmes, []string{"femme", "female"}},
	{fieldMobileAccess, []string{"mobile"}},
	{fieldEmailAccess, []string{"email", "mail"}},
	{fieldCharacteristics, []string{"caract", "character"}},
}

func matchRule(key string) (string, bool) {
	for _, r := range rules {
		for _, needle := range r.needles {
			if strings.Contains(key, needle) {
				return r.field, true
			}
		}
	}
	return "", false
}

// NormalizeRecord maps one raw row onto the canonical schema. Columns are
// visited in table order; when two raw columns map to the same canonical
// field the later one overwrites the earlier (kept from the source system,
// do not "fix"). Unmatched columns pass through lower-cased. fallbackID is
// used when no column yields a parseable id.
func NormalizeRecord(keys, values []string, fallbackID int) Segment {
	seg := Segment{ID: fallbackID}
	for i, rawKey := range keys {
		if i >= len(values) {
			break
		}
		key := strings.ToLower(strings.TrimSpace(rawKey))
		value := strings.TrimSpace(values[i])
		field, ok := matchRule(key)
		if !ok {
			seg.Extra = append(seg.Extra, Field{Key: key, Value: value})
			continue
		}
		switch field {
		case fieldID:
			if id, err := strconv.Atoi(value); err == nil {
				seg.ID = id
			}
		case fieldName:
			seg.Name = value
		case fieldAge:
			seg.Age = value
		case fieldNbProducts:
			seg.NbProducts = value
		case fieldRevenueHommes:
			seg.RevenueHommes = value
		case fieldRevenueFemmes:
			seg.RevenueFemmes = value
		case fieldMobileAccess:
			seg.MobileAccess = value
		case fieldEmailAccess:
			seg.EmailAccess = value
		case fieldCharacteristics:
			seg.Characteristics = value
		}
	}
	return seg
}

// Normalize maps raw rows onto canonical segments, preserving row order.
func Normalize(header []string, rows [][]string) []Segment {
	segments := make([]Segment, 0, len(rows))
	for i, row := range rows {
		segments = append(segments, NormalizeRecord(header, row, i))
	}
	return segments
}

// ParseCSV reads a delimited segment table (header row plus data rows) and
// returns the normalized segments along with the detected column names.
func ParseCSV(r io.Reader) ([]Segment, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("csv needs a header row and at least one segment row")
	}
	header := records[0]
	return Normalize(header, records[1:]), header, nil
}
