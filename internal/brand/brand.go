package brand

import (
	"sort"
	"strings"
)

// Brand describes a supported tool manufacturer
type Brand struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Color                string   `json:"color"`
	SerialPrefixes       []string `json:"serial_prefixes"`
	DefaultWarrantyYears int      `json:"default_warranty_years"`
	PolicyText           string   `json:"policy_text"`
}

// registry holds the static brand catalogue. Order matters: it is the
// tie-breaker when two prefixes of equal length match the same serial.
var registry = []Brand{
	{
		ID:                   "milwaukee",
		Name:                 "Milwaukee",
		Color:                "#DB011C",
		SerialPrefixes:       []string{"M18", "M12", "2"},
		DefaultWarrantyYears: 5,
		PolicyText:           "5-year limited warranty on power tools; 2 years on M18/M12 REDLITHIUM batteries.",
	},
	{
		ID:                   "makita",
		Name:                 "Makita",
		Color:                "#008290",
		SerialPrefixes:       []string{"DH", "DF", "BL", "HP", "GA"},
		DefaultWarrantyYears: 3,
		PolicyText:           "3-year warranty when registered within 30 days of purchase, otherwise 1 year.",
	},
	{
		ID:                   "dewalt",
		Name:                 "DeWalt",
		Color:                "#FEBD17",
		SerialPrefixes:       []string{"DCD", "DCF", "DCS", "DWE"},
		DefaultWarrantyYears: 3,
		PolicyText:           "3-year limited warranty with 1 year of free service on worn parts.",
	},
	{
		ID:                   "bosch",
		Name:                 "Bosch",
		Color:                "#005691",
		SerialPrefixes:       []string{"GBH", "GSB", "GWS", "PSB"},
		DefaultWarrantyYears: 3,
		PolicyText:           "3-year professional warranty through Bosch Authorised Service Agents.",
	},
	{
		ID:                   "stihl",
		Name:                 "Stihl",
		Color:                "#F37A1F",
		SerialPrefixes:       []string{"MS", "HS", "BG", "BR"},
		DefaultWarrantyYears: 2,
		PolicyText:           "2-year domestic warranty claimed through authorised Stihl dealers.",
	},
	{
		ID:                   "husqvarna",
		Name:                 "Husqvarna",
		Color:                "#273A60",
		SerialPrefixes:       []string{"HUS", "115", "120", "125", "130"},
		DefaultWarrantyYears: 2,
		PolicyText:           "2-year consumer warranty, extendable to 5 years with online registration within 30 days.",
	},
}

// All returns the full brand catalogue
func All() []Brand {
	out := make([]Brand, len(registry))
	copy(out, registry)
	return out
}

// Get looks up a brand by ID
func Get(id string) (Brand, bool) {
	for _, b := range registry {
		if b.ID == id {
			return b, true
		}
	}
	return Brand{}, false
}

// Match is the result of matching a serial number against the registry
type Match struct {
	BrandID string `json:"brand_id"`
	Prefix  string `json:"prefix"`
}

type prefixEntry struct {
	brandID string
	prefix  string
}

// MatchSerial detects the brand for a serial number by prefix. Longer
// prefixes are checked first so a specific prefix like "M18" wins over a
// shorter one like "M1" that would also match. Returns false when the
// serial is empty or no prefix matches.
func MatchSerial(serial string) (Match, bool) {
	upper := strings.ToUpper(strings.TrimSpace(serial))
	if upper == "" {
		return Match{}, false
	}

	entries := make([]prefixEntry, 0, len(registry)*4)
	for _, b := range registry {
		for _, p := range b.SerialPrefixes {
			entries = append(entries, prefixEntry{brandID: b.ID, prefix: strings.ToUpper(p)})
		}
	}

	return matchPrefixes(entries, upper)
}

// matchPrefixes scans candidate prefixes longest-first. The sort is stable
// so equal-length prefixes keep their registry order.
func matchPrefixes(entries []prefixEntry, serial string) (Match, bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].prefix) > len(entries[j].prefix)
	})

	for _, e := range entries {
		if strings.HasPrefix(serial, e.prefix) {
			return Match{BrandID: e.brandID, Prefix: e.prefix}, true
		}
	}
	return Match{}, false
}
