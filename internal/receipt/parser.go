// Package receipt turns raw OCR text from a receipt photo into structured
// purchase fields. Every extraction is independent and confidence-scored;
// a field that cannot be found is empty with zero confidence, never an error.
package receipt

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Confidence holds the per-field extraction confidence, 0-100
type Confidence struct {
	Store int `json:"store"`
	Date  int `json:"date"`
	Item  int `json:"item"`
	Price int `json:"price"`
}

// Parsed is the structured result of parsing one receipt's raw text
type Parsed struct {
	StoreName       string     `json:"store_name"`
	PurchaseDate    string     `json:"purchase_date"` // DD/MM/YYYY
	ItemDescription string     `json:"item_description"`
	Price           string     `json:"price"` // "$1,234.56" as printed
	RawText         string     `json:"raw_text"`
	Confidence      Confidence `json:"confidence"`
}

var knownRetailers = []string{
	"bunnings",
	"total tools",
	"sydney tools",
	"mitre 10",
	"trade tools",
	"tool kit depot",
	"masters",
	"supercheap auto",
	"repco",
}

var (
	dateNumericFull  = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})`)
	dateNumericShort = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2})`)
	dateMonthAbbrev  = regexp.MustCompile(`(?i)(\d{1,2})\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\w*\s+(\d{4})`)
	dateMonthFull    = regexp.MustCompile(`(?i)(\d{1,2})\s+(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{4})`)
	pricePattern     = regexp.MustCompile(`\$[\d,]+\.\d{2}`)
	financialLine    = regexp.MustCompile(`(?i)^(subtotal|total|gst|tax|change|cash|eftpos|visa|mastercard|amex)`)
	digitsOnly       = regexp.MustCompile(`^\d+$`)
)

var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// Parse extracts store, date, price and item description from raw OCR text.
// The input is untrusted and possibly empty; Parse never fails.
func Parse(rawText string) Parsed {
	var lines []string
	for _, l := range strings.Split(rawText, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}

	store, storeConf := extractStore(lines)
	date, dateConf := extractDate(rawText)
	price, priceConf := extractPrice(rawText)
	item, itemConf := extractItem(lines, store, date)

	return Parsed{
		StoreName:       store,
		PurchaseDate:    date,
		ItemDescription: item,
		Price:           price,
		RawText:         rawText,
		Confidence: Confidence{
			Store: storeConf,
			Date:  dateConf,
			Item:  itemConf,
			Price: priceConf,
		},
	}
}

// extractStore scans the first 5 lines for a known retailer name. A hit is
// strong evidence (95); otherwise the first line of reasonable length is a
// weak guess (40).
func extractStore(lines []string) (string, int) {
	top := lines
	if len(top) > 5 {
		top = top[:5]
	}
	for _, line := range top {
		lower := strings.ToLower(strings.TrimSpace(line))
		for _, retailer := range knownRetailers {
			if strings.Contains(lower, retailer) {
				return titleCase(strings.TrimSpace(line)), 95
			}
		}
	}

	for _, line := range lines {
		if len(strings.TrimSpace(line)) > 3 {
			return strings.TrimSpace(line), 40
		}
	}

	return "", 0
}

// extractDate tries four patterns in decreasing order of trust and
// normalizes the first hit to DD/MM/YYYY.
func extractDate(text string) (string, int) {
	if m := dateNumericFull.FindStringSubmatch(text); m != nil {
		return pad2(m[1]) + "/" + pad2(m[2]) + "/" + m[3], 90
	}

	if m := dateNumericShort.FindStringSubmatch(text); m != nil {
		yy, _ := strconv.Atoi(m[3])
		century := "20"
		if yy > 50 {
			century = "19"
		}
		return pad2(m[1]) + "/" + pad2(m[2]) + "/" + century + m[3], 75
	}

	for _, pattern := range []*regexp.Regexp{dateMonthAbbrev, dateMonthFull} {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		month := strings.ToLower(m[2])
		if len(month) > 3 {
			month = month[:3]
		}
		if mm, ok := monthNumbers[month]; ok {
			return pad2(m[1]) + "/" + mm + "/" + m[3], 85
		}
	}

	return "", 0
}

// extractPrice takes the last price on the receipt as the candidate total.
// When it is also the largest amount the receipt likely ends with a grand
// total (85); otherwise trust is partial (65).
func extractPrice(text string) (string, int) {
	matches := pricePattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return "", 0
	}

	last := matches[len(matches)-1]
	lastValue := priceValue(last)

	max := lastValue
	for _, m := range matches {
		if v := priceValue(m); v > max {
			max = v
		}
	}

	if lastValue == max {
		return last, 85
	}
	return last, 65
}

// extractItem looks in the top half of the receipt (items come before
// totals), filters out prices, the store line, the date, financial keyword
// lines and bare numbers, then picks the longest surviving line.
func extractItem(lines []string, storeName, dateStr string) (string, int) {
	topHalf := lines[:(len(lines)+1)/2]

	storeKey := strings.ToLower(storeName)
	if len(storeKey) > 10 {
		storeKey = storeKey[:10]
	}

	var candidates []string
	for _, raw := range topHalf {
		l := strings.TrimSpace(raw)
		switch {
		case len(l) < 5:
		case pricePattern.MatchString(l):
		case storeKey != "" && strings.Contains(strings.ToLower(l), storeKey):
		case dateStr != "" && strings.Contains(l, dateStr):
		case financialLine.MatchString(l):
		case digitsOnly.MatchString(l):
		default:
			candidates = append(candidates, l)
		}
	}

	if len(candidates) == 0 {
		return "", 0
	}

	longest := candidates[0]
	for _, c := range candidates[1:] {
		if len(c) > len(longest) {
			longest = c
		}
	}
	return longest, 55
}

func priceValue(s string) float64 {
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// titleCase uppercases the first character of every word
func titleCase(s string) string {
	rs := []rune(s)
	prevWord := false
	for i, r := range rs {
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		if isWord && !prevWord {
			rs[i] = unicode.ToUpper(r)
		}
		prevWord = isWord
	}
	return string(rs)
}
