// Package extract pulls typed vehicle attributes out of free text scraped from listing pages.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	priceRe   = regexp.MustCompile(`\$?\s*(\d{1,3}(?:,\d{3})+|\d+)`)
	mileageRe = regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})+|\d+)\s*(k)?\s*(mi|miles|km)\b`)
	yearRe    = regexp.MustCompile(`\b(\d{4})\b`)
	vinRe     = regexp.MustCompile(`\b([A-HJ-NPR-Z0-9]{17})\b`)
	spaceRe   = regexp.MustCompile(`\s+`)
	numberRe  = regexp.MustCompile(`^(\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?$`)
)

// MinYear is the oldest accepted model year.
const MinYear = 1900

// Price returns first currency-like number found in text with separators removed.
func Price(text string) (int, bool) {
	match := priceRe.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}

	return atoi(match[1])
}

// PriceMatch is a currency-like number found in text.
type PriceMatch struct {
	Value int
	// Grouped reports whether number was written with thousands separators.
	Grouped bool
}

// Prices returns all currency-like numbers found in text, in order.
func Prices(text string) []PriceMatch {
	var matches []PriceMatch
	for _, match := range priceRe.FindAllStringSubmatch(text, -1) {
		n, ok := atoi(match[1])
		if !ok {
			continue
		}
		matches = append(matches, PriceMatch{Value: n, Grouped: strings.Contains(match[1], ",")})
	}

	return matches
}

// Number returns value of text consisting of a single number, as structured data fields do.
func Number(text string) (int, bool) {
	match := numberRe.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return 0, false
	}

	return atoi(match[1])
}

// Mileage returns first number followed by a distance unit.
// "42k miles" is read as 42000.
func Mileage(text string) (int, bool) {
	match := mileageRe.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}

	n, ok := atoi(match[1])
	if !ok {
		return 0, false
	}
	if match[2] != "" {
		n *= 1000
	}

	return n, true
}

// Year returns first 4-digit token within MinYear..now.Year()+1.
func Year(text string, now time.Time) (int, bool) {
	for _, match := range yearRe.FindAllStringSubmatch(text, -1) {
		year, ok := atoi(match[1])
		if ok && IsModelYear(year, now) {
			return year, true
		}
	}

	return 0, false
}

// IsModelYear reports whether n is plausible model year at now.
func IsModelYear(n int, now time.Time) bool {
	return n >= MinYear && n <= now.Year()+1
}

// VIN returns first 17-character vehicle identification number found in text.
func VIN(text string) (string, bool) {
	match := vinRe.FindStringSubmatch(strings.ToUpper(text))
	if match == nil {
		return "", false
	}

	return match[1], true
}

// multiWordMakes maps lowercased first word to makes spelled with two words.
var multiWordMakes = map[string][]string{
	"land":     {"Land Rover"},
	"alfa":     {"Alfa Romeo"},
	"aston":    {"Aston Martin"},
	"mercedes": {"Mercedes Benz"},
	"rolls":    {"Rolls Royce"},
}

// MakeModel returns make and model following the model year in title.
// Without a year token the first two words are used.
func MakeModel(title string) (string, string) {
	tokens := strings.Fields(Clean(title))

	start := 0
	for ix, token := range tokens {
		if len(token) == 4 && yearRe.MatchString(token) {
			start = ix + 1
			break
		}
	}
	tokens = tokens[start:]
	if len(tokens) == 0 {
		return "", ""
	}

	mk, rest := tokens[0], tokens[1:]
	if parts := strings.SplitN(mk, "-", 2); len(parts) == 2 && strings.EqualFold(parts[0], "mercedes") {
		mk = "Mercedes Benz"
	} else if candidates, ok := multiWordMakes[strings.ToLower(mk)]; ok && len(rest) > 0 {
		for _, candidate := range candidates {
			if strings.EqualFold(candidate, mk+" "+rest[0]) {
				mk, rest = candidate, rest[1:]
				break
			}
		}
	}

	if len(rest) == 0 {
		return mk, ""
	}

	return mk, rest[0]
}

// Clean collapses whitespace and trims text.
func Clean(text string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

func atoi(digits string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(digits, ",", ""))
	if err != nil {
		return 0, false
	}

	return n, true
}
