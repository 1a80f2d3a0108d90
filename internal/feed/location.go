package feed

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	stateRe   = regexp.MustCompile(`(?i)^([A-Z]{2})(\s+\d{5}(-\d{4})?)?$`)
	countryRe = regexp.MustCompile(`(?i)^[A-Z]{2}$`)
	postalRe  = regexp.MustCompile(`(?i)^[A-Z0-9\s-]+$`)
	usRe      = regexp.MustCompile(`(?i)^(US|USA|United States)$`)
)

// CityState shortens a street address to "City, ST" (or "City, CC" for
// international addresses), e.g. "123 Main St, Cary, NC 27513, USA" ->
// "Cary, NC". Parts containing digits (street lines, postal codes) are never
// taken as the city. Addresses it cannot make sense of come back as their
// last two comma-separated parts.
func CityState(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return ""
	}

	parts := splitTrim(location)
	if len(parts) == 1 {
		return location
	}

	if s, ok := cityBeforeState(parts); ok {
		return s
	}
	if s, ok := cityBeforePostal(parts); ok {
		return s
	}

	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		if !usRe.MatchString(p) {
			clean = append(clean, p)
		}
	}
	if len(clean) > 2 {
		clean = clean[len(clean)-2:]
	}
	return strings.Join(clean, ", ")
}

// cityBeforeState finds "City, ST" or "City, ST 12345"; for non-US
// addresses the two letters are a country code.
func cityBeforeState(parts []string) (string, bool) {
	for i := 0; i < len(parts)-1; i++ {
		if hasDigit(parts[i]) || parts[i] == "" {
			continue
		}
		if m := stateRe.FindStringSubmatch(parts[i+1]); m != nil {
			return parts[i] + ", " + strings.ToUpper(m[1]), true
		}
	}
	return "", false
}

// cityBeforePostal handles "City, POSTAL, CC".
func cityBeforePostal(parts []string) (string, bool) {
	for i := 0; i+2 < len(parts); i++ {
		if hasDigit(parts[i]) || parts[i] == "" {
			continue
		}
		if hasDigit(parts[i+1]) && postalRe.MatchString(parts[i+1]) && countryRe.MatchString(parts[i+2]) {
			return parts[i] + ", " + strings.ToUpper(parts[i+2]), true
		}
	}
	return "", false
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
