// internal/engine/normalize/normalize.go
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Format parsers for the messy value shapes that show up in candidate
// spreadsheets. Each one is pure: raw string in, canonical value plus an ok
// flag out. Malformed input is the common case, not an error, so nothing
// here returns an error or panics.

var (
	nonDigitRe   = regexp.MustCompile(`[^0-9]`)
	lpaRe        = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*lpa$`)
	thousandsRe  = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*k$`)
	lakhRe       = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*(?:l|lakh|lakhs|lac|lacs)$`)
	plainNumRe   = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)?$`)
	daysRe       = regexp.MustCompile(`^([0-9]+)\s*(?:d|day|days)$`)
	weeksRe      = regexp.MustCompile(`^([0-9]+)\s*(?:w|wk|wks|week|weeks)$`)
	monthsRe     = regexp.MustCompile(`^([0-9]+)\s*(?:m|mon|month|months)$`)
	bareIntRe    = regexp.MustCompile(`^[0-9]+$`)
	expYearsRe   = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*(?:\+)?\s*(y|yr|yrs|year|years)$`)
	expMonthsRe  = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*(?:\+)?\s*(month|months|mos)$`)
)

// Compensation parses a salary cell into annual lakhs. Accepted shapes:
// "6LPA", "6.5 lpa", "600K", "6,00,000", "600000", "6L", "6 lakhs", and a
// bare decimal when it sits in a plausible direct-lakhs (1.5-100) or raw
// rupee (100-10,000,000) range. Everything else is rejected.
func Compensation(raw string) (float64, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	v = strings.TrimSuffix(v, "+")
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}

	if m := lpaRe.FindStringSubmatch(v); m != nil {
		n, _ := strconv.ParseFloat(m[1], 64)
		return n, true
	}

	if m := thousandsRe.FindStringSubmatch(v); m != nil {
		n, _ := strconv.ParseFloat(m[1], 64)
		return n / 100, true
	}

	if strings.Contains(v, ",") {
		stripped := strings.ReplaceAll(v, ",", "")
		if !plainNumRe.MatchString(stripped) {
			return 0, false
		}
		n, _ := strconv.ParseFloat(stripped, 64)
		if n >= 100000 && n <= 10000000 {
			return n / 100000, true
		}
		return 0, false
	}

	if m := lakhRe.FindStringSubmatch(v); m != nil {
		n, _ := strconv.ParseFloat(m[1], 64)
		return n, true
	}

	if plainNumRe.MatchString(v) {
		n, _ := strconv.ParseFloat(v, 64)
		switch {
		case n >= 1.5 && n <= 100:
			return n, true
		case n > 100 && n <= 10000000:
			return n / 100000, true
		}
	}

	return 0, false
}

// Phone parses a cell into a bare 10-digit Indian mobile number. Separators
// and formatting are stripped; a 12-digit value with the 91 country prefix
// loses the prefix; when more than 10 digits remain, the last 10 are tried.
// The survivor must be 10 digits starting 6-9.
func Phone(raw string) (string, bool) {
	digits := nonDigitRe.ReplaceAllString(raw, "")

	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}

	if isMobile(digits) {
		return digits, true
	}

	if len(digits) > 10 {
		tail := digits[len(digits)-10:]
		if isMobile(tail) {
			return tail, true
		}
	}

	return "", false
}

func isMobile(digits string) bool {
	return len(digits) == 10 && digits[0] >= '6' && digits[0] <= '9'
}

// NoticePeriodDays parses a notice-period cell into days. "immediate" and
// its spellings mean zero. "on notice"/"under notice" is deliberately NOT
// zero: the remaining period is unknown, so the value is unparseable.
func NoticePeriodDays(raw string) (int, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return 0, false
	}

	if strings.Contains(v, "on notice") || strings.Contains(v, "under notice") || strings.Contains(v, "serving notice") {
		return 0, false
	}

	switch v {
	case "immediate", "immediately", "immediate joiner", "0", "0 days":
		return 0, true
	}

	if m := daysRe.FindStringSubmatch(v); m != nil {
		return boundedDays(m[1], 1)
	}
	if m := weeksRe.FindStringSubmatch(v); m != nil {
		return boundedDays(m[1], 7)
	}
	if m := monthsRe.FindStringSubmatch(v); m != nil {
		return boundedDays(m[1], 30)
	}
	if bareIntRe.MatchString(v) {
		return boundedDays(v, 1)
	}

	return 0, false
}

func boundedDays(num string, multiplier int) (int, bool) {
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, false
	}
	days := n * multiplier
	if days < 0 || days > 365 {
		return 0, false
	}
	return days, true
}

// ExperienceYears parses an experience cell into years. Entry-level markers
// mean zero; numeric forms need a yrs/years/y/months unit and must land in
// 0-70 years. Sub-0.1 values other than exact zero are treated as noise.
func ExperienceYears(raw string) (float64, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return 0, false
	}

	switch v {
	case "fresher", "entry", "entry level", "student", "graduate", "fresh graduate", "0 exp", "no experience":
		return 0, true
	}

	var years float64
	if m := expYearsRe.FindStringSubmatch(v); m != nil {
		years, _ = strconv.ParseFloat(m[1], 64)
	} else if m := expMonthsRe.FindStringSubmatch(v); m != nil {
		months, _ := strconv.ParseFloat(m[1], 64)
		years = months / 12
	} else {
		return 0, false
	}

	if years > 70 {
		return 0, false
	}
	if years != 0 && years < 0.1 {
		return 0, false
	}
	return years, true
}

// FormatYears renders a normalized experience value the way it is stored in
// record fields.
func FormatYears(years float64) string {
	return strconv.FormatFloat(years, 'f', -1, 64)
}

// FormatLakhs renders a normalized compensation value.
func FormatLakhs(lakhs float64) string {
	return strconv.FormatFloat(lakhs, 'f', -1, 64)
}
