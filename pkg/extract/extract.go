// Package extract pulls typed facts out of free-form user text.
//
// Every extractor is a pure function and never fails: absence of a match
// means "no fact this turn", reported via the ok return. The extractors
// are the deterministic backbone of the conversation flow; the language
// model is used for phrasing only and never decides a transition.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// MinLoanAmount and MaxLoanAmount bound the sane absolute range for a
	// requested amount in rupees.
	MinLoanAmount = 50_000
	MaxLoanAmount = 10_000_000

	lakh = 100_000
)

var (
	phoneRe = regexp.MustCompile(`\b[6-9]\d{9}\b`)
	otpRe   = regexp.MustCompile(`\b(\d{4})\b`)

	// Amount patterns, tried in priority order.
	amountLakhRe      = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:lakh|lakhs|lac|lacs)\b`)
	amountCurrencyRe  = regexp.MustCompile(`(?i)(?:₹|\brs\.?|\binr)\s*([\d,]+)(?:\s*(lakh|lakhs|lac|lacs))?`)
	amountShorthandRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*L\b`)
	amountBareRe      = regexp.MustCompile(`\b(\d{5,7})\b`)

	tenureYearRe  = regexp.MustCompile(`(?i)\b(\d+)\s*(?:years?|yrs?)\b`)
	tenureMonthRe = regexp.MustCompile(`(?i)\b(\d+)\s*(?:months?|mos?)\b`)
)

// Phone returns the first 10-digit token starting with 6-9.
func Phone(text string) (string, bool) {
	m := phoneRe.FindString(text)
	return m, m != ""
}

// OTP returns the first bare 4-digit token. Comparing it against the
// expected challenge value is the caller's job.
func OTP(text string) (string, bool) {
	m := otpRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Amount extracts a requested loan amount in rupees. Patterns run in
// priority order; the first one yielding a value inside the sane band wins.
// Lakh-denominated forms are scaled by 100000; a bare number below 100 is
// assumed to mean lakhs.
func Amount(text string) (int64, bool) {
	if m := amountLakhRe.FindStringSubmatch(text); m != nil {
		if v, ok := inRange(parseNumber(m[1]) * lakh); ok {
			return v, true
		}
	}

	if m := amountCurrencyRe.FindStringSubmatch(text); m != nil {
		v := parseNumber(strings.ReplaceAll(m[1], ",", ""))
		if m[2] != "" || v < 100 {
			v *= lakh
		}
		if r, ok := inRange(v); ok {
			return r, true
		}
	}

	if m := amountShorthandRe.FindStringSubmatch(text); m != nil {
		if v, ok := inRange(parseNumber(m[1]) * lakh); ok {
			return v, true
		}
	}

	if m := amountBareRe.FindStringSubmatch(text); m != nil {
		if v, ok := inRange(parseNumber(m[1])); ok {
			return v, true
		}
	}

	return 0, false
}

// Tenure extracts a repayment period in months. The year form takes
// priority when both could match.
func Tenure(text string) (int, bool) {
	if m := tenureYearRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n * 12, true
	}
	if m := tenureMonthRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, true
	}
	return 0, false
}

// purposeCategories is an ordered keyword table; the first matching
// category wins.
var purposeCategories = []struct {
	category string
	keywords []string
}{
	{"education", []string{"education", "study", "studies", "college", "university", "course", "tuition"}},
	{"home", []string{"home", "house", "renovation", "flat", "apartment", "property"}},
	{"medical", []string{"medical", "hospital", "surgery", "treatment", "health"}},
	{"travel", []string{"travel", "trip", "vacation", "holiday", "honeymoon"}},
	{"business", []string{"business", "startup", "shop", "venture"}},
	{"wedding", []string{"wedding", "marriage", "shaadi"}},
	{"debt consolidation", []string{"debt", "consolidat", "credit card", "repay", "refinance"}},
	{"personal", []string{"personal", "emergency", "expenses"}},
}

// Purpose classifies the message into a loan-purpose category.
func Purpose(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, pc := range purposeCategories {
		for _, kw := range pc.keywords {
			if strings.Contains(lower, kw) {
				return pc.category, true
			}
		}
	}
	return "", false
}

func parseNumber(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func inRange(v float64) (int64, bool) {
	if v < MinLoanAmount || v > MaxLoanAmount {
		return 0, false
	}
	return int64(v), true
}
