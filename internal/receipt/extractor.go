package receipt

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Fields are the claim fields a receipt scan can pre-fill. Every field is
// optional: extraction is best effort and never blocks claim submission.
type Fields struct {
	Amount      *float64 `json:"amount,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
}

// Extractor pulls claim fields out of an uploaded receipt
type Extractor interface {
	Extract(data []byte) (*Fields, error)
}

// TextExtractor is a heuristic extractor for text-decodable receipts.
// Binary uploads yield empty fields rather than an error.
type TextExtractor struct{}

// NewTextExtractor creates a new text-heuristic extractor
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

var (
	totalLineRe = regexp.MustCompile(`(?i)(?:grand\s+total|amount\s+due|total|amount|balance)\D*?(\d[\d,]*\.\d{2})`)
	numberRe    = regexp.MustCompile(`\d[\d,]*\.\d{2}`)
	isoDateRe   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	slashDateRe = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	wordDateRe  = regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]* \d{1,2},? \d{4}`)
	codeRe      = regexp.MustCompile(`\b(USD|EUR|GBP|INR|JPY|CAD|AUD|CHF|CNY|SGD)\b`)
)

var symbolCurrencies = []struct {
	symbol string
	code   string
}{
	{"€", "EUR"},
	{"£", "GBP"},
	{"₹", "INR"},
	{"¥", "JPY"},
	{"$", "USD"},
}

var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Travel", []string{"uber", "taxi", "flight", "airline", "train", "fuel", "parking"}},
	{"Accommodation", []string{"hotel", "inn", "resort", "lodging", "airbnb"}},
	{"Meals", []string{"restaurant", "cafe", "coffee", "diner", "pizza", "food", "bar"}},
	{"Office Supplies", []string{"stationery", "office", "supplies", "printer", "paper"}},
}

// Extract parses the receipt text and returns whatever fields it can find
func (e *TextExtractor) Extract(data []byte) (*Fields, error) {
	fields := &Fields{}

	if !utf8.Valid(data) {
		return fields, nil
	}
	text := string(data)
	lower := strings.ToLower(text)

	if amount, ok := findAmount(text); ok {
		fields.Amount = &amount
	}
	if date, ok := findDate(text); ok {
		fields.Date = &date
	}
	if currency, ok := findCurrency(text); ok {
		fields.Currency = &currency
	}
	if category, ok := findCategory(lower); ok {
		fields.Category = &category
	}
	if desc, ok := findVendor(text); ok {
		fields.Description = &desc
	}

	return fields, nil
}

func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// findAmount prefers a labeled total line, falling back to the largest
// decimal number on the receipt.
func findAmount(text string) (float64, bool) {
	if m := totalLineRe.FindStringSubmatch(text); m != nil {
		if n, ok := parseNumber(m[1]); ok {
			return n, true
		}
	}

	var max float64
	found := false
	for _, m := range numberRe.FindAllString(text, -1) {
		if n, ok := parseNumber(m); ok && (!found || n > max) {
			max = n
			found = true
		}
	}
	return max, found
}

func findDate(text string) (string, bool) {
	if m := isoDateRe.FindString(text); m != "" {
		if t, err := time.Parse("2006-01-02", m); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	if m := slashDateRe.FindString(text); m != "" {
		if t, err := time.Parse("02/01/2006", m); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	if m := wordDateRe.FindString(text); m != "" {
		cleaned := strings.ReplaceAll(m, ",", "")
		cleaned = strings.ToUpper(cleaned[:1]) + strings.ToLower(cleaned[1:])
		for _, layout := range []string{"Jan 2 2006", "January 2 2006"} {
			if t, err := time.Parse(layout, cleaned); err == nil {
				return t.Format("2006-01-02"), true
			}
		}
	}
	return "", false
}

func findCurrency(text string) (string, bool) {
	if m := codeRe.FindString(text); m != "" {
		return m, true
	}
	for _, sc := range symbolCurrencies {
		if strings.Contains(text, sc.symbol) {
			return sc.code, true
		}
	}
	return "", false
}

func findCategory(lower string) (string, bool) {
	for _, ck := range categoryKeywords {
		for _, kw := range ck.keywords {
			if strings.Contains(lower, kw) {
				return ck.category, true
			}
		}
	}
	return "", false
}

// findVendor takes the first non-empty line as the merchant name
func findVendor(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line, true
		}
	}
	return "", false
}
