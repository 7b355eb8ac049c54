package receipt

import (
	"testing"
)

func TestExtractFullReceipt(t *testing.T) {
	text := `Blue Bottle Coffee
123 Market St

Latte        4.50
Croissant    3.25

Total        USD 7.75
2025-03-14
`
	e := NewTextExtractor()
	fields, err := e.Extract([]byte(text))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if fields.Amount == nil || *fields.Amount != 7.75 {
		t.Errorf("Amount = %v, want 7.75", fields.Amount)
	}
	if fields.Date == nil || *fields.Date != "2025-03-14" {
		t.Errorf("Date = %v, want 2025-03-14", fields.Date)
	}
	if fields.Currency == nil || *fields.Currency != "USD" {
		t.Errorf("Currency = %v, want USD", fields.Currency)
	}
	if fields.Category == nil || *fields.Category != "Meals" {
		t.Errorf("Category = %v, want Meals", fields.Category)
	}
	if fields.Description == nil || *fields.Description != "Blue Bottle Coffee" {
		t.Errorf("Description = %v, want vendor line", fields.Description)
	}
}

func TestExtractBinaryDataYieldsEmptyFields(t *testing.T) {
	e := NewTextExtractor()
	fields, err := e.Extract([]byte{0xff, 0xfe, 0x00, 0x89, 0x50})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if fields.Amount != nil || fields.Date != nil || fields.Currency != nil ||
		fields.Category != nil || fields.Description != nil {
		t.Errorf("Extract() = %+v, want all fields empty", fields)
	}
}

func TestFindAmount(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   float64
		wantOK bool
	}{
		{"labeled total wins over larger number", "Item 99.99\nTotal 12.50", 12.50, true},
		{"grand total label", "Grand Total: 1,234.56", 1234.56, true},
		{"amount due label", "AMOUNT DUE   45.00", 45.00, true},
		{"no label falls back to max", "3.20\n18.75\n9.99", 18.75, true},
		{"no decimal numbers", "order number 12345", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findAmount(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("findAmount() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("findAmount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindDate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"iso", "Date: 2025-06-30", "2025-06-30", true},
		{"day first slashes", "14/03/2025", "2025-03-14", true},
		{"short month word", "Mar 14, 2025", "2025-03-14", true},
		{"full month word", "receipt dated january 5 2025", "2025-01-05", true},
		{"none", "no dates here", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findDate(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("findDate() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("findDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindCurrency(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"explicit code", "Total 12.00 EUR", "EUR"},
		{"euro symbol", "Total €12.00", "EUR"},
		{"rupee symbol", "Total ₹450.00", "INR"},
		{"dollar symbol last resort", "Total $9.99", "USD"},
		{"code beats symbol", "Total $12.00 CAD", "CAD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findCurrency(tt.text)
			if !ok {
				t.Fatal("findCurrency() found nothing")
			}
			if got != tt.want {
				t.Errorf("findCurrency() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, ok := findCurrency("no money mentioned"); ok {
		t.Error("findCurrency() expected no match")
	}
}

func TestFindCategory(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"uber trip downtown", "Travel"},
		{"grand hotel stay", "Accommodation"},
		{"corner cafe", "Meals"},
		{"printer paper refill", "Office Supplies"},
	}
	for _, tt := range tests {
		got, ok := findCategory(tt.text)
		if !ok {
			t.Errorf("findCategory(%q) found nothing", tt.text)
			continue
		}
		if got != tt.want {
			t.Errorf("findCategory(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}

	if _, ok := findCategory("unrelated text"); ok {
		t.Error("findCategory() expected no match")
	}
}
