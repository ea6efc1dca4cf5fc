package extract

import "testing"

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"bare number", "9876543210", "9876543210", true},
		{"inside a sentence", "sure, my number is 9876543212 thanks", "9876543212", true},
		{"starts below 6", "5876543210", "", false},
		{"part of a longer number", "12345678901", "", false},
		{"no digits", "call me maybe", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Phone(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Phone(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestOTP(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"1234", "1234", true},
		{"the otp is 4821", "4821", true},
		{"123", "", false},
		{"12345", "", false},
	}
	for _, tt := range tests {
		got, ok := OTP(tt.text)
		if ok != tt.ok || got != tt.want {
			t.Errorf("OTP(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int64
		ok   bool
	}{
		{"lakh word", "I need 5 lakhs for the wedding", 500000, true},
		{"fractional lakh", "around 2.5 lakh should do", 250000, true},
		{"lac spelling", "maybe 3 lacs", 300000, true},
		{"currency symbol", "₹350000", 350000, true},
		{"currency with commas", "rs. 3,50,000", 350000, true},
		{"currency small number means lakhs", "rs 5", 500000, true},
		{"shorthand L", "give me 7L", 700000, true},
		{"bare rupee figure", "I want 75000 for the trip", 75000, true},
		{"below minimum", "just 20000", 0, false},
		{"above maximum", "150 lakhs please", 0, false},
		{"no amount", "what are my options", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Amount(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Amount(%q) = %d, %v; want %d, %v", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTenure(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
		ok   bool
	}{
		{"years", "5 years works for me", 60, true},
		{"yrs", "3 yrs", 36, true},
		{"months", "36 months", 36, true},
		{"years win over months", "4 years, not 24 months", 48, true},
		{"nothing", "whatever you suggest", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Tenure(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Tenure(%q) = %d, %v; want %d, %v", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPurpose(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"it's for my daughter's wedding", "wedding", true},
		{"renovating my house", "home", true},
		{"need it for a medical emergency", "medical", true},
		{"planning a trip to Europe", "travel", true},
		{"to repay my credit card debt", "debt consolidation", true},
		{"personal expenses", "personal", true},
		{"hello", "", false},
	}
	for _, tt := range tests {
		got, ok := Purpose(tt.text)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Purpose(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}
