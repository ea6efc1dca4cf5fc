package loan

import (
	"math"
	"testing"
)

func TestCalculateEMI(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		months    int
		want      float64
	}{
		{"5 lakh over 60 months at 12%", 500000, 12, 60, 11122.22},
		{"5 lakh over 48 months at 12%", 500000, 12, 48, 13166.99},
		{"1.2 lakh over 12 months at 12%", 120000, 12, 12, 10661.85},
		{"home rate is cheaper", 500000, 8.5, 60, 10258.27},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateEMI(tt.principal, tt.rate, tt.months)
			if math.Abs(got-tt.want) > 1.0 {
				t.Errorf("CalculateEMI(%.0f, %.1f, %d) = %.2f, want ~%.2f",
					tt.principal, tt.rate, tt.months, got, tt.want)
			}
		})
	}
}

func TestCalculateEMILongerTenureLowersInstallment(t *testing.T) {
	prev := math.Inf(1)
	for _, months := range []int{12, 24, 36, 48, 60} {
		emi := CalculateEMI(500000, 12, months)
		if emi >= prev {
			t.Fatalf("EMI at %d months (%.2f) not lower than shorter tenure (%.2f)", months, emi, prev)
		}
		prev = emi
	}
}

func TestCalculateTotalInterest(t *testing.T) {
	emi := CalculateEMI(500000, 12, 60)
	interest := CalculateTotalInterest(emi, 60, 500000)

	if interest <= 0 {
		t.Fatalf("total interest must be positive, got %.2f", interest)
	}
	if got, want := interest, emi*60-500000; math.Abs(got-want) > 0.01 {
		t.Errorf("total interest = %.2f, want %.2f", got, want)
	}
}
