package sanction

import (
	"bytes"
	"context"
	"testing"
)

func TestGenerate(t *testing.T) {
	g := NewGenerator("Meridian Capital", "1800-209-9191")

	artifact, err := g.Generate(context.Background(), Letter{
		LoanID:       "MCAP1A2B3C4D5E",
		CustomerName: "Rahul Sharma",
		Amount:       500000,
		TenureMonths: 48,
		EMI:          13167,
		InterestRate: 12,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if artifact.FileName != "Sanction_Letter_Rahul_Sharma.pdf" {
		t.Errorf("file name = %q", artifact.FileName)
	}
	if !bytes.HasPrefix(artifact.Content, []byte("%PDF")) {
		t.Error("content is not a PDF document")
	}
}

func TestGenerateCancelledContext(t *testing.T) {
	g := NewGenerator("Meridian Capital", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.Generate(ctx, Letter{LoanID: "X"}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{500, "500"},
		{75000, "75,000"},
		{500000, "5,00,000"},
		{12345678, "1,23,45,678"},
	}
	for _, tt := range tests {
		if got := formatRupees(tt.in); got != tt.want {
			t.Errorf("formatRupees(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
