// Package sanction renders the loan sanction letter issued on approval.
// It is the in-process Document collaborator: the orchestrator hands it
// the approved terms and gets back a PDF artifact plus identifier.
package sanction

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Letter carries the approved terms to render. All values are final at
// this point; the generator must never recompute or alter them.
type Letter struct {
	LoanID       string
	CustomerName string
	Amount       int64
	TenureMonths int
	EMI          float64
	InterestRate float64
}

// Artifact is the generated document payload returned to the caller.
type Artifact struct {
	FileName string
	Content  []byte
}

// Generator renders sanction letters for a configured lender.
type Generator struct {
	LenderName  string
	SupportLine string
}

func NewGenerator(lenderName, supportLine string) *Generator {
	return &Generator{
		LenderName:  lenderName,
		SupportLine: supportLine,
	}
}

// Generate renders the A4 sanction letter. Errors here are turn-level:
// the approval decision has already been stored by the caller and must
// not be re-evaluated on retry.
func (g *Generator) Generate(ctx context.Context, letter Letter) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(102, 0, 102)
	pdf.CellFormat(0, 12, g.LenderName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 8, "LOAN SANCTION LETTER", "", 1, "L", false, 0, "")
	pdf.SetDrawColor(102, 0, 102)
	pdf.SetLineWidth(0.8)
	pdf.Line(10, pdf.GetY()+2, 200, pdf.GetY()+2)
	pdf.Ln(8)

	// Reference block
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 5, fmt.Sprintf("Loan ID: %s", letter.LoanID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Date: %s", time.Now().Format("02 January 2006")), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Customer details
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 7, "CUSTOMER DETAILS", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Name: %s", letter.CustomerName), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Loan details
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "LOAN DETAILS", "", 1, "L", false, 0, "")
	rows := [][2]string{
		{"Sanctioned Amount:", fmt.Sprintf("INR %s", formatRupees(letter.Amount))},
		{"Interest Rate:", fmt.Sprintf("%.1f%% per annum", letter.InterestRate)},
		{"Loan Tenure:", fmt.Sprintf("%d months (%d years)", letter.TenureMonths, letter.TenureMonths/12)},
		{"Monthly EMI:", fmt.Sprintf("INR %s", formatRupees(int64(letter.EMI+0.5)))},
		{"Total Payable:", fmt.Sprintf("INR %s", formatRupees(int64(letter.EMI*float64(letter.TenureMonths)+0.5)))},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 102, 0)
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
		pdf.SetTextColor(51, 51, 51)
	}
	pdf.Ln(4)

	// Terms
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "TERMS & CONDITIONS", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(77, 77, 77)
	terms := []string{
		"1. This sanction is valid for 30 days from the date of issue.",
		"2. Disbursement subject to document verification.",
		"3. Zero prepayment charges after 6 months.",
		"4. Late payment charges: 2% per month on overdue amount.",
		"5. Please refer to the detailed loan agreement for complete terms.",
	}
	for _, term := range terms {
		pdf.CellFormat(0, 5, term, "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Footer
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 128, 0)
	pdf.CellFormat(0, 6, "Congratulations on your loan approval!", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 5, "This is a system-generated sanction letter and does not require a signature.", "", 1, "L", false, 0, "")
	if g.SupportLine != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("For queries, contact: %s", g.SupportLine), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render sanction letter: %w", err)
	}

	fileName := fmt.Sprintf("Sanction_Letter_%s.pdf", sanitizeFileName(letter.CustomerName))
	return &Artifact{
		FileName: fileName,
		Content:  buf.Bytes(),
	}, nil
}

// formatRupees groups digits Indian style (1,23,45,678).
func formatRupees(v int64) string {
	s := fmt.Sprintf("%d", v)
	if len(s) <= 3 {
		return s
	}
	head := s[:len(s)-3]
	tail := s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}
