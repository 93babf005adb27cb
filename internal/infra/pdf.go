package infra

// pdf.go — Day-closing report generation using go-pdf/fpdf.
// One A5 page per closing:
//   - Facility header and business day
//   - Revenue breakdown (entry / additional fees / rentals)
//   - Payment method totals: expected vs. declared
//   - Deviation line with classification
//
// The output file is saved to storagePath/closing_{businessDay}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"saunapos/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateClosingPDF renders the closing report for one business day.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateClosingPDF(closing *model.DayClosing, summary *model.DailySummary, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("closing_%s.pdf", closing.BusinessDay)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24 // total margins = 24mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, "SaunaPOS", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Day Closing Report", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Business day "+closing.BusinessDay, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Closed at "+closing.ClosedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	labelW := contentW * 0.6
	valueW := contentW * 0.4

	row := func(label string, amount int) {
		pdf.CellFormat(labelW, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 5, formatWon(amount), "", 1, "R", false, 0, "")
	}

	// ── Revenue breakdown ─────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "Revenue", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	if summary != nil {
		row("Entry fees", summary.EntryTotal)
		row("Additional fees", summary.AdditionalTotal)
		row("Rentals", summary.RentalTotal)
		row("Deposits held", summary.DepositHeld)
		pdf.CellFormat(labelW, 5, fmt.Sprintf("Sessions: %d   Cancellations: %d", summary.Sessions, summary.Cancellations), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Expected vs. declared ─────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "Drawer reconciliation", "B", 1, "L", false, 0, "")

	col1 := contentW * 0.34
	col2 := contentW * 0.33
	col3 := contentW * 0.33

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Method", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Expected", "", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 5, "Declared", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	methodRow := func(name string, expected, declared int) {
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, formatWon(expected), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 5, formatWon(declared), "", 1, "R", false, 0, "")
	}
	methodRow("Cash", closing.ExpectedCash, closing.DeclaredCash)
	methodRow("Card", closing.ExpectedCard, closing.DeclaredCard)
	methodRow("Transfer", closing.ExpectedTransfer, closing.DeclaredTransfer)

	expectedTotal := closing.ExpectedCash + closing.ExpectedCard + closing.ExpectedTransfer
	declaredTotal := closing.DeclaredCash + closing.DeclaredCard + closing.DeclaredTransfer

	pdf.SetFont("Helvetica", "B", 9)
	methodRow("Total", expectedTotal, declaredTotal)
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Deviation ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(labelW, 6, "Deviation ("+closing.DeviationClass+"):", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 6, fmt.Sprintf("%s (%s%%)", formatWon(closing.Deviation), closing.DeviationPct.StringFixed(2)), "", 1, "R", false, 0, "")

	if closing.Notes != nil && *closing.Notes != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 4, "Notes: "+*closing.Notes, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

// formatWon renders an integer KRW amount with thousands separators.
func formatWon(amount int) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%d", amount)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s + " KRW"
}
