package export

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"estimador/internal/domain/entities"
	"estimador/internal/usecase/interfaces"

	"github.com/go-pdf/fpdf"
)

const (
	pdfLineHeight = 6.0
	pdfPageWidth  = 190.0
)

// PDFExporter renders a report as an A4 PDF table, one block per date.
type PDFExporter struct{}

var _ interfaces.IReportExporter = (*PDFExporter)(nil)

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

func (p *PDFExporter) Format() string { return "pdf" }

func (p *PDFExporter) ContentType() string { return "application/pdf" }

func (p *PDFExporter) Export(ctx context.Context, report entities.Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Estimates report", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(pdfPageWidth, 10, tr("Estimates report"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(pdfPageWidth, pdfLineHeight, tr("Period: "+periodLabel(report)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	cols := estimateColumns(report)
	widths := columnWidths(len(cols))

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, c := range cols {
			pdf.CellFormat(widths[i], pdfLineHeight+1, tr(c), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}

	if len(report.Groups) == 0 {
		pdf.CellFormat(pdfPageWidth, pdfLineHeight, tr("No estimates in this period."), "", 1, "L", false, 0, "")
	}

	for _, g := range report.Groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(pdfPageWidth, pdfLineHeight+2, tr(g.Label), "", 1, "L", false, 0, "")
		header()

		for _, est := range g.Estimates {
			cells := []string{g.Label, est.Name, est.CreatedBy, money(est.TotalAmount)}
			if report.IncludesProfit {
				cells = append(cells, money(deref(est.TotalCost)), money(deref(est.TotalProfit)))
			}
			for i, c := range cells {
				align := "L"
				if i >= 3 {
					align = "R"
				}
				pdf.CellFormat(widths[i], pdfLineHeight, tr(c), "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}

		pdf.SetFont("Helvetica", "B", 9)
		lead := widths[0] + widths[1] + widths[2]
		pdf.CellFormat(lead, pdfLineHeight, tr("Subtotal"), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], pdfLineHeight, money(g.TotalAmount), "1", 0, "R", false, 0, "")
		if report.IncludesProfit {
			pdf.CellFormat(widths[4], pdfLineHeight, "", "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[5], pdfLineHeight, money(deref(g.TotalProfit)), "1", 0, "R", false, 0, "")
		}
		pdf.Ln(pdfLineHeight + 2)
	}

	pdf.SetFont("Helvetica", "B", 11)
	summary := fmt.Sprintf("Estimates: %d    Total amount: %s", report.EstimateCount, money(report.TotalAmount))
	if report.IncludesProfit {
		summary += "    Total profit: " + money(deref(report.TotalProfit))
	}
	pdf.CellFormat(pdfPageWidth, pdfLineHeight+2, tr(summary), "T", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths gives the text columns the room left by the numeric ones.
func columnWidths(n int) []float64 {
	if n > 4 {
		return []float64{22, 55, 35, 26, 26, 26}
	}
	return []float64{25, 80, 50, 35}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
