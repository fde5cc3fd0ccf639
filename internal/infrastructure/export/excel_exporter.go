package export

import (
	"context"
	"fmt"

	"estimador/internal/domain/entities"
	"estimador/internal/usecase/interfaces"

	"github.com/xuri/excelize/v2"
)

const (
	reportSheet = "Report"
	itemsSheet  = "Items"
)

// ExcelExporter writes a report as an .xlsx workbook with one sheet for the
// estimates grouped by date and one for their items.
type ExcelExporter struct{}

var _ interfaces.IReportExporter = (*ExcelExporter)(nil)

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) Format() string { return "xlsx" }

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) Export(ctx context.Context, report entities.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: reportSheet, bold: bold}
	w.row(true, "Estimates report", periodLabel(report))
	w.row(false)
	w.row(true, toCells(estimateColumns(report))...)
	for _, g := range report.Groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, est := range g.Estimates {
			cells := []interface{}{g.Label, est.Name, est.CreatedBy, est.TotalAmount}
			if report.IncludesProfit {
				cells = append(cells, deref(est.TotalCost), deref(est.TotalProfit))
			}
			w.row(false, cells...)
		}
		subtotal := []interface{}{g.Label, "Subtotal", "", g.TotalAmount}
		if report.IncludesProfit {
			subtotal = append(subtotal, "", deref(g.TotalProfit))
		}
		w.row(true, subtotal...)
	}
	total := []interface{}{"", fmt.Sprintf("Total (%d estimates)", report.EstimateCount), "", report.TotalAmount}
	if report.IncludesProfit {
		total = append(total, "", deref(report.TotalProfit))
	}
	w.row(true, total...)

	items := &sheetWriter{f: f, sheet: itemsSheet, bold: bold}
	items.row(true, toCells(itemColumns(report))...)
	for _, g := range report.Groups {
		for _, est := range g.Estimates {
			for _, it := range est.Items {
				cells := []interface{}{est.Name, it.TemplateCode, it.TemplateDescription, it.Quantity, it.Price}
				if report.IncludesProfit {
					cells = append(cells, deref(it.ProfitMargin), deref(it.Profit))
				}
				items.row(false, cells...)
			}
		}
	}

	if w.err != nil {
		return nil, w.err
	}
	if items.err != nil {
		return nil, items.err
	}
	_ = f.SetColWidth(reportSheet, "A", "A", 14)
	_ = f.SetColWidth(reportSheet, "B", "C", 28)
	_ = f.SetColWidth(itemsSheet, "A", "C", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter appends rows to one sheet and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	bold  int
	next  int
	err   error
}

func (w *sheetWriter) row(bold bool, cells ...interface{}) {
	w.next++
	if w.err != nil || len(cells) == 0 {
		return
	}
	start, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(w.sheet, start, &cells); err != nil {
		w.err = err
		return
	}
	if bold {
		end, _ := excelize.CoordinatesToCellName(len(cells), w.next)
		w.err = w.f.SetCellStyle(w.sheet, start, end, w.bold)
	}
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
