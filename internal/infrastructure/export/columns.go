package export

import (
	"time"

	"estimador/internal/domain/entities"
)

const dateLayout = "02/01/2006"

// estimateColumns lists the estimate table headings for a report. Cost and
// profit columns exist only when the report carries them.
func estimateColumns(r entities.Report) []string {
	cols := []string{"Date", "Estimate", "Created by", "Amount"}
	if r.IncludesProfit {
		cols = append(cols, "Cost", "Profit")
	}
	return cols
}

func itemColumns(r entities.Report) []string {
	cols := []string{"Estimate", "Code", "Description", "Quantity", "Price"}
	if r.IncludesProfit {
		cols = append(cols, "Margin %", "Profit")
	}
	return cols
}

func periodLabel(r entities.Report) string {
	return boundLabel(r.StartDate, "beginning") + " - " + boundLabel(r.EndDate, "today")
}

func boundLabel(t *time.Time, open string) string {
	if t == nil {
		return open
	}
	return t.Format(dateLayout)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
