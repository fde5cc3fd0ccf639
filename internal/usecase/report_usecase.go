package usecase

import (
	"context"
	"errors"
	"estimador/internal/domain/entities"
	"estimador/internal/usecase/interfaces"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidReportDate       = errors.New("invalid report date")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)

// ReportFilter holds the optional, inclusive YYYY-MM-DD bounds of a report.
type ReportFilter struct {
	StartDate string
	EndDate   string
}

// ExportedReport is a rendered report ready to be downloaded.
type ExportedReport struct {
	Filename    string
	ContentType string
	Content     []byte
}

// IReportUseCase exposes the Report Aggregator and the report exports.

type IReportUseCase interface {
	BuildReport(ctx context.Context, viewer entities.Identity, filter ReportFilter) (entities.Report, error)
	ExportReport(ctx context.Context, viewer entities.Identity, filter ReportFilter, format string) (ExportedReport, error)
}

type ReportUseCase struct {
	repo      interfaces.IEstimateRepository
	exporters map[string]interfaces.IReportExporter
	logger    *zap.Logger
	now       func() time.Time
}

var _ IReportUseCase = (*ReportUseCase)(nil)

func NewReportUseCase(repo interfaces.IEstimateRepository, exporters []interfaces.IReportExporter, logger *zap.Logger) *ReportUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	byFormat := make(map[string]interfaces.IReportExporter, len(exporters))
	for _, ex := range exporters {
		byFormat[strings.ToLower(ex.Format())] = ex
	}
	return &ReportUseCase{repo: repo, exporters: byFormat, logger: logger, now: time.Now}
}

func (u *ReportUseCase) BuildReport(ctx context.Context, viewer entities.Identity, filter ReportFilter) (entities.Report, error) {
	start, err := parseReportBound(filter.StartDate)
	if err != nil {
		return entities.Report{}, err
	}
	end, err := parseReportBound(filter.EndDate)
	if err != nil {
		return entities.Report{}, err
	}

	estimates, err := u.repo.List(ctx)
	if err != nil {
		return entities.Report{}, err
	}

	report := AggregateReport(estimates, viewer, start, end)
	u.logger.Debug("[report][usecase] report built",
		zap.String("viewer", viewer.Username),
		zap.Int("estimates", report.EstimateCount),
		zap.Int("groups", len(report.Groups)),
	)
	return report, nil
}

// ExportReport renders the viewer's report with the exporter registered for
// format. The same redaction as BuildReport applies.
func (u *ReportUseCase) ExportReport(ctx context.Context, viewer entities.Identity, filter ReportFilter, format string) (ExportedReport, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	exporter, ok := u.exporters[format]
	if !ok {
		return ExportedReport{}, ErrUnsupportedExportFormat
	}

	report, err := u.BuildReport(ctx, viewer, filter)
	if err != nil {
		return ExportedReport{}, err
	}

	content, err := exporter.Export(ctx, report)
	if err != nil {
		u.logger.Error("[report][usecase] export failed", zap.String("format", format), zap.Error(err))
		return ExportedReport{}, fmt.Errorf("export %s report: %w", format, err)
	}
	u.logger.Info("[report][usecase] report exported",
		zap.String("viewer", viewer.Username),
		zap.String("format", format),
		zap.Int("bytes", len(content)),
	)

	return ExportedReport{
		Filename:    fmt.Sprintf("estimates-report-%s.%s", u.now().UTC().Format("20060102"), format),
		ContentType: exporter.ContentType(),
		Content:     content,
	}, nil
}

// AggregateReport filters estimates to the inclusive [start, end] calendar
// range (nil bounds are open), groups them by date in ascending order and
// sums their amounts. Profit, margin and cost figures are only filled in for
// admin viewers.
func AggregateReport(estimates []entities.Estimate, viewer entities.Identity, start, end *time.Time) entities.Report {
	admin := viewer.IsAdmin()
	report := entities.Report{StartDate: start, EndDate: end, IncludesProfit: admin}

	type groupAcc struct {
		group  entities.ReportGroup
		amount decimal.Decimal
		profit decimal.Decimal
	}
	groups := make(map[string]*groupAcc)
	totalAmount, totalProfit := decimal.Zero, decimal.Zero

	for _, e := range estimates {
		day := entities.DateOnly(e.Date)
		if start != nil && day.Before(entities.DateOnly(*start)) {
			continue
		}
		if end != nil && day.After(entities.DateOnly(*end)) {
			continue
		}

		key := day.Format(entities.DateLayout)
		acc, ok := groups[key]
		if !ok {
			acc = &groupAcc{group: entities.ReportGroup{Date: day, Label: day.Format(entities.ReportDateLabelLayout)}}
			groups[key] = acc
		}
		acc.group.Estimates = append(acc.group.Estimates, toReportEstimate(e, admin))

		amount := decimal.NewFromFloat(e.TotalAmount)
		acc.amount = acc.amount.Add(amount)
		totalAmount = totalAmount.Add(amount)
		if admin {
			profit := decimal.NewFromFloat(e.TotalProfit)
			acc.profit = acc.profit.Add(profit)
			totalProfit = totalProfit.Add(profit)
		}
		report.EstimateCount++
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	report.Groups = make([]entities.ReportGroup, 0, len(keys))
	for _, k := range keys {
		acc := groups[k]
		sort.SliceStable(acc.group.Estimates, func(i, j int) bool {
			return acc.group.Estimates[i].CreatedAt.Before(acc.group.Estimates[j].CreatedAt)
		})
		acc.group.TotalAmount = acc.amount.InexactFloat64()
		if admin {
			acc.group.TotalProfit = floatPtr(acc.profit.InexactFloat64())
		}
		report.Groups = append(report.Groups, acc.group)
	}

	report.TotalAmount = totalAmount.InexactFloat64()
	if admin {
		report.TotalProfit = floatPtr(totalProfit.InexactFloat64())
	}
	return report
}

func toReportEstimate(e entities.Estimate, admin bool) entities.ReportEstimate {
	re := entities.ReportEstimate{
		ID:          e.ID,
		Name:        e.Name,
		Date:        entities.DateOnly(e.Date),
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		TotalAmount: e.TotalAmount,
		Items:       make([]entities.ReportItem, 0, len(e.Items)),
	}
	if admin {
		re.TotalCost = floatPtr(e.TotalCost)
		re.TotalProfit = floatPtr(e.TotalProfit)
	}
	for _, it := range e.Items {
		ri := entities.ReportItem{
			TemplateID:          it.TemplateID,
			TemplateCode:        it.TemplateCode,
			TemplateDescription: it.TemplateDescription,
			Quantity:            it.Quantity,
			Price:               it.Price,
		}
		if admin {
			ri.ProfitMargin = floatPtr(it.ProfitMargin)
			ri.Profit = floatPtr(it.Profit)
		}
		re.Items = append(re.Items, ri)
	}
	return re
}

func parseReportBound(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := entities.ParseDate(raw)
	if err != nil {
		return nil, ErrInvalidReportDate
	}
	return &d, nil
}

func floatPtr(v float64) *float64 {
	return &v
}
