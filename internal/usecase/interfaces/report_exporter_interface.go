package interfaces

import (
	"context"
	"estimador/internal/domain/entities"
)

// IReportExporter renders an aggregated report to a downloadable file.
//
// The report it receives is already redacted for its viewer, so exporters
// never decide on access to profit figures themselves.
type IReportExporter interface {
	Format() string
	ContentType() string
	Export(ctx context.Context, report entities.Report) ([]byte, error)
}
