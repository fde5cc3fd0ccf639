package handlers

import (
	"errors"
	"fmt"
	"net/http"

	request "estimador/internal/adapter/http/dto/request"
	response "estimador/internal/adapter/http/dto/response"
	"estimador/internal/usecase"
	"estimador/pkg"

	"github.com/gin-gonic/gin"
)

// ReportHandler backs the reports screen. Every authenticated user can
// open it; the use case strips profit figures for non-admins.
type ReportHandler struct {
	usecase usecase.IReportUseCase
}

func NewReportHandler(uc usecase.IReportUseCase) *ReportHandler {
	return &ReportHandler{usecase: uc}
}

// GetReport godoc
// @Summary      Estimates report
// @Description  Estimates grouped by date within the optional inclusive range
// @Tags         reports
// @Produce      json
// @Security     Bearer
// @Param        start_date  query     string  false  "YYYY-MM-DD"
// @Param        end_date    query     string  false  "YYYY-MM-DD"
// @Success      200         {object}  response.ReportResponse
// @Failure      400         {object}  pkg.HTTPError
// @Router       /reports [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	identity, ok := viewer(c)
	if !ok {
		return
	}
	var query request.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, &query, err)
		return
	}

	report, err := h.usecase.BuildReport(c.Request.Context(), identity, query.Filter())
	if err != nil {
		respondError(c, mapReportError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromReport(report))
}

// ExportReport godoc
// @Summary      Download report
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Security     Bearer
// @Param        format      query  string  true   "xlsx or pdf"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}    file
// @Failure      400  {object}  pkg.HTTPError
// @Router       /reports/export [get]
func (h *ReportHandler) ExportReport(c *gin.Context) {
	identity, ok := viewer(c)
	if !ok {
		return
	}
	var query request.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, &query, err)
		return
	}

	file, err := h.usecase.ExportReport(c.Request.Context(), identity, query.Filter(), query.Format)
	if err != nil {
		respondError(c, mapReportError(err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

func mapReportError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidReportDate):
		return pkg.NewDomainErrorSimple("INVALID_REPORT_DATE", "Report dates must be YYYY-MM-DD", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnsupportedExportFormat):
		return pkg.NewDomainErrorSimple("INVALID_EXPORT_FORMAT", "Export format must be xlsx or pdf", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
