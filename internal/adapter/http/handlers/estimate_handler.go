package handlers

import (
	"errors"
	"net/http"

	request "estimador/internal/adapter/http/dto/request"
	response "estimador/internal/adapter/http/dto/response"
	"estimador/internal/usecase"
	"estimador/pkg"

	"github.com/gin-gonic/gin"
)

// EstimateHandler backs the estimate creation screen and the "my estimates"
// panel.
type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// CreateEstimate godoc
// @Summary      Generate an estimate
// @Description  Snapshots the selected templates, prices them and stores the estimate
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        estimate  body      request.CreateEstimateRequest  true  "Estimate"
// @Success      201       {object}  response.EstimateResponse
// @Failure      400       {object}  pkg.HTTPError
// @Failure      404       {object}  pkg.HTTPError
// @Router       /estimates [post]
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	identity, ok := viewer(c)
	if !ok {
		return
	}
	var payload request.CreateEstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, &payload, err)
		return
	}

	estimate, err := h.usecase.CreateEstimate(c.Request.Context(), payload.ToCommand(identity.Username))
	if err != nil {
		respondError(c, mapEstimateError(err))
		return
	}

	c.JSON(http.StatusCreated, response.FromEstimate(estimate, identity))
}

// ListMyEstimates godoc
// @Summary      My estimates
// @Tags         estimates
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  response.EstimateResponse
// @Router       /estimates/mine [get]
func (h *EstimateHandler) ListMyEstimates(c *gin.Context) {
	identity, ok := viewer(c)
	if !ok {
		return
	}
	list, err := h.usecase.ListMyEstimates(c.Request.Context(), identity)
	if err != nil {
		respondError(c, mapEstimateError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimates(list, identity))
}

// GetEstimate godoc
// @Summary      Get estimate
// @Tags         estimates
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Estimate ID"
// @Success      200  {object}  response.EstimateResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /estimates/{id} [get]
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	identity, ok := viewer(c)
	if !ok {
		return
	}
	estimate, err := h.usecase.GetEstimate(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		respondError(c, mapEstimateError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate, identity))
}

func mapEstimateError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrIncompleteEstimate):
		return pkg.NewDomainErrorSimple("INCOMPLETE_ESTIMATE", "Estimate name, date and at least one item are required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidEstimateDate):
		return pkg.NewDomainErrorSimple("INVALID_ESTIMATE_DATE", "Estimate date must be YYYY-MM-DD", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidEstimateID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTemplateNotFound):
		return pkg.NewDomainErrorSimple("TEMPLATE_NOT_FOUND", "Template not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
