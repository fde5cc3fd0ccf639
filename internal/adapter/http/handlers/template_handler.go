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

// TemplateHandler backs the template management screen and the template
// picker of the estimate builder.
type TemplateHandler struct {
	usecase usecase.ITemplateUseCase
}

func NewTemplateHandler(uc usecase.ITemplateUseCase) *TemplateHandler {
	return &TemplateHandler{usecase: uc}
}

// ListTemplates godoc
// @Summary      List templates
// @Description  Profit margins are only included for admins
// @Tags         templates
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  response.TemplateResponse
// @Router       /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	identity, ok := viewer(c)
	if !ok {
		return
	}
	list, err := h.usecase.ListTemplates(c.Request.Context())
	if err != nil {
		respondError(c, mapTemplateError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromTemplates(list, identity))
}

// GetTemplate godoc
// @Summary      Get template
// @Tags         templates
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  response.TemplateResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	identity, ok := viewer(c)
	if !ok {
		return
	}
	t, err := h.usecase.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapTemplateError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromTemplate(t, identity))
}

// CreateTemplate godoc
// @Summary      Create template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        template  body      request.TemplateRequest  true  "Template"
// @Success      201       {object}  response.TemplateResponse
// @Failure      400       {object}  pkg.HTTPError
// @Router       /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	h.upsert(c, "", http.StatusCreated)
}

// ReplaceTemplate godoc
// @Summary      Replace template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id        path      string                   true  "Template ID"
// @Param        template  body      request.TemplateRequest  true  "Template"
// @Success      200       {object}  response.TemplateResponse
// @Failure      400       {object}  pkg.HTTPError
// @Failure      404       {object}  pkg.HTTPError
// @Router       /templates/{id} [put]
func (h *TemplateHandler) ReplaceTemplate(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, mapTemplateError(usecase.ErrInvalidTemplateID))
		return
	}
	h.upsert(c, id, http.StatusOK)
}

func (h *TemplateHandler) upsert(c *gin.Context, id string, status int) {
	identity, ok := viewer(c)
	if !ok {
		return
	}
	var payload request.TemplateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, &payload, err)
		return
	}

	t, err := h.usecase.UpsertTemplate(c.Request.Context(), payload.ToInput(id))
	if err != nil {
		respondError(c, mapTemplateError(err))
		return
	}
	c.JSON(status, response.FromTemplate(t, identity))
}

// DeleteTemplate godoc
// @Summary      Delete template
// @Description  Estimates keep their own copy of the items
// @Tags         templates
// @Security     Bearer
// @Param        id  path  string  true  "Template ID"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Router       /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.usecase.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, mapTemplateError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func mapTemplateError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrTemplateFieldsRequired), errors.Is(err, usecase.ErrInvalidTemplateNumber):
		return pkg.NewDomainErrorSimple("INVALID_TEMPLATE_INPUT", "Code, description, quantity, price and profit margin are required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidTemplateID):
		return pkg.NewDomainErrorSimple("INVALID_TEMPLATE_ID", "Invalid template id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTemplateNotFound):
		return pkg.NewDomainErrorSimple("TEMPLATE_NOT_FOUND", "Template not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
