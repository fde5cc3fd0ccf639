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

// UserHandler backs the user management screen. All routes are admin-only.
type UserHandler struct {
	usecase usecase.IUserUseCase
}

func NewUserHandler(uc usecase.IUserUseCase) *UserHandler {
	return &UserHandler{usecase: uc}
}

// ListUsers godoc
// @Summary      List users
// @Description  Non-admin accounts
// @Tags         users
// @Produce      json
// @Security     Bearer
// @Success      200  {array}   response.UserResponse
// @Failure      403  {object}  pkg.HTTPError
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.usecase.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, mapUserError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromUsers(users))
}

// CreateUser godoc
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        user  body      request.CreateUserRequest  true  "User"
// @Success      201   {object}  response.UserResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var payload request.CreateUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, &payload, err)
		return
	}

	user, err := h.usecase.CreateUser(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondError(c, mapUserError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromUser(user))
}

// DeleteUser godoc
// @Summary      Delete user
// @Tags         users
// @Security     Bearer
// @Param        id  path  string  true  "User ID"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.usecase.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, mapUserError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func mapUserError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrUserFieldsRequired):
		return pkg.NewDomainErrorSimple("USER_FIELDS_REQUIRED", "Username and password are required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidUserID):
		return pkg.NewDomainErrorSimple("INVALID_USER_ID", "Invalid user id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUsernameTaken):
		return pkg.NewDomainErrorSimple("USERNAME_TAKEN", "Username already exists", http.StatusConflict)
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrAdminNotDeletable):
		return pkg.NewDomainErrorSimple("ADMIN_NOT_DELETABLE", "Admin users cannot be deleted", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
