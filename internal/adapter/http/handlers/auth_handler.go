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

var errInvalidCredentials = pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Invalid username or password", http.StatusUnauthorized)

// AuthHandler backs the login form and the navigation state.
type AuthHandler struct {
	sessions usecase.ISessionUseCase
}

func NewAuthHandler(sessions usecase.ISessionUseCase) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login godoc
// @Summary      Log in
// @Description  Returns a bearer token and the screen to open first
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        credentials  body      request.LoginRequest  true  "Credentials"
// @Success      200          {object}  response.LoginResponse
// @Failure      401          {object}  pkg.HTTPError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidCredentials)
		return
	}

	session, err := h.sessions.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondError(c, mapSessionError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromSession(session))
}

// Session godoc
// @Summary      Current session
// @Description  Identity of the caller and the screens its role can open
// @Tags         session
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  response.SessionResponse
// @Failure      401  {object}  pkg.HTTPError
// @Router       /session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	identity, ok := viewer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response.FromIdentity(identity))
}

func mapSessionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return errInvalidCredentials
	case errors.Is(err, usecase.ErrInvalidSession):
		return errUnauthorized
	default:
		return pkg.NewDomainError(errInternal.Code, errInternal.Message, err, errInternal.HTTPStatus)
	}
}
