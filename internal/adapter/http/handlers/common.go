package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"estimador/internal/adapter/http/middleware"
	"estimador/internal/domain/entities"
	"estimador/pkg"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request payload", http.StatusBadRequest)
	errValidation     = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "One or more fields failed validation", http.StatusBadRequest)
	errUnauthorized   = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	errInternal       = pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
)

func respondError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// respondBindingError answers a failed ShouldBind with per-field messages
// keyed by the payload's json names when the validator produced them.
func respondBindingError(c *gin.Context, payload any, err error) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		respondError(c, errInvalidPayload)
		return
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		name := jsonFieldName(payload, fe.StructField())
		fields[name] = formatValidationError(name, fe)
	}
	respondError(c, errValidation.WithFields(fields))
}

func formatValidationError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// jsonFieldName returns the json (or form) name of a field of payload,
// falling back to the lower-camel Go name.
func jsonFieldName(payload any, field string) string {
	t := reflect.TypeOf(payload)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Kind() == reflect.Struct {
		if sf, ok := t.FieldByName(field); ok {
			for _, key := range []string{"json", "form"} {
				name, _, _ := strings.Cut(sf.Tag.Get(key), ",")
				if name != "" && name != "-" {
					return name
				}
			}
		}
	}
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// viewer returns the identity placed by the auth middleware. Handlers behind
// Authenticate always have one.
func viewer(c *gin.Context) (entities.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		respondError(c, errUnauthorized)
	}
	return identity, ok
}
