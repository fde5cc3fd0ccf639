package middleware

import (
	"net/http"
	"strings"

	"estimador/internal/domain/entities"
	"estimador/internal/usecase"
	"estimador/pkg"

	"github.com/gin-gonic/gin"
)

const identityKey = "estimador.identity"

var (
	errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	errAccessDenied = pkg.NewDomainErrorSimple("ACCESS_DENIED", "Access denied", http.StatusForbidden)
)

// Authenticate resolves the bearer token into an identity and stores it in
// the gin context. Requests without a valid session stop here with 401.
func Authenticate(sessions usecase.ISessionUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		identity, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok || !identity.IsAdmin() {
			c.AbortWithStatusJSON(errAccessDenied.HTTPStatus, errAccessDenied.ToHTTPError())
			return
		}
		c.Next()
	}
}

func IdentityFromContext(c *gin.Context) (entities.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return entities.Identity{}, false
	}
	identity, ok := v.(entities.Identity)
	return identity, ok
}

// SetIdentity stores identity the way Authenticate does.
func SetIdentity(c *gin.Context, identity entities.Identity) {
	c.Set(identityKey, identity)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
