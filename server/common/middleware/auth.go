package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	commonauth "lodging_server/server/common/auth"
	"lodging_server/server/common/transport/httpresp"
)

type tokenVerifier interface {
	ParseBearer(credential string) (*commonauth.Claims, error)
}

// Authorize gates a route on a set of acceptable roles. The credential is
// the request's `token` field ("Bearer <jwt>"), not a transport header;
// the Authorization header is accepted as a fallback for plain HTTP
// clients. Missing or unverifiable tokens fail closed with 401 before the
// handler runs; a valid token whose role claim does not intersect the
// required set fails with 403. The request itself is never mutated.
func Authorize(auth tokenVerifier, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := c.Query("token")
		if credential == "" {
			credential = c.GetHeader("Authorization")
		}

		claims, err := auth.ParseBearer(credential)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpresp.NewErrorResponse(messageFor(err)))
			return
		}
		if !claims.Roles.ContainsAny(requiredRoles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, httpresp.NewErrorResponse(httpresp.ErrInsufficientRole))
			return
		}
		c.Next()
	}
}

func messageFor(err error) string {
	switch err {
	case commonauth.ErrMissingToken:
		return httpresp.ErrMissingToken
	case commonauth.ErrMalformedToken:
		return httpresp.ErrMalformedToken
	default:
		return httpresp.ErrInvalidToken
	}
}
