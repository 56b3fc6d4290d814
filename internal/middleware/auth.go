package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/it-institute-cms/internal/auth"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
	"github.com/noah-isme/it-institute-cms/pkg/response"
)

// ContextUserKey is the gin context key storing verified token claims.
const ContextUserKey = "currentUser"

// ContextSessionAuthKey is set when JWT authenticated through the session
// cookie instead of a bearer header.
const ContextSessionAuthKey = "sessionAuth"

// TokenVerifier checks a signed token.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// JWT protects the CMS routes. A bearer header wins; without one the admin
// panel session cookie is accepted so panel operators can reuse the CMS API.
func JWT(tokens TokenVerifier, sessionCookie string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.TokenFromHeader(c.GetHeader("Authorization"))
		if err != nil && sessionCookie != "" {
			if cookie, cookieErr := c.Cookie(sessionCookie); cookieErr == nil {
				token, err = cookie, nil
				c.Set(ContextSessionAuthKey, true)
			}
		}
		if err != nil {
			response.Abort(c, appErrors.Clone(appErrors.ErrUnauthorized, "not authenticated"))
			return
		}
		authenticate(c, tokens, token)
	}
}

// AdminSession guards the panel routes with the session cookie only.
func AdminSession(tokens TokenVerifier, sessionCookie string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil || token == "" {
			response.Abort(c, appErrors.Clone(appErrors.ErrUnauthorized, "not authenticated"))
			return
		}
		authenticate(c, tokens, token)
	}
}

func authenticate(c *gin.Context, tokens TokenVerifier, token string) {
	claims, err := tokens.Verify(token)
	if err != nil {
		response.Abort(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	c.Set(ContextUserKey, claims)
	c.Next()
}

// CurrentClaims returns the claims stored by JWT or AdminSession.
func CurrentClaims(c *gin.Context) *auth.Claims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*auth.Claims)
	return claims
}

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(c *gin.Context) (int64, bool) {
	claims := CurrentClaims(c)
	if claims == nil {
		return 0, false
	}
	id, err := claims.UserID()
	if err != nil {
		return 0, false
	}
	return id, true
}
