package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"ruedo-cms/helper"
	"ruedo-cms/models"
	"ruedo-cms/repositories"
	"ruedo-cms/services"
)

const principalKey = "principal"

type Authenticator struct {
	tokens   services.TokenService
	userRepo repositories.UserRepository
	Helper   *helper.HTTPHelper
}

func NewAuthenticator(tokens services.TokenService, userRepo repositories.UserRepository, h *helper.HTTPHelper) *Authenticator {
	return &Authenticator{tokens: tokens, userRepo: userRepo, Helper: h}
}

// AuthMiddleware resolves the bearer token, when one is sent, into the
// principal for this request. The user row is read on every request so role
// and active flag changes apply immediately. Requests without a token pass
// through as anonymous; a bad token is rejected even on public routes.
func (a *Authenticator) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			a.Helper.SendUnauthorizedError(c, models.MsgInvalidToken, a.Helper.EmptyJsonMap())
			c.Abort()
			return
		}

		claims, err := a.tokens.ParseAccess(tokenString)
		if err != nil {
			a.Helper.SendErrorFrom(c, err)
			c.Abort()
			return
		}

		user, err := a.userRepo.GetByID(claims.UserID)
		if err != nil {
			a.Helper.SendUnauthorizedError(c, models.MsgInvalidToken, a.Helper.EmptyJsonMap())
			c.Abort()
			return
		}
		if !user.IsActive {
			a.Helper.SendForbiddenError(c, models.MsgInactiveAccount, a.Helper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set(principalKey, user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests. It must run after AuthMiddleware.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			a.Helper.SendUnauthorizedError(c, models.MsgAuthenticationRequired, a.Helper.EmptyJsonMap())
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated principal, nil for anonymous callers.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
