package auth

import (
	"errors"
	"net/http"

	"github.com/emrgen/wiki/internal/model"
	"github.com/emrgen/wiki/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	userContextKey = "wiki.user"

	MsgNotAuthenticated = "Authentication credentials were not provided."
	MsgInvalidBasicAuth = "Invalid username/password."
)

// RequireUser rejects requests outside the policy's public paths unless they
// carry HTTP Basic credentials or a session of an active user.
func RequireUser(policy *Policy, sessions *Sessions, authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if policy.Public(c.Request.URL.Path) {
			c.Next()
			return
		}

		if username, password, ok := c.Request.BasicAuth(); ok {
			user, err := authService.Authenticate(c.Request.Context(), username, password)
			if err != nil {
				if !errors.Is(err, service.ErrInvalidCredentials) {
					logrus.Errorf("basic auth for %s failed: %v", username, err)
				}
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": MsgInvalidBasicAuth})
				return
			}
			SetCurrentUser(c, user)
			c.Next()
			return
		}

		if id, ok := sessions.UserID(c.Request); ok {
			user, err := authService.ActiveUser(c.Request.Context(), id)
			if err == nil {
				SetCurrentUser(c, user)
				c.Next()
				return
			}
			if !errors.Is(err, service.ErrInvalidCredentials) {
				logrus.Errorf("loading session user %d failed: %v", id, err)
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": MsgNotAuthenticated})
	}
}

// CurrentUser returns the user authenticated by RequireUser, or nil.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}

	user, _ := v.(*model.User)
	return user
}

// SetCurrentUser marks the request as made by user.
func SetCurrentUser(c *gin.Context, user *model.User) {
	c.Set(userContextKey, user)
}
