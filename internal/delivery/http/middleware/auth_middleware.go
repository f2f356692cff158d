package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go-movie-community-backend/internal/delivery/http/response"
	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/pkg/apperror"
	"go-movie-community-backend/pkg/auth"
	"go-movie-community-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthCookieName carries the token for browser sessions.
const AuthCookieName = "auth_token"

// Gin context keys for the identity claims, set by TokenMiddleware.
const (
	KeyTokenName    = "TokenName"
	KeyTokenPicture = "TokenPicture"
)

// TokenVerifier turns a bearer token into an identity.
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// TokenMiddleware only verifies the token. It is used where the local
// account may not exist yet.
func TokenMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := verifyRequest(c, verifier)
		if !ok {
			return
		}
		c.Set(KeyTokenName, id.Name)
		c.Set(KeyTokenPicture, id.Picture)
		setUser(c, id.Subject, id.Email, "")
		c.Next()
	}
}

// AuthMiddleware verifies the token and loads the local account. The role
// always comes from the database, never from the token.
func AuthMiddleware(verifier TokenVerifier, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := verifyRequest(c, verifier)
		if !ok {
			return
		}

		user, err := authUC.GetCurrentUser(c.Request.Context(), id.Subject)
		if err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Code == http.StatusNotFound {
				response.Error(c, http.StatusUnauthorized, "User not registered. Call /v1/auth/sync first", nil)
			} else {
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
			c.Abort()
			return
		}

		if user.IsDisabled {
			logDenied(c, security.EventDisabledAccount, user.ID, "account disabled")
			response.Error(c, http.StatusForbidden, "Account disabled", nil)
			c.Abort()
			return
		}

		role := user.Role
		if role == "" {
			role = domain.RoleUser
		}
		setUser(c, user.ID, user.Email, role)
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(string(domain.KeyUserRole)) != domain.RoleAdmin {
			logDenied(c, security.EventForbiddenAccess, c.GetString(string(domain.KeyUserID)), "admin role required")
			response.Error(c, http.StatusForbidden, "Admin access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func verifyRequest(c *gin.Context, verifier TokenVerifier) (*auth.Identity, bool) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		logDenied(c, security.EventUnauthorizedAccess, "", "missing token")
		response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
		c.Abort()
		return nil, false
	}

	id, err := verifier.Verify(tokenString)
	if err != nil {
		logDenied(c, security.EventInvalidToken, "", err.Error())
		response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
		c.Abort()
		return nil, false
	}
	return id, true
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}

// setUser exposes the identity both to gin handlers and, through the
// request context, to usecases.
func setUser(c *gin.Context, id, email, role string) {
	c.Set(string(domain.KeyUserID), id)
	c.Set(string(domain.KeyUserEmail), email)
	c.Set(string(domain.KeyUserRole), role)
	c.Request = c.Request.WithContext(domain.WithUser(c.Request.Context(), id, email, role))
}

func logDenied(c *gin.Context, event security.EventType, userID, reason string) {
	security.DefaultLogger().LogAccessDenied(
		c.Request.Context(), event, userID, c.ClientIP(), c.GetString("RequestID"), c.FullPath(), reason,
	)
}
