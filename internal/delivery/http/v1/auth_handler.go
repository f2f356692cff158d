package v1

import (
	"net/http"

	"go-movie-community-backend/internal/delivery/http/middleware"
	"go-movie-community-backend/internal/delivery/http/response"
	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler registers /auth/sync on a token-only group (the local account
// may not exist yet) and /auth/me on the fully authenticated group.
func NewAuthHandler(tokenOnly *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	tokenOnly.POST("/auth/sync", handler.SyncProfile)
	protected.GET("/auth/me", handler.Me)
}

// SyncProfile godoc
// @Summary      Sync user profile
// @Description  Creates the local account for the token subject on first sign-in. Idempotent.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /auth/sync [post]
func (h *AuthHandler) SyncProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	if userID == "" {
		c.Error(apperror.Unauthorized("User ID not found in context"))
		return
	}

	user := &domain.User{
		ID:       userID,
		Email:    c.GetString(string(domain.KeyUserEmail)),
		Name:     c.GetString(middleware.KeyTokenName),
		PhotoURL: c.GetString(middleware.KeyTokenPicture),
	}
	if err := h.authUC.EnsureUserExists(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}
	if user.IsDisabled {
		c.Error(apperror.Forbidden("Account disabled"))
		return
	}

	response.Success(c, http.StatusOK, "Profile synced", user)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current user", user)
}
