package v1

import (
	"net/http"

	"go-movie-community-backend/internal/delivery/http/response"
	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	profileUC domain.ProfileUsecase
}

func NewUserHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &UserHandler{profileUC: profileUC}

	users := protected.Group("/users")
	{
		users.GET("/me", handler.GetMyProfile)
		users.PUT("/me", handler.UpdateMyProfile)
		users.GET("/:id", handler.GetPublicProfile)
	}
}

// GetMyProfile godoc
// @Summary      My profile
// @Description  Account, rated list, genre counts and top genres
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /users/me [get]
func (h *UserHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.profileUC.GetMyProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile", profile)
}

// UpdateMyProfile godoc
// @Summary      Update my profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        profile  body      domain.UpdateProfileRequest  true  "Profile"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /users/me [put]
func (h *UserHandler) UpdateMyProfile(c *gin.Context) {
	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	user, err := h.profileUC.UpdateMyProfile(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", user)
}

// GetPublicProfile godoc
// @Summary      Public profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [get]
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	profile, err := h.profileUC.GetPublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile", profile)
}
