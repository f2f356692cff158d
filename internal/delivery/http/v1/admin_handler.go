package v1

import (
	"fmt"
	"net/http"
	"path"

	"go-movie-community-backend/internal/delivery/http/response"
	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

var exportContentTypes = map[string]string{
	".csv":  "text/csv; charset=utf-8",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

// NewAdminHandler expects protected to already require the admin role.
func NewAdminHandler(protected *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin := protected.Group("/admin")
	{
		// Dashboard stats
		admin.GET("/stats", handler.GetStats)

		// User management
		admin.GET("/users", handler.ListUsers)
		admin.PATCH("/users/:id/disable", handler.DisableUser)
		admin.PATCH("/users/:id/role", handler.UpdateRole)
		admin.DELETE("/users/:id", handler.DeleteUser)

		// Reports
		admin.GET("/export/ratings", handler.ExportRatings)
	}
}

// GetStats godoc
// @Summary      Get admin dashboard statistics
// @Description  Returns counts for users, movies and ratings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUC.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Dashboard statistics", stats)
}

// ListUsers godoc
// @Summary      List all users
// @Description  Returns paginated list of users with optional role filter
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role       query     string  false  "Filter by role (user, admin)"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Items per page"
// @Success      200        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	result, err := h.adminUC.ListUsers(c.Request.Context(), c.Query("role"), queryInt(c, "page", 1), queryInt(c, "page_size", 0))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users list", result)
}

// DisableUser godoc
// @Summary      Disable or enable a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true   "User ID"
// @Param        body     body      object  true   "{ disable: bool }"
// @Success      200      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /admin/users/{id}/disable [patch]
func (h *AdminHandler) DisableUser(c *gin.Context) {
	var body struct {
		Disable bool `json:"disable"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	user, err := h.adminUC.DisableUser(c.Request.Context(), c.Param("id"), body.Disable)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User updated", user)
}

// UpdateRole godoc
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "User ID"
// @Param        body  body      domain.UpdateRoleRequest  true  "Role"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /admin/users/{id}/role [patch]
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	var req domain.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("role must be user or admin"))
		return
	}

	user, err := h.adminUC.UpdateUserRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Role updated", user)
}

// DeleteUser godoc
// @Summary      Delete a user and their ratings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.adminUC.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted", nil)
}

// ExportRatings godoc
// @Summary      Export ratings
// @Tags         admin
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        format  query  string  false  "xlsx (default) or csv"
// @Success      200
// @Failure      400     {object}  response.Response
// @Router       /admin/export/ratings [get]
func (h *AdminHandler) ExportRatings(c *gin.Context) {
	data, filename, err := h.adminUC.ExportRatings(c.Request.Context(), c.Query("format"))
	if err != nil {
		c.Error(err)
		return
	}

	contentType, ok := exportContentTypes[path.Ext(filename)]
	if !ok {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
