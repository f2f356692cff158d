package v1

import (
	"net/http"

	"go-movie-community-backend/internal/delivery/http/response"
	"go-movie-community-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	communityUC domain.CommunityUsecase
}

func NewCommunityHandler(protected *gin.RouterGroup, communityUC domain.CommunityUsecase) {
	handler := &CommunityHandler{communityUC: communityUC}

	community := protected.Group("/community")
	{
		community.GET("", handler.Discover)
		community.GET("/:id/compatibility", handler.Compatibility)
	}
}

// Discover godoc
// @Summary      Discover community members
// @Description  Other members with their compatibility against the caller, filtered, sorted and paginated
// @Tags         community
// @Produce      json
// @Security     BearerAuth
// @Param        search             query     string  false  "Name, genre or rated movie title"
// @Param        genres             query     []string  false  "Genres (repeated or comma separated)"
// @Param        min_compatibility  query     int     false  "Minimum compatibility (0-100)"
// @Param        min_ratings        query     int     false  "Minimum number of ratings"
// @Param        sort               query     string  false  "compatibility | ratingCount | recency"
// @Param        page               query     int     false  "Page number"
// @Param        page_size          query     int     false  "Items per page (default 6)"
// @Success      200                {object}  response.Response
// @Failure      400                {object}  response.Response
// @Router       /community [get]
func (h *CommunityHandler) Discover(c *gin.Context) {
	query := domain.DiscoveryQuery{
		Search:           c.Query("search"),
		Genres:           queryList(c, "genres"),
		MinCompatibility: queryInt(c, "min_compatibility", 0),
		MinRatings:       queryInt(c, "min_ratings", 0),
		Sort:             domain.SortKey(c.Query("sort")),
		Page:             queryInt(c, "page", 1),
		PageSize:         queryInt(c, "page_size", 0),
	}

	page, err := h.communityUC.Discover(c.Request.Context(), query)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Community members", page)
}

// Compatibility godoc
// @Summary      Compatibility breakdown
// @Tags         community
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Member ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /community/{id}/compatibility [get]
func (h *CommunityHandler) Compatibility(c *gin.Context) {
	score, err := h.communityUC.Compatibility(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Compatibility", score)
}
