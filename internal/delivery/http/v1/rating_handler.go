package v1

import (
	"net/http"

	"go-movie-community-backend/internal/delivery/http/response"
	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingUC domain.RatingUsecase
}

func NewRatingHandler(protected *gin.RouterGroup, ratingUC domain.RatingUsecase) {
	handler := &RatingHandler{ratingUC: ratingUC}

	ratings := protected.Group("/ratings")
	{
		ratings.GET("/me", handler.ListMine)
		ratings.PUT("/:movieId", handler.Rate)
		ratings.DELETE("/:movieId", handler.Delete)
	}
}

// Rate godoc
// @Summary      Rate a movie
// @Description  Creates or replaces the caller's rating
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        movieId  path      string                  true  "Movie ID"
// @Param        rating   body      domain.RateMovieRequest true  "Rating"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /ratings/{movieId} [put]
func (h *RatingHandler) Rate(c *gin.Context) {
	var req domain.RateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	rating, err := h.ratingUC.RateMovie(c.Request.Context(), c.Param("movieId"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Rating saved", rating)
}

// Delete godoc
// @Summary      Remove a rating
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        movieId  path      string  true  "Movie ID"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /ratings/{movieId} [delete]
func (h *RatingHandler) Delete(c *gin.Context) {
	if err := h.ratingUC.DeleteRating(c.Request.Context(), c.Param("movieId")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Rating removed", nil)
}

// ListMine godoc
// @Summary      My ratings
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /ratings/me [get]
func (h *RatingHandler) ListMine(c *gin.Context) {
	ratings, err := h.ratingUC.ListMyRatings(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Rated movies", ratings)
}
