package v1

import (
	"io"
	"net/http"
	"strconv"

	"go-movie-community-backend/internal/delivery/http/middleware"
	"go-movie-community-backend/internal/delivery/http/response"
	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/pkg/apperror"
	"go-movie-community-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// Posters larger than this are rejected before decoding.
const maxPosterBytes = 8 << 20

type MovieHandler struct {
	movieUC  domain.MovieUsecase
	ratingUC domain.RatingUsecase
	quota    *security.UploadQuota
}

// NewMovieHandler registers the catalogue. quota may be nil.
func NewMovieHandler(public *gin.RouterGroup, protected *gin.RouterGroup, movieUC domain.MovieUsecase, ratingUC domain.RatingUsecase, quota *security.UploadQuota) {
	handler := &MovieHandler{movieUC: movieUC, ratingUC: ratingUC, quota: quota}

	movies := public.Group("/movies")
	{
		movies.GET("", handler.ListMovies)
		movies.GET("/:id", handler.GetMovie)
		movies.GET("/:id/ratings", handler.ListRatings)
	}

	admin := protected.Group("/movies")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("", handler.CreateMovie)
		admin.PUT("/:id", handler.UpdateMovie)
		admin.DELETE("/:id", handler.DeleteMovie)
		admin.POST("/:id/poster", handler.UploadPoster)
	}
}

// ListMovies godoc
// @Summary      List movies
// @Tags         movies
// @Produce      json
// @Param        search     query     string  false  "Title search"
// @Param        genre      query     string  false  "Genre"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Items per page"
// @Success      200        {object}  response.Response
// @Router       /movies [get]
func (h *MovieHandler) ListMovies(c *gin.Context) {
	result, err := h.movieUC.ListMovies(c.Request.Context(), domain.MovieFilter{
		Search:   c.Query("search"),
		Genre:    c.Query("genre"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 0),
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Movies list", result)
}

// GetMovie godoc
// @Summary      Movie details
// @Tags         movies
// @Produce      json
// @Param        id   path      string  true  "Movie ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /movies/{id} [get]
func (h *MovieHandler) GetMovie(c *gin.Context) {
	movie, err := h.movieUC.GetMovie(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Movie details", movie)
}

// ListRatings godoc
// @Summary      Ratings of a movie
// @Description  Newest first
// @Tags         movies
// @Produce      json
// @Param        id         path      string  true   "Movie ID"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Items per page"
// @Success      200        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /movies/{id}/ratings [get]
func (h *MovieHandler) ListRatings(c *gin.Context) {
	result, err := h.ratingUC.ListMovieRatings(c.Request.Context(), c.Param("id"), queryInt(c, "page", 1), queryInt(c, "page_size", 0))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Movie ratings", result)
}

// CreateMovie godoc
// @Summary      Create movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        movie  body      domain.MovieRequest  true  "Movie"
// @Success      201    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /movies [post]
func (h *MovieHandler) CreateMovie(c *gin.Context) {
	var req domain.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	movie, err := h.movieUC.CreateMovie(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Movie created", movie)
}

// UpdateMovie godoc
// @Summary      Update movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string               true  "Movie ID"
// @Param        movie  body      domain.MovieRequest  true  "Movie"
// @Success      200    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /movies/{id} [put]
func (h *MovieHandler) UpdateMovie(c *gin.Context) {
	var req domain.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	movie, err := h.movieUC.UpdateMovie(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Movie updated", movie)
}

// DeleteMovie godoc
// @Summary      Delete movie
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Movie ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(c *gin.Context) {
	if err := h.movieUC.DeleteMovie(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Movie deleted", nil)
}

// UploadPoster godoc
// @Summary      Upload poster
// @Description  JPEG or PNG, resized and stored as JPEG
// @Tags         movies
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Movie ID"
// @Param        poster  formData  file    true  "Poster image"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      429     {object}  response.Response
// @Failure      503     {object}  response.Response
// @Router       /movies/{id}/poster [post]
func (h *MovieHandler) UploadPoster(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	allowed, retryAfter, err := h.quota.Allow(c.Request.Context(), userID)
	if err != nil {
		c.Error(apperror.ServiceUnavailable("Upload quota unavailable. Please try again."))
		return
	}
	if !allowed {
		security.DefaultLogger().LogAccessDenied(c.Request.Context(), security.EventUploadRejected,
			userID, c.ClientIP(), c.GetString("RequestID"), c.FullPath(), "daily poster upload quota reached")
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.Error(apperror.TooManyRequests("Daily poster upload limit reached"))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPosterBytes+1<<20)

	file, header, err := c.Request.FormFile("poster")
	if err != nil {
		c.Error(apperror.BadRequest("poster file is required"))
		return
	}
	defer file.Close()

	if header.Size > maxPosterBytes {
		c.Error(apperror.BadRequest("Poster must be 8MB or smaller"))
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, maxPosterBytes+1))
	if err != nil || len(data) > maxPosterBytes {
		c.Error(apperror.BadRequest("Poster must be 8MB or smaller"))
		return
	}

	if _, reason := security.ValidateImage(header.Filename, data); reason != "" {
		security.DefaultLogger().LogAccessDenied(c.Request.Context(), security.EventUploadRejected,
			userID, c.ClientIP(), c.GetString("RequestID"), c.FullPath(), reason)
		c.Error(apperror.BadRequest(reason))
		return
	}

	movie, err := h.movieUC.UploadPoster(c.Request.Context(), c.Param("id"), data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Poster uploaded", movie)
}
