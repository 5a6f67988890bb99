package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-catalog-api/internal/service"
)

// MovieHandler handles HTTP requests for movie search and detail.
type MovieHandler struct {
	svc *service.CatalogService
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc *service.CatalogService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

// SearchMovies returns a paginated page of movies.
// @Summary Search movies
// @Tags movies
// @Produce json
// @Param title query string false "Title substring filter"
// @Param year query string false "Exact release year (yyyy)"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} models.MovieSearchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/search [get]
func (h *MovieHandler) SearchMovies(c fiber.Ctx) error {
	result, err := h.svc.SearchMovies(c.Query("title"), c.Query("year"), c.Query("page"))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(result)
}

// GetMovie returns the aggregated detail document for one movie.
// The endpoint contract is parameter-free; any query parameter is
// rejected before the store is touched.
// @Summary Get movie detail
// @Tags movies
// @Produce json
// @Param imdbID path string true "IMDb identifier"
// @Success 200 {object} models.MovieDetail
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/data/{imdbID} [get]
func (h *MovieHandler) GetMovie(c fiber.Ctx) error {
	if msg, stray := strayQueryParams(c); stray {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: msg})
	}

	detail, err := h.svc.GetMovieDetail(c.Params("imdbID"))
	if err != nil {
		return respondError(c, err, "No record exists of a movie with this ID")
	}
	return c.JSON(detail)
}
