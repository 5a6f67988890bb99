package service

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"movie-catalog-api/internal/models"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// CatalogStore is the read-side of the catalog. Implementations
// return sql.ErrNoRows from the single-row lookups when nothing
// matches.
type CatalogStore interface {
	FindMovies(filter models.MovieFilter, limit, offset int) ([]models.MovieSearchRow, error)
	CountMovies(filter models.MovieFilter) (int, error)
	FindMovieByID(imdbID string) (*models.MovieRow, error)
	FindRatingsByMovie(imdbID string) ([]models.RatingRow, error)
	FindCreditsByMovie(imdbID string) ([]models.MovieCreditRow, error)
	FindPersonByID(personID string) (*models.PersonRow, error)
	FindCreditsByPerson(personID string) ([]models.PersonCreditRow, error)
}

// CatalogService aggregates catalog rows into client-ready documents.
// It holds no state between requests and never caches.
type CatalogService struct {
	store CatalogStore
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// SearchMovies returns one fixed-size page of movies matching the
// optional title substring and exact year. Validation happens before
// any store access. The count and the page are two independent
// queries; see the pagination block for the resulting window.
func (s *CatalogService) SearchMovies(title, year, page string) (*models.MovieSearchResponse, error) {
	pageNum := 1
	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return nil, invalidArgument("Invalid page format. page must be a number.")
		}
		pageNum = n
	}
	if year != "" && !yearPattern.MatchString(year) {
		return nil, invalidArgument("Invalid year format. Format must be yyyy.")
	}

	filter := models.MovieFilter{Title: title, Year: year}

	total, err := s.store.CountMovies(filter)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	rows, err := s.store.FindMovies(filter, searchPageSize, pageOffset(pageNum))
	if err != nil {
		return nil, fmt.Errorf("find movies: %w", err)
	}

	data := make([]models.MovieSearchResult, 0, len(rows))
	for _, r := range rows {
		data = append(data, models.MovieSearchResult{
			Title:                r.Title,
			Year:                 r.Year,
			ImdbID:               r.ImdbID,
			ImdbRating:           toFloat(r.ImdbRating),
			RottenTomatoesRating: toInt(r.RottenTomatoesRating),
			MetacriticRating:     toInt(r.MetacriticRating),
			Classification:       r.Classification,
		})
	}

	return &models.MovieSearchResponse{
		Data:       data,
		Pagination: paginate(total, pageNum, len(rows)),
	}, nil
}

// GetMovieDetail aggregates a movie's core fields, all its ratings,
// and its credited persons into one document. Ratings are normalized,
// characters decoded, and credits ordered by category preference.
func (s *CatalogService) GetMovieDetail(imdbID string) (*models.MovieDetail, error) {
	movie, err := s.store.FindMovieByID(imdbID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}

	ratingRows, err := s.store.FindRatingsByMovie(imdbID)
	if err != nil {
		return nil, fmt.Errorf("find ratings: %w", err)
	}
	ratings := make([]models.RatingEntry, 0, len(ratingRows))
	for _, r := range ratingRows {
		ratings = append(ratings, models.RatingEntry{
			Source: r.Source,
			Value:  normalizeRating(r.Value),
		})
	}

	creditRows, err := s.store.FindCreditsByMovie(imdbID)
	if err != nil {
		return nil, fmt.Errorf("find credits: %w", err)
	}
	principals := make([]models.Principal, 0, len(creditRows))
	for _, c := range creditRows {
		principals = append(principals, models.Principal{
			ID:         c.PersonID,
			Name:       c.Name,
			Category:   c.Category,
			Characters: decodeCharacters(c.Characters),
		})
	}
	rankCredits(principals)

	return &models.MovieDetail{
		Title:      movie.Title,
		Year:       movie.Year,
		Runtime:    movie.RuntimeMinutes,
		Genres:     splitGenres(movie.Genres),
		Country:    movie.Country,
		Principals: principals,
		Ratings:    ratings,
		BoxOffice:  movie.BoxOffice,
		Plot:       movie.Plot,
		Poster:     movie.Poster,
	}, nil
}

// GetPersonDetail aggregates a person's core fields and their film
// credits. Credits stay in store order; category ranking is a
// movie-centric concept and is not applied here.
func (s *CatalogService) GetPersonDetail(personID string) (*models.PersonDetail, error) {
	person, err := s.store.FindPersonByID(personID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find person: %w", err)
	}

	creditRows, err := s.store.FindCreditsByPerson(personID)
	if err != nil {
		return nil, fmt.Errorf("find credits: %w", err)
	}
	roles := make([]models.PersonRole, 0, len(creditRows))
	for _, c := range creditRows {
		roles = append(roles, models.PersonRole{
			MovieName:  c.MovieTitle,
			MovieID:    c.MovieID,
			Category:   c.Category,
			Characters: decodeCharacters(c.Characters),
			ImdbRating: toFloat(c.ImdbRating),
		})
	}

	return &models.PersonDetail{
		Name:      person.Name,
		BirthYear: person.BirthYear,
		DeathYear: person.DeathYear,
		Roles:     roles,
	}, nil
}
