package repository

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"movie-catalog-api/internal/models"
)

// CatalogRepository handles read-side database operations for the
// movie catalog.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// movieFilterClause builds the WHERE clause shared by FindMovies and
// CountMovies. Title matching is pinned case-insensitive.
func movieFilterClause(filter models.MovieFilter) (string, []interface{}) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Title != "" {
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", argIdx))
		args = append(args, "%"+filter.Title+"%")
		argIdx++
	}
	if filter.Year != "" {
		year, _ := strconv.Atoi(filter.Year)
		conditions = append(conditions, fmt.Sprintf("year = $%d", argIdx))
		args = append(args, year)
	}

	return strings.Join(conditions, " AND "), args
}

// FindMovies returns one page of movies matching the filter, ordered
// by IMDb identifier so pagination stays deterministic.
func (r *CatalogRepository) FindMovies(filter models.MovieFilter, limit, offset int) ([]models.MovieSearchRow, error) {
	whereClause, args := movieFilterClause(filter)
	query := fmt.Sprintf(`
		SELECT imdb_id, title, year, imdb_rating, rotten_tomatoes_rating, metacritic_rating, rated
		FROM movies
		WHERE %s
		ORDER BY imdb_id ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("movie search query failed: %w", err)
	}
	defer rows.Close()

	result := make([]models.MovieSearchRow, 0)
	for rows.Next() {
		var row models.MovieSearchRow
		var year sql.NullInt64
		var imdb, rotten, metacritic, rated sql.NullString
		if err := rows.Scan(&row.ImdbID, &row.Title, &year, &imdb, &rotten, &metacritic, &rated); err != nil {
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		row.Year = nullInt(year)
		row.ImdbRating = nullString(imdb)
		row.RottenTomatoesRating = nullString(rotten)
		row.MetacriticRating = nullString(metacritic)
		row.Classification = nullString(rated)
		result = append(result, row)
	}
	return result, rows.Err()
}

// CountMovies returns the total row count for the filter, independent
// of pagination.
func (r *CatalogRepository) CountMovies(filter models.MovieFilter) (int, error) {
	whereClause, args := movieFilterClause(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM movies WHERE %s", whereClause)

	var total int
	if err := r.db.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("movie count query failed: %w", err)
	}
	return total, nil
}

// FindMovieByID returns one movie row, or sql.ErrNoRows.
func (r *CatalogRepository) FindMovieByID(imdbID string) (*models.MovieRow, error) {
	var movie models.MovieRow
	var year, runtime sql.NullInt64
	var genres, country, plot, poster, boxOffice sql.NullString

	err := r.db.QueryRow(`
		SELECT title, year, runtime_minutes, genres, country, plot, poster, box_office
		FROM movies
		WHERE imdb_id = $1
	`, imdbID).Scan(&movie.Title, &year, &runtime, &genres, &country, &plot, &poster, &boxOffice)
	if err != nil {
		return nil, err
	}

	movie.Year = nullInt(year)
	movie.RuntimeMinutes = nullInt(runtime)
	movie.Genres = genres.String
	movie.Country = nullString(country)
	movie.Plot = nullString(plot)
	movie.Poster = nullString(poster)
	movie.BoxOffice = nullString(boxOffice)
	return &movie, nil
}

// FindRatingsByMovie returns all rating rows for a movie.
func (r *CatalogRepository) FindRatingsByMovie(imdbID string) ([]models.RatingRow, error) {
	rows, err := r.db.Query(`
		SELECT source, COALESCE(value, '')
		FROM ratings
		WHERE imdb_id = $1
	`, imdbID)
	if err != nil {
		return nil, fmt.Errorf("ratings query failed: %w", err)
	}
	defer rows.Close()

	result := make([]models.RatingRow, 0)
	for rows.Next() {
		var row models.RatingRow
		if err := rows.Scan(&row.Source, &row.Value); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// FindCreditsByMovie returns a movie's principals joined with person
// names, in the canonical per-movie ordering.
func (r *CatalogRepository) FindCreditsByMovie(imdbID string) ([]models.MovieCreditRow, error) {
	rows, err := r.db.Query(`
		SELECT p.person_id, n.name, p.category, p.characters, p.ordering
		FROM principals p
		INNER JOIN people n ON n.person_id = p.person_id
		WHERE p.imdb_id = $1
		ORDER BY p.ordering ASC
	`, imdbID)
	if err != nil {
		return nil, fmt.Errorf("movie credits query failed: %w", err)
	}
	defer rows.Close()

	result := make([]models.MovieCreditRow, 0)
	for rows.Next() {
		var row models.MovieCreditRow
		var characters sql.NullString
		if err := rows.Scan(&row.PersonID, &row.Name, &row.Category, &characters, &row.Ordering); err != nil {
			return nil, fmt.Errorf("scan credit row: %w", err)
		}
		row.Characters = nullString(characters)
		result = append(result, row)
	}
	return result, rows.Err()
}

// FindPersonByID returns one person row, or sql.ErrNoRows.
func (r *CatalogRepository) FindPersonByID(personID string) (*models.PersonRow, error) {
	var person models.PersonRow
	var birthYear, deathYear sql.NullInt64
	var profession sql.NullString

	err := r.db.QueryRow(`
		SELECT name, birth_year, death_year, primary_profession
		FROM people
		WHERE person_id = $1
	`, personID).Scan(&person.Name, &birthYear, &deathYear, &profession)
	if err != nil {
		return nil, err
	}

	person.BirthYear = nullInt(birthYear)
	person.DeathYear = nullInt(deathYear)
	person.PrimaryProfession = nullString(profession)
	return &person, nil
}

// FindCreditsByPerson returns a person's credits joined with movie
// titles and the movie's IMDb rating.
func (r *CatalogRepository) FindCreditsByPerson(personID string) ([]models.PersonCreditRow, error) {
	rows, err := r.db.Query(`
		SELECT m.imdb_id, m.title, m.imdb_rating, p.category, p.characters
		FROM principals p
		INNER JOIN movies m ON m.imdb_id = p.imdb_id
		WHERE p.person_id = $1
	`, personID)
	if err != nil {
		return nil, fmt.Errorf("person credits query failed: %w", err)
	}
	defer rows.Close()

	result := make([]models.PersonCreditRow, 0)
	for rows.Next() {
		var row models.PersonCreditRow
		var rating, characters sql.NullString
		if err := rows.Scan(&row.MovieID, &row.MovieTitle, &rating, &row.Category, &characters); err != nil {
			return nil, fmt.Errorf("scan credit row: %w", err)
		}
		row.ImdbRating = nullString(rating)
		row.Characters = nullString(characters)
		result = append(result, row)
	}
	return result, rows.Err()
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
