package models

// MovieFilter holds the search filters applied to the movies table.
// Year is kept as the validated 4-digit string from the request.
type MovieFilter struct {
	Title string
	Year  string
}

// MovieSearchRow is a raw search result row from the catalog store.
// The rating columns keep their stored text form; casting to numbers
// happens in the service layer.
type MovieSearchRow struct {
	ImdbID               string
	Title                string
	Year                 *int
	ImdbRating           *string
	RottenTomatoesRating *string
	MetacriticRating     *string
	Classification       *string
}

// MovieSearchResult is one entry in the search response.
type MovieSearchResult struct {
	Title                string   `json:"title"`
	Year                 *int     `json:"year"`
	ImdbID               string   `json:"imdbID"`
	ImdbRating           *float64 `json:"imdbRating"`
	RottenTomatoesRating *int     `json:"rottenTomatoesRating"`
	MetacriticRating     *int     `json:"metacriticRating"`
	Classification       *string  `json:"classification"`
}

// Pagination describes the window of a search response.
type Pagination struct {
	Total       int  `json:"total"`
	LastPage    int  `json:"lastPage"`
	PerPage     int  `json:"perPage"`
	CurrentPage int  `json:"currentPage"`
	From        int  `json:"from"`
	To          int  `json:"to"`
	PrevPage    *int `json:"prevPage"`
	NextPage    *int `json:"nextPage"`
}

// MovieSearchResponse is the paginated search response.
type MovieSearchResponse struct {
	Data       []MovieSearchResult `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

// MovieRow is the raw movie record from the catalog store. Genres is
// the comma-delimited string as stored.
type MovieRow struct {
	Title          string
	Year           *int
	RuntimeMinutes *int
	Genres         string
	Country        *string
	Plot           *string
	Poster         *string
	BoxOffice      *string
}

// RatingRow is a raw rating record. Value is heterogeneous text:
// a bare number, "N/M", "N%", or something non-numeric entirely.
type RatingRow struct {
	Source string
	Value  string
}

// MovieCreditRow is a principal joined with the person's name.
// Characters is the raw JSON text column, nil when absent.
type MovieCreditRow struct {
	PersonID   string
	Name       string
	Category   string
	Characters *string
	Ordering   int
}

// Principal is one credited person in a movie detail response.
type Principal struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Characters []string `json:"characters"`
}

// RatingEntry is one normalized rating in a movie detail response.
// Value is a float64 when the stored text was numeric-coercible,
// otherwise the original string.
type RatingEntry struct {
	Source string `json:"source"`
	Value  any    `json:"value"`
}

// MovieDetail is the aggregated movie detail response.
type MovieDetail struct {
	Title      string        `json:"title"`
	Year       *int          `json:"year"`
	Runtime    *int          `json:"runtime"`
	Genres     []string      `json:"genres"`
	Country    *string       `json:"country"`
	Principals []Principal   `json:"principals"`
	Ratings    []RatingEntry `json:"ratings"`
	BoxOffice  *string       `json:"boxoffice"`
	Plot       *string       `json:"plot"`
	Poster     *string       `json:"poster"`
}
