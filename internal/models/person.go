package models

// PersonRow is the raw person record from the catalog store.
type PersonRow struct {
	Name              string
	BirthYear         *int
	DeathYear         *int
	PrimaryProfession *string
}

// PersonCreditRow is a principal joined with the movie's title and
// its IMDb rating text.
type PersonCreditRow struct {
	MovieID    string
	MovieTitle string
	ImdbRating *string
	Category   string
	Characters *string
}

// PersonRole is one film credit in a person detail response.
type PersonRole struct {
	MovieName  string   `json:"movieName"`
	MovieID    string   `json:"movieId"`
	Category   string   `json:"category"`
	Characters []string `json:"characters"`
	ImdbRating *float64 `json:"imdbRating"`
}

// PersonDetail is the aggregated person detail response.
type PersonDetail struct {
	Name      string       `json:"name"`
	BirthYear *int         `json:"birthYear"`
	DeathYear *int         `json:"deathYear"`
	Roles     []PersonRole `json:"roles"`
}
