package service

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"movie-catalog-api/internal/models"
)

const searchPageSize = 100

// Preferred display order for movie credits, most preferred first.
// Categories not listed sort after all ranked ones and keep their
// incoming relative order.
var creditOrder = []string{
	"production_designer",
	"editor",
	"cinematographer",
	"producer",
	"writer",
	"director",
	"actor",
	"actress",
}

const unrankedCredit = 999

var creditRank = buildCreditRank()

func buildCreditRank() map[string]int {
	ranks := make(map[string]int, len(creditOrder))
	for i, category := range creditOrder {
		ranks[category] = i
	}
	return ranks
}

// normalizeRating converts a stored rating text into a number where
// possible: the left side of "N/M", or "N%" with the percent sign
// stripped, or a bare number. Text that is not numeric-coercible is
// returned unchanged.
func normalizeRating(raw string) any {
	v := raw
	if i := strings.Index(v, "/"); i >= 0 {
		v = v[:i]
	}
	v = strings.TrimSuffix(v, "%")
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return raw
}

// decodeCharacters parses the characters column, expected to be a
// JSON array of strings. Null, empty, or malformed input yields an
// empty list; decode problems never surface as errors.
func decodeCharacters(raw *string) []string {
	if raw == nil || *raw == "" {
		return []string{}
	}
	var characters []string
	if err := json.Unmarshal([]byte(*raw), &characters); err != nil {
		return []string{}
	}
	if characters == nil {
		return []string{}
	}
	return characters
}

// rankCredits orders a movie's principals by the credit preference
// table. The sort is stable: ties, including two unranked categories,
// keep the order they arrived in.
func rankCredits(principals []models.Principal) {
	sort.SliceStable(principals, func(i, j int) bool {
		return categoryRank(principals[i].Category) < categoryRank(principals[j].Category)
	})
}

func categoryRank(category string) int {
	if rank, ok := creditRank[category]; ok {
		return rank
	}
	return unrankedCredit
}

// splitGenres explodes the stored comma-delimited genre string,
// dropping empty segments and preserving source order.
func splitGenres(raw string) []string {
	genres := []string{}
	for _, g := range strings.Split(raw, ",") {
		if g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

func pageOffset(page int) int {
	return (page - 1) * searchPageSize
}

// paginate derives the pagination block from the total row count, the
// requested page, and the number of rows actually returned.
func paginate(total, page, returned int) models.Pagination {
	offset := pageOffset(page)
	lastPage := 0
	if total > 0 {
		lastPage = (total + searchPageSize - 1) / searchPageSize
	}

	p := models.Pagination{
		Total:       total,
		LastPage:    lastPage,
		PerPage:     searchPageSize,
		CurrentPage: page,
		From:        offset,
		To:          offset + returned,
	}
	if page > 1 {
		prev := page - 1
		p.PrevPage = &prev
	}
	if page < lastPage {
		next := page + 1
		p.NextPage = &next
	}
	return p
}

// toFloat casts stored rating text to a number, or nil when the
// column was null or not numeric.
func toFloat(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	f, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// toInt is toFloat for whole-number rating scales.
func toInt(raw *string) *int {
	f := toFloat(raw)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
