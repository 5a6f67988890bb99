package service

import (
	"reflect"
	"testing"

	"movie-catalog-api/internal/models"
)

func TestNormalizeRating(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{name: "percentage", raw: "85%", want: 85.0},
		{name: "fraction keeps numerator", raw: "7.5/10", want: 7.5},
		{name: "fraction out of 100", raw: "72/100", want: 72.0},
		{name: "bare integer", raw: "8", want: 8.0},
		{name: "bare decimal", raw: "6.4", want: 6.4},
		{name: "non numeric passes through", raw: "N/A", want: "N/A"},
		{name: "arbitrary text passes through", raw: "Universal Acclaim", want: "Universal Acclaim"},
		{name: "empty passes through", raw: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeRating(tt.raw)
			if got != tt.want {
				t.Errorf("normalizeRating(%q) = %v (%T), want %v (%T)", tt.raw, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestDecodeCharacters(t *testing.T) {
	jack := `["Jack","Rose"]`
	notJSON := "not json"
	object := `{"name":"Jack"}`
	nullLiteral := "null"
	empty := ""

	tests := []struct {
		name string
		raw  *string
		want []string
	}{
		{name: "nil column", raw: nil, want: []string{}},
		{name: "empty string", raw: &empty, want: []string{}},
		{name: "malformed", raw: &notJSON, want: []string{}},
		{name: "wrong shape", raw: &object, want: []string{}},
		{name: "json null", raw: &nullLiteral, want: []string{}},
		{name: "valid array", raw: &jack, want: []string{"Jack", "Rose"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeCharacters(tt.raw)
			if got == nil {
				t.Fatal("decodeCharacters returned nil, want a non-nil list")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decodeCharacters = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankCredits(t *testing.T) {
	principals := []models.Principal{
		{ID: "nm1", Category: "actor"},
		{ID: "nm2", Category: "director"},
		{ID: "nm3", Category: "gaffer"},
		{ID: "nm4", Category: "producer"},
	}
	rankCredits(principals)

	// producer outranks director in the preference table.
	want := []string{"producer", "director", "actor", "gaffer"}
	for i, category := range want {
		if principals[i].Category != category {
			t.Fatalf("position %d = %q, want %q (full order: %+v)", i, principals[i].Category, category, principals)
		}
	}
}

func TestRankCreditsStableTies(t *testing.T) {
	// Two unranked categories and two actors: ties keep arrival order.
	principals := []models.Principal{
		{ID: "nm1", Category: "gaffer"},
		{ID: "nm2", Category: "actor"},
		{ID: "nm3", Category: "stunt_double"},
		{ID: "nm4", Category: "actor"},
	}
	rankCredits(principals)

	wantIDs := []string{"nm2", "nm4", "nm1", "nm3"}
	for i, id := range wantIDs {
		if principals[i].ID != id {
			t.Fatalf("position %d = %s, want %s (full order: %+v)", i, principals[i].ID, id, principals)
		}
	}
}

func TestPaginate(t *testing.T) {
	intp := func(n int) *int { return &n }

	tests := []struct {
		name     string
		total    int
		page     int
		returned int
		want     models.Pagination
	}{
		{
			name: "empty result set", total: 0, page: 1, returned: 0,
			want: models.Pagination{Total: 0, LastPage: 0, PerPage: 100, CurrentPage: 1, From: 0, To: 0},
		},
		{
			name: "first of three pages", total: 250, page: 1, returned: 100,
			want: models.Pagination{Total: 250, LastPage: 3, PerPage: 100, CurrentPage: 1, From: 0, To: 100, NextPage: intp(2)},
		},
		{
			name: "middle page", total: 250, page: 2, returned: 100,
			want: models.Pagination{Total: 250, LastPage: 3, PerPage: 100, CurrentPage: 2, From: 100, To: 200, PrevPage: intp(1), NextPage: intp(3)},
		},
		{
			name: "last partial page", total: 250, page: 3, returned: 50,
			want: models.Pagination{Total: 250, LastPage: 3, PerPage: 100, CurrentPage: 3, From: 200, To: 250, PrevPage: intp(2)},
		},
		{
			name: "page beyond last", total: 250, page: 5, returned: 0,
			want: models.Pagination{Total: 250, LastPage: 3, PerPage: 100, CurrentPage: 5, From: 400, To: 400, PrevPage: intp(4)},
		},
		{
			name: "exact multiple of page size", total: 200, page: 2, returned: 100,
			want: models.Pagination{Total: 200, LastPage: 2, PerPage: 100, CurrentPage: 2, From: 100, To: 200, PrevPage: intp(1)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paginate(tt.total, tt.page, tt.returned)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("paginate(%d, %d, %d) = %+v, want %+v", tt.total, tt.page, tt.returned, got, tt.want)
			}
			if got.To-got.From != tt.returned {
				t.Errorf("to-from = %d, want returned row count %d", got.To-got.From, tt.returned)
			}
		})
	}
}

func TestSplitGenres(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: []string{}},
		{name: "single", raw: "Drama", want: []string{"Drama"}},
		{name: "ordered list", raw: "Action,Adventure,Sci-Fi", want: []string{"Action", "Adventure", "Sci-Fi"}},
		{name: "empty segments dropped", raw: "Drama,,War", want: []string{"Drama", "War"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitGenres(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitGenres(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
