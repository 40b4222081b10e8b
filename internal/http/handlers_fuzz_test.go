package httpserver

import (
	"testing"
)

func FuzzBuildFilterChange(f *testing.F) {
	f.Add("popularity.desc", 7.0, 2010, 28)
	f.Add("", 0.0, 0, 0)
	f.Add("bogus", -1.0, 1200, -3)
	f.Add("revenue.desc", 10.5, 2101, 16)

	f.Fuzz(func(t *testing.T, sortBy string, minRating float64, year, genreID int) {
		change, err := buildFilterChange(filterRequest{
			SortBy:    &sortBy,
			MinRating: &minRating,
			Year:      &year,
			GenreID:   &genreID,
		})
		if err != nil {
			return
		}
		if change.MinRating == nil || *change.MinRating < 0 || *change.MinRating > 10 {
			t.Fatalf("accepted minRating %v", minRating)
		}
		if change.Year != nil && (*change.Year < minFilterYear || *change.Year > maxFilterYear) {
			t.Fatalf("accepted year %d", *change.Year)
		}
		if change.ClearYear != (year == 0) {
			t.Fatalf("ClearYear = %v for year %d", change.ClearYear, year)
		}
		if change.GenreID != nil && *change.GenreID <= 0 {
			t.Fatalf("accepted genre %d", *change.GenreID)
		}
	})
}

func FuzzParseMovieID(f *testing.F) {
	for _, seed := range []string{"27205", "0", "-1", "abc", " 12 ", ""} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		id, err := parseMovieID(raw)
		if err == nil && id <= 0 {
			t.Fatalf("parseMovieID(%q) = %d", raw, id)
		}
	})
}
