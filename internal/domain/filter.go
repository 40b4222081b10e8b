package domain

import "fmt"

// SortKey orders discovery results. Every key sorts descending.
type SortKey string

const (
	SortPopularity  SortKey = "popularity.desc"
	SortRating      SortKey = "vote_average.desc"
	SortRevenue     SortKey = "revenue.desc"
	SortReleaseDate SortKey = "primary_release_date.desc"
)

// SortKeys lists the accepted sort keys in display order.
var SortKeys = []SortKey{SortPopularity, SortRating, SortRevenue, SortReleaseDate}

// ParseSortKey validates a raw sort value. The empty string maps to popularity.
func ParseSortKey(raw string) (SortKey, error) {
	if raw == "" {
		return SortPopularity, nil
	}
	for _, k := range SortKeys {
		if string(k) == raw {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", raw)
}

// FilterCriteria accumulates the discovery filters chosen by the user.
type FilterCriteria struct {
	SortBy    SortKey `json:"sortBy"`
	MinRating float64 `json:"minRating"`
	Year      *int    `json:"year,omitempty"`
	GenreID   *int    `json:"genreId,omitempty"`
}

// Sort returns the effective sort key, defaulting to popularity.
func (c FilterCriteria) Sort() SortKey {
	if c.SortBy == "" {
		return SortPopularity
	}
	return c.SortBy
}

// FilterChange is a partial update merged into FilterCriteria. Nil fields are
// left untouched; ClearYear and ClearGenre drop the optional filters.
type FilterChange struct {
	SortBy     *SortKey
	MinRating  *float64
	Year       *int
	GenreID    *int
	ClearYear  bool
	ClearGenre bool
}

// Apply returns a copy of c with the change merged in.
func (c FilterCriteria) Apply(ch FilterChange) FilterCriteria {
	out := c
	if ch.SortBy != nil {
		out.SortBy = *ch.SortBy
	}
	if ch.MinRating != nil {
		out.MinRating = *ch.MinRating
	}
	if ch.ClearYear {
		out.Year = nil
	} else if ch.Year != nil {
		y := *ch.Year
		out.Year = &y
	}
	if ch.ClearGenre {
		out.GenreID = nil
	} else if ch.GenreID != nil {
		g := *ch.GenreID
		out.GenreID = &g
	}
	return out
}
