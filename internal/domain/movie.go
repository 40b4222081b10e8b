package domain

import "strings"

// MovieSummary is the list-level record returned by every catalog listing.
// Image paths are opaque upstream paths; an empty string means absent.
type MovieSummary struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int   `json:"genre_ids"`
	Adult            bool    `json:"adult"`
}

// Year returns the four digit release year, or "" when the date is unknown.
func (m MovieSummary) Year() string {
	year, _, _ := strings.Cut(m.ReleaseDate, "-")
	if len(year) != 4 {
		return ""
	}
	return year
}

// Genre is an upstream genre identifier with its display name.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Company is a production company credited on a movie.
type Company struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	LogoPath string `json:"logo_path,omitempty"`
}

// CastMember is one billed actor, in billing order.
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// CrewMember is one credited crew member.
type CrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Video is a hosted clip attached to a movie (trailers, teasers).
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// MovieDetail is the full record shown on the detail view. It is fetched on
// demand and never cached past the open detail.
type MovieDetail struct {
	MovieSummary

	Genres              []Genre        `json:"genres"`
	Runtime             int            `json:"runtime"`
	Budget              int64          `json:"budget"`
	Revenue             int64          `json:"revenue"`
	Status              string         `json:"status"`
	Tagline             string         `json:"tagline"`
	ProductionCompanies []Company      `json:"production_companies"`
	Homepage            string         `json:"homepage,omitempty"`
	Cast                []CastMember   `json:"cast"`
	Crew                []CrewMember   `json:"crew"`
	Similar             []MovieSummary `json:"similar"`
	Videos              []Video        `json:"videos"`
}

// Summary returns the list-level view of the detail record.
func (d MovieDetail) Summary() MovieSummary {
	s := d.MovieSummary
	if len(s.GenreIDs) == 0 && len(d.Genres) > 0 {
		s.GenreIDs = make([]int, 0, len(d.Genres))
		for _, g := range d.Genres {
			s.GenreIDs = append(s.GenreIDs, g.ID)
		}
	}
	return s
}

// Trailer returns the first YouTube trailer, falling back to any YouTube clip.
func (d MovieDetail) Trailer() (Video, bool) {
	var fallback *Video
	for i := range d.Videos {
		v := d.Videos[i]
		if !strings.EqualFold(v.Site, "YouTube") {
			continue
		}
		if strings.EqualFold(v.Type, "Trailer") {
			return v, true
		}
		if fallback == nil {
			fallback = &d.Videos[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Video{}, false
}

// Directors lists crew members credited with the Director job.
func (d MovieDetail) Directors() []CrewMember {
	var out []CrewMember
	for _, c := range d.Crew {
		if c.Job == "Director" {
			out = append(out, c)
		}
	}
	return out
}
