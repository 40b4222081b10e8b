package catalog

import (
	"strings"

	"github.com/Clark-Hu/movie-space/internal/domain"
)

type apiListResponse struct {
	Page    int        `json:"page"`
	Results []apiMovie `json:"results"`
}

type apiMovie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int   `json:"genre_ids"`
	Adult            bool    `json:"adult"`
}

type apiDetail struct {
	apiMovie

	Genres              []domain.Genre `json:"genres"`
	Runtime             *int           `json:"runtime"`
	Budget              int64          `json:"budget"`
	Revenue             int64          `json:"revenue"`
	Status              string         `json:"status"`
	Tagline             string         `json:"tagline"`
	Homepage            *string        `json:"homepage"`
	ProductionCompanies []struct {
		ID       int     `json:"id"`
		Name     string  `json:"name"`
		LogoPath *string `json:"logo_path"`
	} `json:"production_companies"`
	Credits struct {
		Cast []struct {
			ID          int     `json:"id"`
			Name        string  `json:"name"`
			Character   string  `json:"character"`
			ProfilePath *string `json:"profile_path"`
		} `json:"cast"`
		Crew []domain.CrewMember `json:"crew"`
	} `json:"credits"`
	Videos struct {
		Results []domain.Video `json:"results"`
	} `json:"videos"`
	Similar struct {
		Results []apiMovie `json:"results"`
	} `json:"similar"`
}

func convertList(results []apiMovie) []domain.MovieSummary {
	out := make([]domain.MovieSummary, 0, len(results))
	for _, m := range results {
		out = append(out, convertMovie(m))
	}
	return out
}

func convertMovie(m apiMovie) domain.MovieSummary {
	title := m.Title
	if title == "" {
		title = m.Name
	}
	genres := m.GenreIDs
	if genres == nil {
		genres = []int{}
	}
	return domain.MovieSummary{
		ID:               m.ID,
		Title:            title,
		Overview:         m.Overview,
		PosterPath:       deref(m.PosterPath),
		BackdropPath:     deref(m.BackdropPath),
		ReleaseDate:      m.ReleaseDate,
		VoteAverage:      clampRating(m.VoteAverage),
		VoteCount:        m.VoteCount,
		Popularity:       m.Popularity,
		OriginalLanguage: strings.ToLower(m.OriginalLanguage),
		GenreIDs:         genres,
		Adult:            m.Adult,
	}
}

func convertDetail(p apiDetail) domain.MovieDetail {
	detail := domain.MovieDetail{
		MovieSummary: convertMovie(p.apiMovie),
		Genres:       p.Genres,
		Budget:       p.Budget,
		Revenue:      p.Revenue,
		Status:       p.Status,
		Tagline:      p.Tagline,
		Homepage:     deref(p.Homepage),
		Crew:         p.Credits.Crew,
		Videos:       p.Videos.Results,
		Similar:      convertList(p.Similar.Results),
	}
	if p.Runtime != nil {
		detail.Runtime = *p.Runtime
	}
	if detail.Genres == nil {
		detail.Genres = []domain.Genre{}
	}
	if len(p.GenreIDs) == 0 {
		detail.GenreIDs = make([]int, 0, len(p.Genres))
		for _, g := range p.Genres {
			detail.GenreIDs = append(detail.GenreIDs, g.ID)
		}
	}

	detail.ProductionCompanies = make([]domain.Company, 0, len(p.ProductionCompanies))
	for _, pc := range p.ProductionCompanies {
		detail.ProductionCompanies = append(detail.ProductionCompanies, domain.Company{
			ID:       pc.ID,
			Name:     pc.Name,
			LogoPath: deref(pc.LogoPath),
		})
	}

	detail.Cast = make([]domain.CastMember, 0, len(p.Credits.Cast))
	for _, c := range p.Credits.Cast {
		detail.Cast = append(detail.Cast, domain.CastMember{
			ID:          c.ID,
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: deref(c.ProfilePath),
		})
	}
	if detail.Crew == nil {
		detail.Crew = []domain.CrewMember{}
	}
	if detail.Videos == nil {
		detail.Videos = []domain.Video{}
	}
	return detail
}

func clampRating(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 10:
		return 10
	default:
		return v
	}
}

func deref(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
