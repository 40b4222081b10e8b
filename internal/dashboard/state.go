package dashboard

import (
	"github.com/Clark-Hu/movie-space/internal/domain"
)

// State is a point-in-time copy of the dashboard.
type State struct {
	View                View                  `json:"view"`
	SettingsOpen        bool                  `json:"settingsOpen"`
	CredentialAvailable bool                  `json:"credentialAvailable"`
	HomeLoading         bool                  `json:"homeLoading"`
	Featured            *domain.MovieSummary  `json:"featured,omitempty"`
	Home                HomeCollections       `json:"home"`
	Query               string                `json:"query"`
	ResultsFor          string                `json:"resultsFor"`
	Discovering         bool                  `json:"discovering"`
	Results             []domain.MovieSummary `json:"results"`
	SearchLoading       bool                  `json:"searchLoading"`
	Filter              domain.FilterCriteria `json:"filter"`
	SelectedID          int                   `json:"selectedId,omitempty"`
	Detail              *domain.MovieDetail   `json:"detail,omitempty"`
	DetailLoading       bool                  `json:"detailLoading"`
	Bookmarks           []domain.MovieSummary `json:"bookmarks"`
	History             []domain.MovieSummary `json:"history"`
	Compare             []domain.MovieSummary `json:"compare"`
	CompareOpen         bool                  `json:"compareOpen"`
}

// Snapshot returns a copy of the current state. Slices are copied; the
// detail record is shared but never mutated after it is stored.
func (d *Dashboard) Snapshot() State {
	available := d.credentials.Available()

	d.mu.Lock()
	defer d.mu.Unlock()

	s := State{
		View:                d.view,
		SettingsOpen:        d.settingsOpen,
		CredentialAvailable: available,
		HomeLoading:         d.homeLoading,
		Home: HomeCollections{
			Trending:  copyMovies(d.home.Trending),
			Hindi:     copyMovies(d.home.Hindi),
			Anime:     copyMovies(d.home.Anime),
			TopRated:  copyMovies(d.home.TopRated),
			Thriller:  copyMovies(d.home.Thriller),
			HighRated: copyMovies(d.home.HighRated),
		},
		Query:         d.query,
		ResultsFor:    d.resultsFor,
		Discovering:   d.discovering,
		Results:       copyMovies(d.results),
		SearchLoading: d.searchLoading,
		Filter:        d.filter,
		SelectedID:    d.selectedID,
		Detail:        d.detail,
		DetailLoading: d.detailLoading,
		Bookmarks:     d.bookmarks.Items(),
		History:       d.history.Items(),
		Compare:       d.compare.Items(),
		CompareOpen:   d.compareOpen,
	}
	if d.featured != nil {
		featured := *d.featured
		s.Featured = &featured
	}
	return s
}

func copyMovies(items []domain.MovieSummary) []domain.MovieSummary {
	out := make([]domain.MovieSummary, len(items))
	copy(out, items)
	return out
}
