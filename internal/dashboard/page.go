package dashboard

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/Clark-Hu/movie-space/internal/catalog"
	"github.com/Clark-Hu/movie-space/internal/domain"
)

const (
	castLimit       = 10
	similarTitle    = "You might also like"
	youtubeWatchURL = "https://www.youtube.com/watch?v="
)

// Page is the rendered view model for the current state.
type Page struct {
	View          View                  `json:"view"`
	SettingsOpen  bool                  `json:"settingsOpen"`
	CredentialSet bool                  `json:"credentialSet"`
	Loading       bool                  `json:"loading"`
	Query         string                `json:"query"`
	Hero          *Hero                 `json:"hero,omitempty"`
	Sections      []Section             `json:"sections,omitempty"`
	Grid          *Grid                 `json:"grid,omitempty"`
	Detail        *DetailPage           `json:"detail,omitempty"`
	Compare       ComparePage           `json:"compare"`
	SortOptions   []SortOption          `json:"sortOptions,omitempty"`
	Filter        domain.FilterCriteria `json:"filter"`
}

// Card is one movie tile.
type Card struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Year       string  `json:"year,omitempty"`
	Rating     float64 `json:"rating"`
	PosterURL  string  `json:"posterUrl"`
	Bookmarked bool    `json:"bookmarked"`
}

// Section is a titled horizontal row of cards.
type Section struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// Hero is the featured spotlight on the home view.
type Hero struct {
	ID          int     `json:"id"`
	Label       string  `json:"label"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	BackdropURL string  `json:"backdropUrl"`
	Rating      float64 `json:"rating"`
	Year        string  `json:"year,omitempty"`
	Bookmarked  bool    `json:"bookmarked"`
}

// Grid is a titled result grid for search, bookmarks and history.
type Grid struct {
	Title   string `json:"title"`
	Loading bool   `json:"loading"`
	Empty   bool   `json:"empty"`
	Cards   []Card `json:"cards"`
}

// DetailPage is the rendered detail view. It is nil-safe: a missing record
// renders as Loading or Empty.
type DetailPage struct {
	Loading          bool       `json:"loading"`
	Empty            bool       `json:"empty"`
	ID               int        `json:"id,omitempty"`
	Title            string     `json:"title,omitempty"`
	Tagline          string     `json:"tagline,omitempty"`
	Overview         string     `json:"overview,omitempty"`
	PosterURL        string     `json:"posterUrl,omitempty"`
	BackdropURL      string     `json:"backdropUrl,omitempty"`
	Year             string     `json:"year,omitempty"`
	Runtime          string     `json:"runtime,omitempty"`
	Rating           float64    `json:"rating,omitempty"`
	VoteCount        int        `json:"voteCount,omitempty"`
	Genres           []string   `json:"genres,omitempty"`
	Status           string     `json:"status,omitempty"`
	OriginalLanguage string     `json:"originalLanguage,omitempty"`
	Budget           string     `json:"budget,omitempty"`
	Revenue          string     `json:"revenue,omitempty"`
	Homepage         string     `json:"homepage,omitempty"`
	TrailerURL       string     `json:"trailerUrl,omitempty"`
	Directors        []string   `json:"directors,omitempty"`
	Companies        []string   `json:"companies,omitempty"`
	Cast             []CastCard `json:"cast,omitempty"`
	Similar          *Section   `json:"similar,omitempty"`
	Bookmarked       bool       `json:"bookmarked"`
	Comparing        bool       `json:"comparing"`
}

// CastCard is one billed actor on the detail view.
type CastCard struct {
	Name       string `json:"name"`
	Character  string `json:"character"`
	ProfileURL string `json:"profileUrl"`
}

// ComparePage is the side-by-side panel. It always has two slots; unfilled
// slots are Empty.
type ComparePage struct {
	Open  bool          `json:"open"`
	Count int           `json:"count"`
	Slots []CompareSlot `json:"slots"`
}

// CompareSlot is one column of the comparison panel.
type CompareSlot struct {
	Empty       bool    `json:"empty"`
	ID          int     `json:"id,omitempty"`
	Title       string  `json:"title,omitempty"`
	PosterURL   string  `json:"posterUrl,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	Popularity  int64   `json:"popularity,omitempty"`
	Overview    string  `json:"overview,omitempty"`
	Language    string  `json:"language,omitempty"`
}

// SortOption is one entry of the discovery sort selector.
type SortOption struct {
	Value    domain.SortKey `json:"value"`
	Label    string         `json:"label"`
	Selected bool           `json:"selected"`
}

var sortLabels = map[domain.SortKey]string{
	domain.SortPopularity:  "Most Popular",
	domain.SortRating:      "Highest Rated",
	domain.SortRevenue:     "Highest Grossing",
	domain.SortReleaseDate: "Newest",
}

// Page renders the current state.
func (d *Dashboard) Page() Page {
	return Render(d.Snapshot())
}

// Render builds the view model for s.
func Render(s State) Page {
	bookmarked := make(map[int]bool, len(s.Bookmarks))
	for _, m := range s.Bookmarks {
		bookmarked[m.ID] = true
	}

	p := Page{
		View:          s.View,
		SettingsOpen:  s.SettingsOpen,
		CredentialSet: s.CredentialAvailable,
		Query:         s.Query,
		Filter:        s.Filter,
		Compare:       renderCompare(s),
	}

	switch s.View {
	case ViewHome:
		p.Loading = s.HomeLoading && s.Featured == nil
		if !s.CredentialAvailable || p.Loading {
			break
		}
		if s.Featured != nil {
			p.Hero = &Hero{
				ID:          s.Featured.ID,
				Label:       "Trending #1",
				Title:       s.Featured.Title,
				Overview:    s.Featured.Overview,
				BackdropURL: catalog.ImageURL(s.Featured.BackdropPath, catalog.SizeOriginal),
				Rating:      roundRating(s.Featured.VoteAverage),
				Year:        s.Featured.Year(),
				Bookmarked:  bookmarked[s.Featured.ID],
			}
		}
		p.Sections = homeSections(s.Home, bookmarked)
	case ViewSearch:
		title := "Discover Movies"
		if !s.Discovering && s.ResultsFor != "" {
			title = fmt.Sprintf("Results for %q", s.ResultsFor)
		}
		p.Loading = s.SearchLoading
		p.Grid = renderGrid(title, s.Results, s.SearchLoading, bookmarked)
		p.SortOptions = sortOptions(s.Filter.Sort())
	case ViewBookmarks:
		p.Grid = renderGrid("Your Bookmarks", s.Bookmarks, false, bookmarked)
	case ViewHistory:
		p.Grid = renderGrid("Recently Viewed", s.History, false, bookmarked)
	case ViewDetails:
		p.Loading = s.DetailLoading
		p.Detail = renderDetail(s, bookmarked)
	}
	return p
}

func homeSections(home HomeCollections, bookmarked map[int]bool) []Section {
	rows := []struct {
		key   string
		title string
		items []domain.MovieSummary
	}{
		{"trending", "Trending This Week", home.Trending},
		{"top_rated", "Top Rated Worldwide", home.TopRated},
		{"thriller", "Popular Thrillers", home.Thriller},
		{"high_rated", "IMDb 8+ Rated", home.HighRated},
		{"hindi", "Popular Hindi Movies", home.Hindi},
		{"anime", "Popular Anime", home.Anime},
	}
	sections := make([]Section, 0, len(rows))
	for _, row := range rows {
		if len(row.items) == 0 {
			continue
		}
		sections = append(sections, Section{Key: row.key, Title: row.title, Cards: cards(row.items, bookmarked)})
	}
	return sections
}

func renderGrid(title string, items []domain.MovieSummary, loading bool, bookmarked map[int]bool) *Grid {
	g := &Grid{Title: title, Loading: loading, Cards: []Card{}}
	if loading {
		return g
	}
	g.Cards = cards(items, bookmarked)
	g.Empty = len(g.Cards) == 0
	return g
}

func renderDetail(s State, bookmarked map[int]bool) *DetailPage {
	if s.DetailLoading {
		return &DetailPage{Loading: true, ID: s.SelectedID}
	}
	if s.Detail == nil {
		return &DetailPage{Empty: true, ID: s.SelectedID}
	}
	m := s.Detail
	page := &DetailPage{
		ID:               m.ID,
		Title:            m.Title,
		Tagline:          m.Tagline,
		Overview:         m.Overview,
		PosterURL:        catalog.ImageURL(m.PosterPath, catalog.SizeThumb),
		BackdropURL:      catalog.ImageURL(m.BackdropPath, catalog.SizeOriginal),
		Year:             m.Year(),
		Rating:           roundRating(m.VoteAverage),
		VoteCount:        m.VoteCount,
		Status:           m.Status,
		OriginalLanguage: LanguageName(m.OriginalLanguage),
		Budget:           formatMillions(m.Budget),
		Revenue:          formatMillions(m.Revenue),
		Homepage:         m.Homepage,
		Bookmarked:       bookmarked[m.ID],
	}
	for _, c := range s.Compare {
		if c.ID == m.ID {
			page.Comparing = true
		}
	}
	if m.Runtime > 0 {
		page.Runtime = fmt.Sprintf("%d min", m.Runtime)
	}
	for _, g := range m.Genres {
		page.Genres = append(page.Genres, g.Name)
	}
	if v, ok := m.Trailer(); ok {
		page.TrailerURL = youtubeWatchURL + v.Key
	}
	for _, c := range m.Directors() {
		page.Directors = append(page.Directors, c.Name)
	}
	for _, c := range m.ProductionCompanies {
		page.Companies = append(page.Companies, c.Name)
	}
	cast := m.Cast
	if len(cast) > castLimit {
		cast = cast[:castLimit]
	}
	for _, c := range cast {
		page.Cast = append(page.Cast, CastCard{
			Name:       c.Name,
			Character:  c.Character,
			ProfileURL: catalog.ImageURL(c.ProfilePath, catalog.SizeThumb),
		})
	}
	if len(m.Similar) > 0 {
		page.Similar = &Section{Key: "similar", Title: similarTitle, Cards: cards(m.Similar, bookmarked)}
	}
	return page
}

func renderCompare(s State) ComparePage {
	cp := ComparePage{Open: s.CompareOpen, Count: len(s.Compare), Slots: make([]CompareSlot, 0, domain.CompareCapacity)}
	for _, m := range s.Compare {
		cp.Slots = append(cp.Slots, CompareSlot{
			ID:          m.ID,
			Title:       m.Title,
			PosterURL:   catalog.ImageURL(m.PosterPath, catalog.SizeThumb),
			Rating:      roundRating(m.VoteAverage),
			ReleaseDate: m.ReleaseDate,
			Popularity:  int64(math.Round(m.Popularity)),
			Overview:    m.Overview,
			Language:    LanguageName(m.OriginalLanguage),
		})
	}
	for len(cp.Slots) < domain.CompareCapacity {
		cp.Slots = append(cp.Slots, CompareSlot{Empty: true})
	}
	return cp
}

func sortOptions(selected domain.SortKey) []SortOption {
	out := make([]SortOption, 0, len(domain.SortKeys))
	for _, k := range domain.SortKeys {
		out = append(out, SortOption{Value: k, Label: sortLabels[k], Selected: k == selected})
	}
	return out
}

func cards(items []domain.MovieSummary, bookmarked map[int]bool) []Card {
	out := make([]Card, 0, len(items))
	for _, m := range items {
		out = append(out, Card{
			ID:         m.ID,
			Title:      m.Title,
			Year:       m.Year(),
			Rating:     roundRating(m.VoteAverage),
			PosterURL:  catalog.ImageURL(m.PosterPath, catalog.SizeThumb),
			Bookmarked: bookmarked[m.ID],
		})
	}
	return out
}

// LanguageName returns the English name of an ISO 639 code, or the upper-case
// code when it is not recognised.
func LanguageName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(code)
}

func formatMillions(amount int64) string {
	return fmt.Sprintf("$%.1fM", float64(amount)/1_000_000)
}

func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
