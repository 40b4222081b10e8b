package dashboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clark-Hu/movie-space/internal/domain"
)

func TestRenderHomeSectionOrder(t *testing.T) {
	s := State{
		View:                ViewHome,
		CredentialAvailable: true,
		Featured:            &domain.MovieSummary{ID: 1, Title: "A"},
		Home: HomeCollections{
			Trending:  []domain.MovieSummary{movie(1)},
			Hindi:     []domain.MovieSummary{movie(2)},
			Anime:     []domain.MovieSummary{movie(3)},
			TopRated:  []domain.MovieSummary{movie(4)},
			Thriller:  []domain.MovieSummary{},
			HighRated: []domain.MovieSummary{movie(6)},
		},
		Bookmarks: []domain.MovieSummary{movie(4)},
	}

	page := Render(s)

	var titles []string
	for _, sec := range page.Sections {
		titles = append(titles, sec.Title)
	}
	assert.Equal(t, []string{
		"Trending This Week",
		"Top Rated Worldwide",
		"IMDb 8+ Rated",
		"Popular Hindi Movies",
		"Popular Anime",
	}, titles)
	assert.True(t, page.Sections[1].Cards[0].Bookmarked)
	assert.False(t, page.Sections[0].Cards[0].Bookmarked)
	assert.Equal(t, "Trending #1", page.Hero.Label)
	assert.Equal(t, "https://picsum.photos/500/750?grayscale", page.Hero.BackdropURL)
}

func TestRenderHomeWithoutCredentialIsBare(t *testing.T) {
	page := Render(State{View: ViewHome, SettingsOpen: true})
	assert.True(t, page.SettingsOpen)
	assert.False(t, page.CredentialSet)
	assert.Nil(t, page.Hero)
	assert.Empty(t, page.Sections)
}

func TestRenderGrids(t *testing.T) {
	tests := []struct {
		name  string
		state State
		title string
		empty bool
	}{
		{"search", State{View: ViewSearch, ResultsFor: "alien", Results: []domain.MovieSummary{movie(1)}}, `Results for "alien"`, false},
		{"blank search", State{View: ViewSearch, Results: []domain.MovieSummary{}}, "Discover Movies", true},
		{"discover", State{View: ViewSearch, Discovering: true, ResultsFor: "", Results: []domain.MovieSummary{movie(1)}}, "Discover Movies", false},
		{"bookmarks", State{View: ViewBookmarks, Bookmarks: []domain.MovieSummary{movie(1)}}, "Your Bookmarks", false},
		{"history", State{View: ViewHistory}, "Recently Viewed", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Render(tt.state)
			require.NotNil(t, page.Grid)
			assert.Equal(t, tt.title, page.Grid.Title)
			assert.Equal(t, tt.empty, page.Grid.Empty)
		})
	}
}

func TestRenderDetail(t *testing.T) {
	detail := &domain.MovieDetail{
		MovieSummary: domain.MovieSummary{
			ID:               27205,
			Title:            "Inception",
			ReleaseDate:      "2010-07-15",
			VoteAverage:      8.36,
			PosterPath:       "/poster.jpg",
			OriginalLanguage: "en",
		},
		Runtime: 148,
		Budget:  160000000,
		Revenue: 825532764,
		Status:  "Released",
		Genres:  []domain.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
		Crew:    []domain.CrewMember{{Name: "Christopher Nolan", Job: "Director"}, {Name: "Hans Zimmer", Job: "Original Music Composer"}},
		Videos:  []domain.Video{{Key: "teaser", Site: "YouTube", Type: "Teaser"}, {Key: "trailer", Site: "YouTube", Type: "Trailer"}},
		Similar: []domain.MovieSummary{movie(155)},
	}
	for i := 0; i < 15; i++ {
		detail.Cast = append(detail.Cast, domain.CastMember{ID: i, Name: fmt.Sprintf("Actor %d", i)})
	}

	page := Render(State{
		View:      ViewDetails,
		Detail:    detail,
		Bookmarks: []domain.MovieSummary{movie(27205)},
		Compare:   []domain.MovieSummary{movie(27205)},
	})

	d := page.Detail
	require.NotNil(t, d)
	assert.Equal(t, "2010", d.Year)
	assert.Equal(t, "148 min", d.Runtime)
	assert.Equal(t, 8.4, d.Rating)
	assert.Equal(t, "$160.0M", d.Budget)
	assert.Equal(t, "$825.5M", d.Revenue)
	assert.Equal(t, "English", d.OriginalLanguage)
	assert.Equal(t, []string{"Action", "Science Fiction"}, d.Genres)
	assert.Equal(t, []string{"Christopher Nolan"}, d.Directors)
	assert.Equal(t, "https://www.youtube.com/watch?v=trailer", d.TrailerURL)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", d.PosterURL)
	assert.Len(t, d.Cast, 10, "top ten billed cast")
	assert.Equal(t, "Actor 0", d.Cast[0].Name)
	require.NotNil(t, d.Similar)
	assert.Equal(t, "You might also like", d.Similar.Title)
	assert.True(t, d.Bookmarked)
	assert.True(t, d.Comparing)
}

func TestRenderDetailLoadingAndEmpty(t *testing.T) {
	loading := Render(State{View: ViewDetails, DetailLoading: true, SelectedID: 3})
	assert.True(t, loading.Loading)
	assert.True(t, loading.Detail.Loading)
	assert.Equal(t, 3, loading.Detail.ID)

	empty := Render(State{View: ViewDetails, SelectedID: 3})
	assert.True(t, empty.Detail.Empty)
}

func TestRenderCompareSlots(t *testing.T) {
	a := movie(1)
	a.Popularity = 41.6
	a.VoteAverage = 7.25
	a.ReleaseDate = "2001-01-01"
	a.OriginalLanguage = "ja"

	page := Render(State{View: ViewHome, Compare: []domain.MovieSummary{a}, CompareOpen: true})

	require.Len(t, page.Compare.Slots, 2)
	assert.Equal(t, 1, page.Compare.Count)
	assert.Equal(t, int64(42), page.Compare.Slots[0].Popularity)
	assert.Equal(t, 7.3, page.Compare.Slots[0].Rating)
	assert.Equal(t, "Japanese", page.Compare.Slots[0].Language)
	assert.True(t, page.Compare.Slots[1].Empty)
}

func TestLanguageName(t *testing.T) {
	tests := map[string]string{
		"en": "English",
		"hi": "Hindi",
		"ko": "Korean",
		"":   "",
		"??": "??",
	}
	for code, want := range tests {
		assert.Equal(t, want, LanguageName(code), code)
	}
}

func TestPageReflectsDashboard(t *testing.T) {
	fx := newFixture(t, "key")
	fx.catalog.trending = []domain.MovieSummary{movie(1)}
	fx.dash.Start(context.Background())

	page := fx.dash.Page()
	assert.Equal(t, ViewHome, page.View)
	assert.True(t, page.CredentialSet)
	require.NotNil(t, page.Hero)
	assert.Equal(t, 1, page.Hero.ID)
}
