package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Clark-Hu/movie-space/internal/catalog"
	"github.com/Clark-Hu/movie-space/internal/config"
	"github.com/Clark-Hu/movie-space/internal/dashboard"
	"github.com/Clark-Hu/movie-space/internal/domain"
	"github.com/Clark-Hu/movie-space/internal/repository"
	"github.com/Clark-Hu/movie-space/internal/store"
)

// stubCatalog serves fixed collections for handler tests.
type stubCatalog struct {
	trending []domain.MovieSummary
	results  []domain.MovieSummary
}

func (s stubCatalog) Trending(context.Context, catalog.TimeWindow) []domain.MovieSummary {
	return append([]domain.MovieSummary(nil), s.trending...)
}

func (s stubCatalog) Category(context.Context, catalog.Category, int) []domain.MovieSummary {
	return []domain.MovieSummary{}
}

func (s stubCatalog) Search(context.Context, string) []domain.MovieSummary {
	return append([]domain.MovieSummary(nil), s.results...)
}

func (s stubCatalog) Discover(context.Context, domain.FilterCriteria) []domain.MovieSummary {
	return append([]domain.MovieSummary(nil), s.results...)
}

func (s stubCatalog) Detail(_ context.Context, id int) *domain.MovieDetail {
	for _, m := range s.trending {
		if m.ID == id {
			return &domain.MovieDetail{MovieSummary: m}
		}
	}
	return nil
}

func (s stubCatalog) Genres(context.Context) []domain.Genre {
	return nil
}

// unhealthyBackend fails health checks but otherwise behaves like memory.
type unhealthyBackend struct {
	*store.Memory
}

func (unhealthyBackend) HealthCheck(context.Context) error {
	return errors.New("backend down")
}

func testMovie(id int) domain.MovieSummary {
	return domain.MovieSummary{ID: id, Title: fmt.Sprintf("Movie %d", id), VoteAverage: 7.5, GenreIDs: []int{}}
}

func testConfig() config.Config {
	return config.Config{
		Port:             "0",
		ReadTimeoutSecs:  15,
		WriteTimeoutSecs: 15,
		IdleTimeoutSecs:  60,
	}
}

func buildTestServer(tb testing.TB, apiKey string) *Server {
	tb.Helper()
	return buildTestServerWith(tb, apiKey, testConfig(), store.NewMemory())
}

func buildTestServerWith(tb testing.TB, apiKey string, cfg config.Config, backend store.Backend) *Server {
	tb.Helper()

	logger := log.New(io.Discard, "", 0)
	repo := repository.New(backend, logger)
	cat := stubCatalog{
		trending: []domain.MovieSummary{testMovie(1), testMovie(2), testMovie(3)},
		results:  []domain.MovieSummary{testMovie(7)},
	}
	dash, err := dashboard.New(cat,
		dashboard.Lists{Bookmarks: repo.Bookmarks, History: repo.History},
		catalog.NewCredentials(repo.Credential, apiKey),
		logger,
		dashboard.Options{Intn: func(int) int { return 1 }},
	)
	if err != nil {
		tb.Fatalf("dashboard.New() error: %v", err)
	}
	tb.Cleanup(dash.Close)
	dash.Start(context.Background())

	return New(cfg, backend, dash, logger)
}

func doRequest(tb testing.TB, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	tb.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) dashboard.Page {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var page dashboard.Page
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	return page
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	srv := buildTestServer(t, "key")
	rec := doRequest(t, srv, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", rec.Code)
	}

	down := buildTestServerWith(t, "key", testConfig(), unhealthyBackend{store.NewMemory()})
	rec = doRequest(t, down, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unhealthy status = %d, want 503", rec.Code)
	}
}

func TestPageShowsHomeAfterStart(t *testing.T) {
	srv := buildTestServer(t, "key")
	page := decodePage(t, doRequest(t, srv, http.MethodGet, "/api/page", ""))

	if page.View != dashboard.ViewHome {
		t.Fatalf("view = %s, want home", page.View)
	}
	if page.Hero == nil || page.Hero.ID != 1 {
		t.Fatalf("hero = %+v, want movie 1", page.Hero)
	}
	if len(page.Sections) != 1 || page.Sections[0].Title != "Trending This Week" {
		t.Fatalf("sections = %+v, want only trending", page.Sections)
	}
}

func TestCredentialFlow(t *testing.T) {
	srv := buildTestServer(t, "")

	page := decodePage(t, doRequest(t, srv, http.MethodGet, "/api/page", ""))
	if !page.SettingsOpen || page.CredentialSet {
		t.Fatalf("expected setup panel without credential, got %+v", page)
	}

	page = decodePage(t, doRequest(t, srv, http.MethodPost, "/api/settings/close", ""))
	if !page.SettingsOpen {
		t.Fatalf("settings closed without a credential")
	}

	page = decodePage(t, doRequest(t, srv, http.MethodPost, "/api/credential", `{"apiKey":"  k3y  "}`))
	if page.SettingsOpen || !page.CredentialSet {
		t.Fatalf("expected setup closed after credential, got %+v", page)
	}
	if page.Hero == nil {
		t.Fatalf("expected home to load after credential")
	}

	page = decodePage(t, doRequest(t, srv, http.MethodPost, "/api/settings/open", ""))
	if !page.SettingsOpen {
		t.Fatalf("settings did not open")
	}
	page = decodePage(t, doRequest(t, srv, http.MethodPost, "/api/settings/close", ""))
	if page.SettingsOpen {
		t.Fatalf("settings did not close with a credential")
	}
}

func TestCredentialDecodeErrors(t *testing.T) {
	srv := buildTestServer(t, "")

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"empty body", "", http.StatusUnprocessableEntity},
		{"malformed json", `{"apiKey":}`, http.StatusUnprocessableEntity},
		{"wrong type", `{"apiKey":5}`, http.StatusUnprocessableEntity},
		{"unknown field", `{"token":"x"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/credential", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if resp := decodeError(t, rec); resp.Code != "VALIDATION_ERROR" {
				t.Fatalf("code = %s, want VALIDATION_ERROR", resp.Code)
			}
		})
	}
}

func TestNavigate(t *testing.T) {
	srv := buildTestServer(t, "key")

	page := decodePage(t, doRequest(t, srv, http.MethodPost, "/api/view/bookmarks", ""))
	if page.View != dashboard.ViewBookmarks || page.Grid == nil || page.Grid.Title != "Your Bookmarks" {
		t.Fatalf("unexpected bookmarks page: %+v", page)
	}

	for _, view := range []string{"details", "search", "settings"} {
		rec := doRequest(t, srv, http.MethodPost, "/api/view/"+view, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("view %s status = %d, want 400", view, rec.Code)
		}
	}
}

func TestSearchSubmit(t *testing.T) {
	srv := buildTestServer(t, "key")

	page := decodePage(t, doRequest(t, srv, http.MethodPost, "/api/search/submit", `{"query":"alien"}`))
	if page.View != dashboard.ViewSearch {
		t.Fatalf("view = %s, want search", page.View)
	}
	if page.Grid == nil || page.Grid.Title != `Results for "alien"` {
		t.Fatalf("grid = %+v", page.Grid)
	}
	if len(page.Grid.Cards) != 1 || page.Grid.Cards[0].ID != 7 {
		t.Fatalf("cards = %+v, want movie 7", page.Grid.Cards)
	}
}

func TestSearchInputRecordsQuery(t *testing.T) {
	srv := buildTestServer(t, "key")

	page := decodePage(t, doRequest(t, srv, http.MethodPost, "/api/search/input", `{"query":"al"}`))
	if page.Query != "al" {
		t.Fatalf("query = %q, want al", page.Query)
	}
	if page.View != dashboard.ViewHome {
		t.Fatalf("short input changed the view to %s", page.View)
	}
}

func TestFilter(t *testing.T) {
	srv := buildTestServer(t, "key")

	page := decodePage(t, doRequest(t, srv, http.MethodPost, "/api/filter", `{"sortBy":"vote_average.desc","year":2010,"genreId":28}`))
	if page.Filter.SortBy != domain.SortRating {
		t.Fatalf("sortBy = %s, want rating", page.Filter.SortBy)
	}
	if page.Filter.Year == nil || *page.Filter.Year != 2010 {
		t.Fatalf("year = %v, want 2010", page.Filter.Year)
	}
	if page.Grid == nil || page.Grid.Title != "Discover Movies" {
		t.Fatalf("grid = %+v, want discover grid", page.Grid)
	}

	page = decodePage(t, doRequest(t, srv, http.MethodPost, "/api/filter", `{"year":0}`))
	if page.Filter.Year != nil {
		t.Fatalf("year = %v, want cleared", *page.Filter.Year)
	}
	if page.Filter.GenreID == nil || *page.Filter.GenreID != 28 {
		t.Fatalf("genre should be kept across updates, got %v", page.Filter.GenreID)
	}

	invalid := []struct {
		body  string
		field string
	}{
		{`{"sortBy":"title.asc"}`, "sortBy"},
		{`{"minRating":11}`, "minRating"},
		{`{"year":1200}`, "year"},
		{`{"genreId":-4}`, "genreId"},
	}
	for _, tt := range invalid {
		rec := doRequest(t, srv, http.MethodPost, "/api/filter", tt.body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body %s status = %d, want 422", tt.body, rec.Code)
		}
		resp := decodeError(t, rec)
		details, ok := resp.Details.(map[string]interface{})
		if !ok || details["field"] != tt.field {
			t.Fatalf("body %s details = %#v, want field %s", tt.body, resp.Details, tt.field)
		}
	}
}

func TestMovieActions(t *testing.T) {
	srv := buildTestServer(t, "key")

	page := decodePage(t, doRequest(t, srv, http.MethodPost, "/api/movies/2/bookmark", ""))
	if !page.Sections[0].Cards[1].Bookmarked {
		t.Fatalf("movie 2 not bookmarked: %+v", page.Sections[0].Cards)
	}
	page = decodePage(t, doRequest(t, srv, http.MethodPost, "/api/movies/2/bookmark", ""))
	if page.Sections[0].Cards[1].Bookmarked {
		t.Fatalf("second toggle should remove the bookmark")
	}

	page = decodePage(t, doRequest(t, srv, http.MethodPost, "/api/movies/3/compare", ""))
	if page.Compare.Count != 1 || page.Compare.Slots[0].ID != 3 {
		t.Fatalf("compare = %+v, want movie 3", page.Compare)
	}
	page = decodePage(t, doRequest(t, srv, http.MethodPost, "/api/compare/open", ""))
	if !page.Compare.Open {
		t.Fatalf("compare panel did not open")
	}
	page = decodePage(t, doRequest(t, srv, http.MethodPost, "/api/compare/close", ""))
	if page.Compare.Open {
		t.Fatalf("compare panel did not close")
	}

	page = decodePage(t, doRequest(t, srv, http.MethodPost, "/api/movies/1/open", ""))
	if page.View != dashboard.ViewDetails || page.Detail == nil || page.Detail.ID != 1 {
		t.Fatalf("detail page = %+v", page.Detail)
	}
	page = decodePage(t, doRequest(t, srv, http.MethodPost, "/api/view/history", ""))
	if len(page.Grid.Cards) != 1 || page.Grid.Cards[0].ID != 1 {
		t.Fatalf("history = %+v, want movie 1", page.Grid.Cards)
	}

	decodePage(t, doRequest(t, srv, http.MethodPost, "/api/movies/1/open", ""))
	page = decodePage(t, doRequest(t, srv, http.MethodPost, "/api/details/close", ""))
	if page.View != dashboard.ViewHome || page.Detail != nil {
		t.Fatalf("close details left view %s", page.View)
	}
}

func TestMovieActionErrors(t *testing.T) {
	srv := buildTestServer(t, "key")

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/api/movies/abc/bookmark", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/movies/0/open", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/movies/999/bookmark", http.StatusNotFound, "NOT_FOUND"},
		{"/api/movies/999/compare", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		rec := doRequest(t, srv, http.MethodPost, tt.path, "")
		if rec.Code != tt.status {
			t.Fatalf("%s status = %d, want %d", tt.path, rec.Code, tt.status)
		}
		if resp := decodeError(t, rec); resp.Code != tt.code {
			t.Fatalf("%s code = %s, want %s", tt.path, resp.Code, tt.code)
		}
	}
}

func TestRandomOpensTrendingPick(t *testing.T) {
	srv := buildTestServer(t, "key")

	page := decodePage(t, doRequest(t, srv, http.MethodPost, "/api/random", ""))
	if page.View != dashboard.ViewDetails || page.Detail == nil || page.Detail.ID != 2 {
		t.Fatalf("random detail = %+v, want movie 2", page.Detail)
	}
}

func TestGenresFallBackToDefaults(t *testing.T) {
	srv := buildTestServer(t, "key")

	rec := doRequest(t, srv, http.MethodGet, "/api/genres", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp genresResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != len(domain.DefaultGenres) {
		t.Fatalf("genres = %d, want %d defaults", len(resp.Items), len(domain.DefaultGenres))
	}
}

func TestBookmarksPersistAcrossServers(t *testing.T) {
	backend := store.NewMemory()
	first := buildTestServerWith(t, "key", testConfig(), backend)
	decodePage(t, doRequest(t, first, http.MethodPost, "/api/movies/3/bookmark", ""))

	second := buildTestServerWith(t, "key", testConfig(), backend)
	page := decodePage(t, doRequest(t, second, http.MethodPost, "/api/view/bookmarks", ""))
	if len(page.Grid.Cards) != 1 || page.Grid.Cards[0].ID != 3 {
		t.Fatalf("bookmarks after restart = %+v", page.Grid.Cards)
	}
}
