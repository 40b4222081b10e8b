package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type mockMovie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int   `json:"genre_ids"`
	Runtime          int     `json:"runtime,omitempty"`
	Budget           int64   `json:"budget,omitempty"`
	Revenue          int64   `json:"revenue,omitempty"`
}

type mockGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type mockData struct {
	Movies []mockMovie `json:"movies"`
	Genres []mockGenre `json:"genres"`
}

func defaultData() mockData {
	return mockData{
		Movies: []mockMovie{
			{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-15", VoteAverage: 8.4, VoteCount: 35000, Popularity: 98.1, OriginalLanguage: "en", GenreIDs: []int{28, 878}, Runtime: 148, Budget: 160000000, Revenue: 825532764},
			{ID: 129, Title: "Spirited Away", ReleaseDate: "2001-07-20", VoteAverage: 8.5, VoteCount: 16000, Popularity: 80.2, OriginalLanguage: "ja", GenreIDs: []int{16, 10751}, Runtime: 125},
			{ID: 19404, Title: "Dilwale Dulhania Le Jayenge", ReleaseDate: "1995-10-20", VoteAverage: 8.5, VoteCount: 4400, Popularity: 30.4, OriginalLanguage: "hi", GenreIDs: []int{35, 18, 10749}, Runtime: 190},
			{ID: 680, Title: "Pulp Fiction", ReleaseDate: "1994-09-10", VoteAverage: 8.5, VoteCount: 28000, Popularity: 75.0, OriginalLanguage: "en", GenreIDs: []int{53, 80}, Runtime: 154},
		},
		Genres: []mockGenre{{28, "Action"}, {16, "Animation"}, {35, "Comedy"}, {80, "Crime"}, {18, "Drama"}, {53, "Thriller"}},
	}
}

func main() {
	var (
		port    = flag.String("port", "9099", "port to listen on")
		data    = flag.String("data", "", "optional path to mock catalog JSON")
		logReqs = flag.Bool("log", false, "enable request logging")
	)
	flag.Parse()

	payload := defaultData()
	if *data != "" {
		file, err := os.ReadFile(*data)
		if err != nil {
			log.Fatalf("read mock data: %v", err)
		}
		if err := json.Unmarshal(file, &payload); err != nil {
			log.Fatalf("parse mock data: %v", err)
		}
	}

	r := chi.NewRouter()
	if *logReqs {
		r.Use(middleware.Logger)
	}
	r.Route("/3", func(r chi.Router) {
		r.Use(requireAPIKey)
		list := func(w http.ResponseWriter, req *http.Request) {
			items := payload.Movies
			if q := strings.ToLower(strings.TrimSpace(req.URL.Query().Get("query"))); q != "" {
				items = nil
				for _, m := range payload.Movies {
					if strings.Contains(strings.ToLower(m.Title), q) {
						items = append(items, m)
					}
				}
			}
			writeJSON(w, map[string]interface{}{"page": 1, "results": nonNil(items)})
		}
		r.Get("/trending/movie/{window}", list)
		r.Get("/discover/movie", list)
		r.Get("/search/movie", list)
		r.Get("/movie/popular", list)
		r.Get("/movie/top_rated", list)
		r.Get("/movie/upcoming", list)
		r.Get("/movie/now_playing", list)
		r.Get("/genre/movie/list", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]interface{}{"genres": payload.Genres})
		})
		r.Get("/movie/{id}", func(w http.ResponseWriter, req *http.Request) {
			id, err := strconv.Atoi(chi.URLParam(req, "id"))
			if err != nil {
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			for _, m := range payload.Movies {
				if m.ID == id {
					writeJSON(w, detailOf(m, payload.Movies))
					return
				}
			}
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		})
	})

	addr := ":" + *port
	log.Printf("mock catalog listening on %s with %d movies", addr, len(payload.Movies))
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") == "" {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func detailOf(m mockMovie, all []mockMovie) map[string]interface{} {
	var similar []mockMovie
	for _, other := range all {
		if other.ID != m.ID {
			similar = append(similar, other)
		}
	}
	return map[string]interface{}{
		"id":                   m.ID,
		"title":                m.Title,
		"overview":             m.Overview,
		"poster_path":          m.PosterPath,
		"backdrop_path":        m.BackdropPath,
		"release_date":         m.ReleaseDate,
		"vote_average":         m.VoteAverage,
		"vote_count":           m.VoteCount,
		"popularity":           m.Popularity,
		"original_language":    m.OriginalLanguage,
		"runtime":              m.Runtime,
		"budget":               m.Budget,
		"revenue":              m.Revenue,
		"status":               "Released",
		"genres":               []mockGenre{},
		"production_companies": []interface{}{},
		"credits":              map[string]interface{}{"cast": []interface{}{}, "crew": []interface{}{}},
		"videos":               map[string]interface{}{"results": []interface{}{}},
		"similar":              map[string]interface{}{"results": nonNil(similar)},
	}
}

func nonNil(items []mockMovie) []mockMovie {
	if items == nil {
		return []mockMovie{}
	}
	return items
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
