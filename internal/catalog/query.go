package catalog

import (
	"net/url"
	"strconv"

	"github.com/Clark-Hu/movie-space/internal/domain"
)

// TimeWindow selects the trending aggregation window.
type TimeWindow string

const (
	WindowDay  TimeWindow = "day"
	WindowWeek TimeWindow = "week"
)

// Category is one of the fixed home/browse collections.
type Category string

const (
	CategoryPopular    Category = "popular"
	CategoryTopRated   Category = "top_rated"
	CategoryUpcoming   Category = "upcoming"
	CategoryNowPlaying Category = "now_playing"
	CategoryHindi      Category = "hindi"
	CategoryKorean     Category = "korean"
	CategoryAnime      Category = "anime"
	CategoryAdventure  Category = "adventure"
	CategoryThriller   Category = "thriller"
	CategoryHighRated  Category = "high_rated"
)

const (
	endpointDiscover = "/discover/movie"
	endpointPopular  = "/movie/popular"
	endpointSearch   = "/search/movie"
	endpointGenres   = "/genre/movie/list"

	genreAdventure = "12"
	genreAnimation = "16"
	genreThriller  = "53"
)

// Query is an endpoint plus its query parameters, excluding the credential
// and locale parameters every request carries.
type Query struct {
	Endpoint string
	Params   url.Values
}

// CategoryQuery maps a category to its endpoint and parameters. Unknown
// categories fall back to the popular listing.
func CategoryQuery(category Category, page int) Query {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	endpoint := endpointPopular
	switch category {
	case CategoryTopRated, CategoryUpcoming, CategoryNowPlaying:
		endpoint = "/movie/" + string(category)
	case CategoryHindi:
		endpoint = endpointDiscover
		params.Set("with_original_language", "hi")
		params.Set("sort_by", string(domain.SortPopularity))
		params.Set("region", "IN")
	case CategoryKorean:
		endpoint = endpointDiscover
		params.Set("with_original_language", "ko")
		params.Set("sort_by", string(domain.SortPopularity))
	case CategoryAnime:
		endpoint = endpointDiscover
		params.Set("with_genres", genreAnimation)
		params.Set("with_original_language", "ja")
	case CategoryAdventure:
		endpoint = endpointDiscover
		params.Set("with_genres", genreAdventure)
		params.Set("sort_by", string(domain.SortPopularity))
	case CategoryThriller:
		endpoint = endpointDiscover
		params.Set("with_genres", genreThriller)
		params.Set("sort_by", string(domain.SortPopularity))
	case CategoryHighRated:
		endpoint = endpointDiscover
		params.Set("vote_average.gte", "8")
		params.Set("vote_count.gte", "500")
		params.Set("sort_by", string(domain.SortRating))
	}
	return Query{Endpoint: endpoint, Params: params}
}

// DiscoverParams builds discovery parameters from the user's filters.
func DiscoverParams(criteria domain.FilterCriteria) url.Values {
	params := url.Values{}
	params.Set("sort_by", string(criteria.Sort()))
	params.Set("vote_average.gte", strconv.FormatFloat(criteria.MinRating, 'f', -1, 64))
	params.Set("page", "1")
	if criteria.Year != nil {
		params.Set("primary_release_year", strconv.Itoa(*criteria.Year))
	}
	if criteria.GenreID != nil {
		params.Set("with_genres", strconv.Itoa(*criteria.GenreID))
	}
	return params
}

func trendingEndpoint(window TimeWindow) string {
	if window != WindowWeek {
		window = WindowDay
	}
	return "/trending/movie/" + string(window)
}

func detailEndpoint(id int) string {
	return "/movie/" + strconv.Itoa(id)
}
