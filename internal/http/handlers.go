package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Clark-Hu/movie-space/internal/dashboard"
	"github.com/Clark-Hu/movie-space/internal/domain"
)

const maxRequestBody = 1 << 20 // 1 MiB

const (
	minFilterYear = 1874
	maxFilterYear = 2100
)

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// fieldError is a validation failure tied to one request field.
type fieldError struct {
	Field   string
	Message string
}

func (e *fieldError) Error() string {
	return e.Message
}

type credentialRequest struct {
	APIKey string `json:"apiKey"`
}

type queryRequest struct {
	Query string `json:"query"`
}

// filterRequest is a partial filter update. Absent fields are left as they
// are; a year or genreId of 0 clears that filter.
type filterRequest struct {
	SortBy    *string  `json:"sortBy"`
	MinRating *float64 `json:"minRating"`
	Year      *int     `json:"year"`
	GenreID   *int     `json:"genreId"`
}

type genresResponse struct {
	Items []domain.Genre `json:"items"`
}

// detach keeps upstream fetches alive after the client goes away; the
// dashboard state they update outlives the request.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	s.respondPage(w)
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, genresResponse{Items: s.dash.Genres(detach(r))})
}

func (s *Server) handleCredential(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.dash.SubmitCredential(detach(r), req.APIKey); err != nil {
		s.logger.Printf("store credential error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to store credential")
		return
	}
	s.respondPage(w)
}

func (s *Server) handleOpenSettings(w http.ResponseWriter, _ *http.Request) {
	s.dash.OpenSettings()
	s.respondPage(w)
}

func (s *Server) handleCloseSettings(w http.ResponseWriter, _ *http.Request) {
	// Without a credential the panel stays open; the page says so.
	s.dash.CloseSettings()
	s.respondPage(w)
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	view := dashboard.View(chi.URLParam(r, "view"))
	if err := s.dash.Navigate(view); err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", fmt.Sprintf("cannot navigate to %q", view))
		return
	}
	s.respondPage(w)
}

func (s *Server) handleSearchInput(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	s.dash.TypeQuery(req.Query)
	s.respondPage(w)
}

func (s *Server) handleSearchSubmit(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	s.dash.SubmitSearch(detach(r), req.Query)
	s.respondPage(w)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	change, err := buildFilterChange(req)
	if err != nil {
		s.respondValidationError(w, err)
		return
	}
	s.dash.ApplyFilter(detach(r), change)
	s.respondPage(w)
}

func buildFilterChange(req filterRequest) (domain.FilterChange, error) {
	var change domain.FilterChange

	if req.SortBy != nil {
		key, err := domain.ParseSortKey(strings.TrimSpace(*req.SortBy))
		if err != nil {
			return domain.FilterChange{}, &fieldError{Field: "sortBy", Message: err.Error()}
		}
		change.SortBy = &key
	}
	if req.MinRating != nil {
		v := *req.MinRating
		if math.IsNaN(v) || v < 0 || v > 10 {
			return domain.FilterChange{}, &fieldError{Field: "minRating", Message: "minRating must be between 0 and 10"}
		}
		change.MinRating = &v
	}
	if req.Year != nil {
		switch y := *req.Year; {
		case y == 0:
			change.ClearYear = true
		case y < minFilterYear || y > maxFilterYear:
			return domain.FilterChange{}, &fieldError{Field: "year", Message: fmt.Sprintf("year must be between %d and %d", minFilterYear, maxFilterYear)}
		default:
			change.Year = &y
		}
	}
	if req.GenreID != nil {
		switch g := *req.GenreID; {
		case g == 0:
			change.ClearGenre = true
		case g < 0:
			return domain.FilterChange{}, &fieldError{Field: "genreId", Message: "genreId must be positive"}
		default:
			change.GenreID = &g
		}
	}
	return change, nil
}

func (s *Server) handleOpenMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := s.movieID(w, r)
	if !ok {
		return
	}
	s.dash.OpenDetail(detach(r), id)
	s.respondPage(w)
}

func (s *Server) handleCloseDetails(w http.ResponseWriter, _ *http.Request) {
	s.dash.CloseDetail()
	s.respondPage(w)
}

func (s *Server) handleBookmark(w http.ResponseWriter, r *http.Request) {
	id, ok := s.movieID(w, r)
	if !ok {
		return
	}
	if _, err := s.dash.ToggleBookmarkByID(detach(r), id); err != nil {
		s.respondMovieError(w, id, err)
		return
	}
	s.respondPage(w)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	id, ok := s.movieID(w, r)
	if !ok {
		return
	}
	if _, err := s.dash.ToggleCompareByID(id); err != nil {
		s.respondMovieError(w, id, err)
		return
	}
	s.respondPage(w)
}

func (s *Server) handleOpenCompare(w http.ResponseWriter, _ *http.Request) {
	s.dash.OpenCompare()
	s.respondPage(w)
}

func (s *Server) handleCloseCompare(w http.ResponseWriter, _ *http.Request) {
	s.dash.CloseCompare()
	s.respondPage(w)
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	s.dash.RandomDiscovery(detach(r))
	s.respondPage(w)
}

func (s *Server) movieID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := parseMovieID(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return 0, false
	}
	return id, true
}

func parseMovieID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id %q", raw)
	}
	return id, nil
}

func (s *Server) respondMovieError(w http.ResponseWriter, id int, err error) {
	if errors.Is(err, dashboard.ErrUnknownMovie) {
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("movie %d is not loaded", id))
		return
	}
	s.logger.Printf("movie %d action error: %v", id, err)
	s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update movie")
}

func (s *Server) respondPage(w http.ResponseWriter) {
	s.respondJSON(w, http.StatusOK, s.dash.Page())
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) respondValidationError(w http.ResponseWriter, err error) {
	resp := errorResponse{Code: "VALIDATION_ERROR", Message: err.Error()}
	var fe *fieldError
	if errors.As(err, &fe) {
		resp.Details = map[string]string{"field": fe.Field}
	}
	s.respondJSON(w, http.StatusUnprocessableEntity, resp)
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to parse request body")
	}
}
