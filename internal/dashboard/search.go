package dashboard

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Clark-Hu/movie-space/internal/domain"
)

// TypeQuery records typed input and re-arms the debounce timer. The search
// fires once the input has been stable for the debounce delay, and only when
// the trimmed input is longer than two characters.
func (d *Dashboard) TypeQuery(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.query = query
	d.stopTimerLocked()
	seq := d.timerSeq
	d.timer = d.afterFunc(d.debounce, func() { d.fireDebounced(seq) })
}

// SubmitSearch cancels any pending debounced search and searches now.
func (d *Dashboard) SubmitSearch(ctx context.Context, query string) {
	d.mu.Lock()
	d.query = query
	d.stopTimerLocked()
	d.mu.Unlock()

	d.search(ctx, query)
}

// ApplyFilter merges change into the accumulated filters and runs discovery.
func (d *Dashboard) ApplyFilter(ctx context.Context, change domain.FilterChange) {
	d.mu.Lock()
	d.filter = d.filter.Apply(change)
	criteria := d.filter
	d.mu.Unlock()

	d.discover(ctx, criteria)
}

// SetSort changes the discovery sort order.
func (d *Dashboard) SetSort(ctx context.Context, key domain.SortKey) {
	d.ApplyFilter(ctx, domain.FilterChange{SortBy: &key})
}

// SelectGenre narrows discovery to one genre.
func (d *Dashboard) SelectGenre(ctx context.Context, genreID int) {
	d.ApplyFilter(ctx, domain.FilterChange{GenreID: &genreID})
}

// stopTimerLocked cancels the pending debounce and invalidates its callback in
// case it is already running.
func (d *Dashboard) stopTimerLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.timerSeq++
}

func (d *Dashboard) fireDebounced(seq uint64) {
	d.mu.Lock()
	if d.closed || seq != d.timerSeq {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	query := d.query
	d.mu.Unlock()

	if utf8.RuneCountInString(strings.TrimSpace(query)) < minQueryLength {
		return
	}
	d.search(d.ctx, query)
}

func (d *Dashboard) search(ctx context.Context, query string) {
	d.runResults(ctx, query, false, func(ctx context.Context) []domain.MovieSummary {
		return d.catalog.Search(ctx, query)
	})
}

func (d *Dashboard) discover(ctx context.Context, criteria domain.FilterCriteria) {
	d.runResults(ctx, "", true, func(ctx context.Context) []domain.MovieSummary {
		return d.catalog.Discover(ctx, criteria)
	})
}

// runResults issues one search or discovery request. Search and discovery
// share a sequence number so only the most recently started request may
// publish its results.
func (d *Dashboard) runResults(ctx context.Context, label string, discovering bool, fetch func(context.Context) []domain.MovieSummary) {
	if !d.credentials.Available() {
		return
	}

	d.mu.Lock()
	d.searchSeq++
	seq := d.searchSeq
	d.searchLoading = true
	d.mu.Unlock()

	results := fetch(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.searchSeq {
		return
	}
	if d.view == ViewDetails {
		d.leaveDetailLocked()
	}
	d.results = results
	d.resultsFor = strings.TrimSpace(label)
	d.discovering = discovering
	d.searchLoading = false
	d.view = ViewSearch
}
