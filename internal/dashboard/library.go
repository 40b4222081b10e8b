package dashboard

import (
	"context"

	"github.com/Clark-Hu/movie-space/internal/domain"
)

// ToggleBookmark flips bookmark membership and persists the list. It reports
// whether the movie is bookmarked afterwards.
func (d *Dashboard) ToggleBookmark(ctx context.Context, movie domain.MovieSummary) bool {
	d.mu.Lock()
	on := d.bookmarks.Toggle(movie)
	d.mu.Unlock()

	d.persistBookmarks(ctx)
	return on
}

// ToggleBookmarkByID toggles a movie that is currently loaded anywhere in the
// dashboard.
func (d *Dashboard) ToggleBookmarkByID(ctx context.Context, id int) (bool, error) {
	movie, ok := d.lookup(id)
	if !ok {
		return false, ErrUnknownMovie
	}
	return d.ToggleBookmark(ctx, movie), nil
}

// ToggleCompare flips comparison membership, evicting the oldest entry when
// full. It reports whether the movie is compared afterwards.
func (d *Dashboard) ToggleCompare(movie domain.MovieSummary) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.compare.Toggle(movie)
}

// ToggleCompareByID toggles a movie that is currently loaded.
func (d *Dashboard) ToggleCompareByID(id int) (bool, error) {
	movie, ok := d.lookup(id)
	if !ok {
		return false, ErrUnknownMovie
	}
	return d.ToggleCompare(movie), nil
}

// lookup resolves id against every collection on screen, preferring the open
// detail since it carries the most complete record.
func (d *Dashboard) lookup(id int) (domain.MovieSummary, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.detail != nil {
		if d.detail.ID == id {
			return d.detail.Summary(), true
		}
		if m, ok := domain.FindByID(d.detail.Similar, id); ok {
			return m, true
		}
	}
	if d.featured != nil && d.featured.ID == id {
		return *d.featured, true
	}
	collections := [][]domain.MovieSummary{
		d.home.Trending, d.home.TopRated, d.home.Thriller, d.home.HighRated, d.home.Hindi, d.home.Anime,
		d.results, d.bookmarks.Items(), d.history.Items(), d.compare.Items(),
	}
	for _, items := range collections {
		if m, ok := domain.FindByID(items, id); ok {
			return m, true
		}
	}
	return domain.MovieSummary{}, false
}

// persistBookmarks saves the current list. saveMu orders concurrent saves so
// the last write always carries the newest snapshot.
func (d *Dashboard) persistBookmarks(ctx context.Context) {
	d.saveMu.Lock()
	defer d.saveMu.Unlock()

	d.mu.Lock()
	items := d.bookmarks.Items()
	d.mu.Unlock()
	if err := d.lists.Bookmarks.Save(ctx, items); err != nil {
		d.logger.Printf("dashboard: %v", err)
	}
}

func (d *Dashboard) persistHistory(ctx context.Context) {
	d.saveMu.Lock()
	defer d.saveMu.Unlock()

	d.mu.Lock()
	items := d.history.Items()
	d.mu.Unlock()
	if err := d.lists.History.Save(ctx, items); err != nil {
		d.logger.Printf("dashboard: %v", err)
	}
}
