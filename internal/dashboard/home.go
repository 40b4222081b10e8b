package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Clark-Hu/movie-space/internal/catalog"
	"github.com/Clark-Hu/movie-space/internal/domain"
)

// fetchHome issues the six panel fetches together. Each goroutine writes its
// own field, and Wait is the only barrier.
func (d *Dashboard) fetchHome(ctx context.Context) HomeCollections {
	var (
		home HomeCollections
		g    errgroup.Group
	)
	fetch := func(dst *[]domain.MovieSummary, load func() []domain.MovieSummary) {
		g.Go(func() error {
			*dst = load()
			return nil
		})
	}

	fetch(&home.Trending, func() []domain.MovieSummary { return d.catalog.Trending(ctx, catalog.WindowWeek) })
	fetch(&home.Hindi, func() []domain.MovieSummary { return d.catalog.Category(ctx, catalog.CategoryHindi, 1) })
	fetch(&home.Anime, func() []domain.MovieSummary { return d.catalog.Category(ctx, catalog.CategoryAnime, 1) })
	fetch(&home.TopRated, func() []domain.MovieSummary { return d.catalog.Category(ctx, catalog.CategoryTopRated, 1) })
	fetch(&home.Thriller, func() []domain.MovieSummary { return d.catalog.Category(ctx, catalog.CategoryThriller, 1) })
	fetch(&home.HighRated, func() []domain.MovieSummary { return d.catalog.Category(ctx, catalog.CategoryHighRated, 1) })

	_ = g.Wait()
	return home
}
