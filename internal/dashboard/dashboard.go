package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/Clark-Hu/movie-space/internal/catalog"
	"github.com/Clark-Hu/movie-space/internal/domain"
)

// View is the active screen. Exactly one is active at a time.
type View string

const (
	ViewHome      View = "home"
	ViewSearch    View = "search"
	ViewBookmarks View = "bookmarks"
	ViewHistory   View = "history"
	ViewDetails   View = "details"
)

// DefaultDebounce is how long typed input must stay unchanged before a
// search fires.
const DefaultDebounce = 500 * time.Millisecond

// minQueryLength is the shortest trimmed input, in characters, a debounced
// search accepts.
const minQueryLength = 3

var (
	// ErrUnknownMovie is returned when an id does not match any loaded movie.
	ErrUnknownMovie = errors.New("dashboard: movie not loaded")
	// ErrInvalidView is returned when navigating to a view that cannot be
	// entered directly.
	ErrInvalidView = errors.New("dashboard: invalid view")
)

// Catalog is the subset of the catalog client the dashboard drives. Every
// method absorbs failures into empty or nil results.
type Catalog interface {
	Trending(ctx context.Context, window catalog.TimeWindow) []domain.MovieSummary
	Category(ctx context.Context, category catalog.Category, page int) []domain.MovieSummary
	Search(ctx context.Context, query string) []domain.MovieSummary
	Discover(ctx context.Context, criteria domain.FilterCriteria) []domain.MovieSummary
	Detail(ctx context.Context, id int) *domain.MovieDetail
	Genres(ctx context.Context) []domain.Genre
}

// ListStore loads and saves one persisted movie list.
type ListStore interface {
	Load(ctx context.Context) []domain.MovieSummary
	Save(ctx context.Context, items []domain.MovieSummary) error
}

// Lists groups the persisted user lists.
type Lists struct {
	Bookmarks ListStore
	History   ListStore
}

// Timer is a pending debounced call.
type Timer interface {
	Stop() bool
}

// Options tunes a Dashboard. Zero values select the defaults.
type Options struct {
	Debounce  time.Duration
	AfterFunc func(d time.Duration, f func()) Timer
	Intn      func(n int) int
}

// HomeCollections are the six panels of the home view.
type HomeCollections struct {
	Trending  []domain.MovieSummary `json:"trending"`
	Hindi     []domain.MovieSummary `json:"hindi"`
	Anime     []domain.MovieSummary `json:"anime"`
	TopRated  []domain.MovieSummary `json:"topRated"`
	Thriller  []domain.MovieSummary `json:"thriller"`
	HighRated []domain.MovieSummary `json:"highRated"`
}

// Dashboard is the application state machine. All state is guarded by mu;
// catalog calls are made without holding it.
type Dashboard struct {
	catalog     Catalog
	lists       Lists
	credentials *catalog.Credentials
	logger      *log.Logger
	debounce    time.Duration
	afterFunc   func(time.Duration, func()) Timer
	intn        func(int) int

	ctx    context.Context
	cancel context.CancelFunc

	saveMu sync.Mutex

	mu            sync.Mutex
	view          View
	settingsOpen  bool
	homeLoading   bool
	homeSeq       uint64
	featured      *domain.MovieSummary
	home          HomeCollections
	query         string
	resultsFor    string
	discovering   bool
	results       []domain.MovieSummary
	searchLoading bool
	searchSeq     uint64
	filter        domain.FilterCriteria
	selectedID    int
	detail        *domain.MovieDetail
	detailLoading bool
	detailSeq     uint64
	bookmarks     *domain.Bookmarks
	history       *domain.History
	compare       domain.CompareSet
	compareOpen   bool
	genres        []domain.Genre
	timer         Timer
	timerSeq      uint64
	closed        bool
}

// New constructs a Dashboard. Call Start before use.
func New(cat Catalog, lists Lists, credentials *catalog.Credentials, logger *log.Logger, opts Options) (*Dashboard, error) {
	if cat == nil {
		return nil, errors.New("dashboard: catalog is required")
	}
	if lists.Bookmarks == nil || lists.History == nil {
		return nil, errors.New("dashboard: bookmark and history stores are required")
	}
	if credentials == nil {
		return nil, errors.New("dashboard: credentials are required")
	}
	if logger == nil {
		logger = log.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}
	if opts.Intn == nil {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		var rndMu sync.Mutex
		opts.Intn = func(n int) int {
			rndMu.Lock()
			defer rndMu.Unlock()
			return rnd.Intn(n)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Dashboard{
		catalog:     cat,
		lists:       lists,
		credentials: credentials,
		logger:      logger,
		debounce:    opts.Debounce,
		afterFunc:   opts.AfterFunc,
		intn:        opts.Intn,
		ctx:         ctx,
		cancel:      cancel,
		view:        ViewHome,
		bookmarks:   domain.NewBookmarks(nil),
		history:     domain.NewHistory(nil),
		results:     []domain.MovieSummary{},
	}, nil
}

// Start loads the credential and the persisted lists, then either loads the
// home view or opens the setup panel.
func (d *Dashboard) Start(ctx context.Context) {
	if err := d.credentials.Load(ctx); err != nil {
		d.logger.Printf("dashboard: %v", err)
	}
	bookmarks := d.lists.Bookmarks.Load(ctx)
	history := d.lists.History.Load(ctx)

	d.mu.Lock()
	d.bookmarks = domain.NewBookmarks(bookmarks)
	d.history = domain.NewHistory(history)
	d.mu.Unlock()

	d.LoadHome(ctx)
}

// Close stops the debounce timer. Debounced searches that fire afterwards are
// dropped.
func (d *Dashboard) Close() {
	d.mu.Lock()
	d.closed = true
	d.stopTimerLocked()
	d.mu.Unlock()
	d.cancel()
}

// LoadHome fetches the six home panels concurrently and waits for all of
// them. Without a credential it opens the setup panel instead. When loads
// overlap, the most recently started one wins.
func (d *Dashboard) LoadHome(ctx context.Context) {
	if !d.credentials.Available() {
		d.requireSetup()
		return
	}

	d.mu.Lock()
	d.homeSeq++
	seq := d.homeSeq
	if len(d.home.Trending) == 0 {
		d.homeLoading = true
	}
	d.mu.Unlock()

	home := d.fetchHome(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.homeSeq {
		return
	}
	d.home = home
	if len(home.Trending) > 0 {
		featured := home.Trending[0]
		d.featured = &featured
	}
	d.homeLoading = false
}

// Navigate switches to the home, bookmarks or history view.
func (d *Dashboard) Navigate(view View) error {
	switch view {
	case ViewHome, ViewBookmarks, ViewHistory:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidView, view)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.view == ViewDetails {
		d.leaveDetailLocked()
	}
	d.view = view
	return nil
}

// SubmitCredential stores a new API key. A usable key closes the setup panel
// and loads the home view.
func (d *Dashboard) SubmitCredential(ctx context.Context, key string) error {
	if err := d.credentials.Set(ctx, key); err != nil {
		d.logger.Printf("dashboard: %v", err)
		return err
	}
	if !d.credentials.Available() {
		d.requireSetup()
		return nil
	}
	d.mu.Lock()
	d.settingsOpen = false
	d.mu.Unlock()

	d.LoadHome(ctx)
	return nil
}

// OpenSettings shows the setup panel.
func (d *Dashboard) OpenSettings() {
	d.requireSetup()
}

// CloseSettings hides the setup panel. It stays open while no credential is
// available and reports whether it closed.
func (d *Dashboard) CloseSettings() bool {
	if !d.credentials.Available() {
		return false
	}
	d.mu.Lock()
	d.settingsOpen = false
	d.mu.Unlock()
	return true
}

// OpenCompare shows the comparison panel.
func (d *Dashboard) OpenCompare() {
	d.mu.Lock()
	d.compareOpen = true
	d.mu.Unlock()
}

// CloseCompare hides the comparison panel.
func (d *Dashboard) CloseCompare() {
	d.mu.Lock()
	d.compareOpen = false
	d.mu.Unlock()
}

// RandomDiscovery opens the detail of a random trending movie. It reports
// false, doing nothing, when trending is empty.
func (d *Dashboard) RandomDiscovery(ctx context.Context) bool {
	d.mu.Lock()
	trending := d.home.Trending
	if len(trending) == 0 {
		d.mu.Unlock()
		return false
	}
	pick := trending[d.intn(len(trending))]
	d.mu.Unlock()

	d.OpenDetail(ctx, pick.ID)
	return true
}

// Genres returns the genre chips, fetched once from the catalog and falling
// back to the built-in table.
func (d *Dashboard) Genres(ctx context.Context) []domain.Genre {
	d.mu.Lock()
	cached := d.genres
	d.mu.Unlock()
	if len(cached) > 0 {
		return cloneGenres(cached)
	}

	var genres []domain.Genre
	if d.credentials.Available() {
		genres = d.catalog.Genres(ctx)
	}
	if len(genres) == 0 {
		return cloneGenres(domain.DefaultGenres)
	}

	d.mu.Lock()
	d.genres = genres
	d.mu.Unlock()
	return cloneGenres(genres)
}

func (d *Dashboard) requireSetup() {
	d.mu.Lock()
	d.settingsOpen = true
	d.mu.Unlock()
}

func cloneGenres(genres []domain.Genre) []domain.Genre {
	out := make([]domain.Genre, len(genres))
	copy(out, genres)
	return out
}
