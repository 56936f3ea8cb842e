package search

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/podseek/search-api/internal/search/query"
)

const (
	defaultQueryDebounce  = 300 * time.Millisecond
	defaultFilterDebounce = 200 * time.Millisecond
	defaultMinQueryLength = 2
)

// Options tunes the Orchestrator. Zero values fall back to the observed
// defaults; tests shrink the debounce windows.
type Options struct {
	QueryDebounce  time.Duration
	FilterDebounce time.Duration
	MinQueryLength int
}

// Orchestrator owns the filter state and drives searches against the
// Service: it debounces rapid edits, decides local-vs-remote dispatch,
// guards against stale responses with a generation token, and exposes an
// immutable ResultsState snapshot.
//
// All state transitions are serialized through o.mu; responses arriving
// after a newer request has been issued are discarded, never applied.
type Orchestrator struct {
	svc            *Service
	queryDebounce  time.Duration
	filterDebounce time.Duration
	minQueryLen    int

	// generation identifies the most recent outbound remote request. A
	// response is applied only if its generation is still current.
	generation atomic.Uint64

	mu        sync.Mutex
	filters   Filters
	activeTab Tab
	state     ResultsState
	loading   bool
	lastErr   string
	cache     resultCache
	timer     *time.Timer
	closed    bool

	updates chan struct{}
}

// NewOrchestrator builds an Orchestrator around a Service.
func NewOrchestrator(svc *Service, opts Options) *Orchestrator {
	if opts.QueryDebounce <= 0 {
		opts.QueryDebounce = defaultQueryDebounce
	}
	if opts.FilterDebounce <= 0 {
		opts.FilterDebounce = defaultFilterDebounce
	}
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = defaultMinQueryLength
		if svc != nil && svc.minQueryLen > 0 {
			opts.MinQueryLength = svc.minQueryLen
		}
	}
	return &Orchestrator{
		svc:            svc,
		queryDebounce:  opts.QueryDebounce,
		filterDebounce: opts.FilterDebounce,
		minQueryLen:    opts.MinQueryLength,
		filters:        DefaultFilters(),
		activeTab:      TabPodcasts,
		state:          emptyState(),
		updates:        make(chan struct{}, 1),
	}
}

func emptyState() ResultsState {
	return ResultsState{Podcasts: []Podcast{}, Episodes: []EpisodeWithPodcast{}}
}

// Updates delivers a (coalesced) signal whenever the visible state settles
// or changes. Consumers re-read the snapshot getters on each signal.
func (o *Orchestrator) Updates() <-chan struct{} { return o.updates }

// Close cancels any pending debounce timer and invalidates in-flight
// requests so nothing dispatches after disposal.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	o.stopTimerLocked()
	o.generation.Add(1)
	close(o.updates)
}

// Filters returns a copy of the current filter state.
func (o *Orchestrator) Filters() Filters {
	o.mu.Lock()
	defer o.mu.Unlock()
	f := o.filters
	f.Categories = append([]string(nil), o.filters.Categories...)
	f.Languages = append([]string(nil), o.filters.Languages...)
	return f
}

// Results returns the current results snapshot.
func (o *Orchestrator) Results() ResultsState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Loading reports whether a remote fetch for the current generation is in
// flight.
func (o *Orchestrator) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

// LastError returns the user-facing message from the most recent failed
// fetch, or "" when the last fetch settled cleanly.
func (o *Orchestrator) LastError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// ActiveTab returns the currently selected result tab.
func (o *Orchestrator) ActiveTab() Tab {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activeTab
}

// SetQuery records a query edit. Reducing the query to empty clears all
// state immediately with no debounce; any other edit waits for quiescence
// before dispatching.
func (o *Orchestrator) SetQuery(q string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.filters.Query = q
	if strings.TrimSpace(q) == "" {
		o.stopTimerLocked()
		o.generation.Add(1) // orphan any in-flight response
		o.cache.clear()
		o.state = emptyState()
		o.loading = false
		o.lastErr = ""
		o.notifyLocked()
		return
	}
	o.scheduleLocked(o.queryDebounce)
}

// ToggleCategory adds or removes a category filter.
func (o *Orchestrator) ToggleCategory(category string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.filters.Categories = toggle(o.filters.Categories, category)
	o.scheduleLocked(o.filterDebounce)
}

// ToggleLanguage adds or removes a language filter.
func (o *Orchestrator) ToggleLanguage(language string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.filters.Languages = toggle(o.filters.Languages, language)
	o.scheduleLocked(o.filterDebounce)
}

// SetDateFrom sets the lower publication bound. Inverted bounds are
// swapped so DateFrom <= DateTo always holds.
func (o *Orchestrator) SetDateFrom(t *time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.filters.DateFrom = t
	o.orderDatesLocked()
	o.scheduleLocked(o.filterDebounce)
}

// SetDateTo sets the upper publication bound.
func (o *Orchestrator) SetDateTo(t *time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.filters.DateTo = t
	o.orderDatesLocked()
	o.scheduleLocked(o.filterDebounce)
}

// SetSortBy changes the result ordering.
func (o *Orchestrator) SetSortBy(by SortBy) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.filters.SortBy = by
	o.scheduleLocked(o.filterDebounce)
}

// SetDiscoveryMode changes the provenance filter. Switching to or from
// value-for-value changes the remote options, so the next dispatch
// re-fetches.
func (o *Orchestrator) SetDiscoveryMode(mode DiscoveryMode) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.filters.Discovery = mode
	o.scheduleLocked(o.filterDebounce)
}

// SetExplicit sets the explicit-content preference (nil = no preference).
func (o *Orchestrator) SetExplicit(explicit *bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.filters.Explicit = explicit
	o.scheduleLocked(o.filterDebounce)
}

// SetMinRating sets the legacy minimum-rating filter.
func (o *Orchestrator) SetMinRating(rating float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.filters.MinRating = rating
	o.scheduleLocked(o.filterDebounce)
}

// SetActiveTab switches the visible result list. Never a network call.
func (o *Orchestrator) SetActiveTab(tab Tab) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.activeTab = tab
	o.notifyLocked()
}

// ClearFilters resets the filter state to defaults and empties the result
// cache, so a subsequent identical query re-fetches.
func (o *Orchestrator) ClearFilters() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.stopTimerLocked()
	o.generation.Add(1)
	o.filters = DefaultFilters()
	o.cache.clear()
	o.state = emptyState()
	o.loading = false
	o.lastErr = ""
	o.notifyLocked()
}

func (o *Orchestrator) orderDatesLocked() {
	from, to := o.filters.DateFrom, o.filters.DateTo
	if from != nil && to != nil && from.After(*to) {
		o.filters.DateFrom, o.filters.DateTo = to, from
	}
}

func toggle(values []string, v string) []string {
	for i, existing := range values {
		if existing == v {
			return append(values[:i:i], values[i+1:]...)
		}
	}
	return append(values, v)
}

func (o *Orchestrator) stopTimerLocked() {
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

// scheduleLocked (re)arms the single-shot debounce timer.
func (o *Orchestrator) scheduleLocked(d time.Duration) {
	o.stopTimerLocked()
	o.timer = time.AfterFunc(d, o.dispatch)
}

func (o *Orchestrator) notifyLocked() {
	select {
	case o.updates <- struct{}{}:
	default:
	}
}

// snapshotLocked captures everything a dispatch needs while holding the
// lock.
func (o *Orchestrator) snapshotLocked() Filters {
	f := o.filters
	f.Categories = append([]string(nil), o.filters.Categories...)
	f.Languages = append([]string(nil), o.filters.Languages...)
	return f
}

// dispatch runs when a debounce window closes. It decides whether the edit
// can be served from the cache, needs a remote fetch, or falls back to the
// local dataset.
func (o *Orchestrator) dispatch() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	f := o.snapshotLocked()
	trimmed := strings.TrimSpace(f.Query)

	if len([]rune(trimmed)) < o.minQueryLen {
		o.generation.Add(1) // orphan any in-flight response
		o.state = emptyState()
		o.loading = false
		o.lastErr = ""
		o.notifyLocked()
		o.mu.Unlock()
		return
	}

	q := query.Parse(trimmed)

	remote := o.svc.client != nil && o.svc.client.IsConfigured()
	if !remote {
		o.mu.Unlock()
		o.dispatchLocal(q, f)
		return
	}

	outbound := completeWords(f.Query)
	opts, optsKey := remoteOptions(f, o.svc.limit)

	if o.cache.covers(outbound, optsKey) {
		// Only the trailing word changed (or a purely local filter):
		// re-filter the cached fetch, no network. A fetch still in flight
		// for an older query must not land on top of this, so it is
		// orphaned here too.
		o.generation.Add(1)
		raw := fetched{podcasts: o.cache.podcasts, episodes: o.cache.episodes}
		o.state = o.svc.compose(raw, q, f)
		o.loading = false
		o.lastErr = ""
		o.notifyLocked()
		o.mu.Unlock()
		return
	}

	gen := o.generation.Add(1)
	o.loading = true
	o.notifyLocked()
	o.mu.Unlock()

	go o.fetch(gen, outbound, opts, optsKey)
}

// dispatchLocal searches the caller-supplied dataset with identical filter
// and sort semantics.
func (o *Orchestrator) dispatchLocal(q query.Query, f Filters) {
	raw, err := o.svc.fetchLocal(context.Background())

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	if err != nil {
		o.lastErr = userFacingError
		o.notifyLocked()
		return
	}
	o.state = o.svc.compose(raw, q, f)
	o.lastErr = ""
	o.notifyLocked()
}

// userFacingError is the single message surfaced for any remote failure.
const userFacingError = "Search is temporarily unavailable. Showing the most recent results."

// fetch performs one remote round-trip for a given generation. A response
// whose generation is no longer current is silently discarded; superseded
// requests are not aborted in flight, only ignored on arrival.
func (o *Orchestrator) fetch(gen uint64, outbound string, opts FetchOptions, optsKey string) {
	raw, err := o.svc.fetchRemote(context.Background(), outbound, opts, optsKey)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed || gen != o.generation.Load() {
		return
	}
	o.loading = false

	if err != nil {
		// Stale-but-valid results beat a blank screen: keep whatever is
		// currently displayed.
		o.lastErr = userFacingError
		o.notifyLocked()
		return
	}

	o.cache.store(outbound, optsKey, raw.podcasts, raw.episodes)

	// Compose against the filters as they stand now, so keystrokes typed
	// while the request was in flight still narrow the fresh results.
	f := o.snapshotLocked()
	o.state = o.svc.compose(raw, query.Parse(strings.TrimSpace(f.Query)), f)
	o.lastErr = ""
	o.notifyLocked()
}

// completeWords returns the whitespace-terminated words of q joined by
// single spaces. The trailing word still being typed is excluded unless it
// is the only word, so mid-word keystrokes never reach the network.
func completeWords(q string) string {
	words := strings.Fields(q)
	if len(words) == 0 {
		return ""
	}
	if len(words) == 1 {
		return words[0]
	}
	last, _ := utf8.DecodeLastRuneInString(q)
	if !unicode.IsSpace(last) {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}
