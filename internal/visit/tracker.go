package visit

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/rango/core/logger"
)

// Cookie names read as a fallback when the session lacks a value.
const (
	CookieVisits    = "visits"
	CookieLastVisit = "last_visit"
)

const day = 24 * time.Hour

// State is the visit-tracking part of a visitor session.
// Zero values mean the session has not recorded a visit yet.
type State struct {
	Visits    int    `json:"visits"`
	LastVisit string `json:"last_visit"`
}

// Cookies holds request cookie values by name.
type Cookies map[string]string

// CookiesFromRequest collects the visit cookies sent with r.
func CookiesFromRequest(r *http.Request) Cookies {
	c := Cookies{}
	for _, name := range []string{CookieVisits, CookieLastVisit} {
		if ck, err := r.Cookie(name); err == nil {
			c[name] = ck.Value
		}
	}
	return c
}

// Tracker applies the day-granularity visit rule.
type Tracker struct {
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTracker creates a Tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		now:    time.Now,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Update computes the next visit state.
//
// The visit count and last visit come from state when set, then from cookies,
// then default to 1 and now. When at least one whole day has passed since the
// last visit the count is incremented, saturating at math.MaxInt, and the last
// visit moves to now.
// Otherwise the count is reset to 1 and the stored last visit is kept as is.
func (t *Tracker) Update(cookies Cookies, state State) (State, error) {
	now := t.now()

	visits := state.Visits
	if visits <= 0 {
		raw, ok := cookies[CookieVisits]
		if !ok || raw == "" {
			visits = 1
		} else {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return state, &ParseError{Field: CookieVisits, Value: raw, Err: err}
			}
			visits = max(n, 1)
		}
	}

	lastVisit := state.LastVisit
	if lastVisit == "" {
		lastVisit = cookies[CookieLastVisit]
	}
	if lastVisit == "" {
		lastVisit = FormatTimestamp(now)
	}

	last, err := ParseTimestamp(lastVisit, now.Location())
	if err != nil {
		return state, err
	}

	next := State{Visits: 1, LastVisit: lastVisit}
	if days := int(now.Sub(last) / day); days > 0 {
		if visits < math.MaxInt {
			visits++
		}
		next = State{Visits: visits, LastVisit: FormatTimestamp(now)}
	}

	t.logger.Debug("visit tracked",
		logger.Component("visit"),
		logger.Count("visits", next.Visits),
		slog.String("last_visit", next.LastVisit),
	)
	return next, nil
}
