package livestock

import (
	"context"
	"sync"
	"time"
)

const (
	badgeDedupeWindow = 60 * time.Second
	focusThrottle     = 5 * time.Second
	badgeMaxAttempts  = 3
	badgeRetryDelay   = 5 * time.Second
)

// BadgeWatcher keeps the notification badge current without hammering the
// API. Polls inside the dedupe window return the cached summary; app-focus
// events are additionally throttled so rapid foreground flips collapse into
// one fetch. Transient failures retry a few times, but auth failures bubble
// up immediately since retrying cannot fix them.
type BadgeWatcher struct {
	client *Client

	mu        sync.Mutex
	current   BadgeSummary
	lastFetch time.Time
	lastFocus time.Time

	// Overridable in tests.
	dedupeWindow time.Duration
	retryDelay   time.Duration
	now          func() time.Time

	// OnUpdate, when set, fires after every successful fetch with the new
	// summary. It runs on the polling goroutine.
	OnUpdate func(BadgeSummary)
}

func NewBadgeWatcher(client *Client) *BadgeWatcher {
	return &BadgeWatcher{
		client:       client,
		dedupeWindow: badgeDedupeWindow,
		retryDelay:   badgeRetryDelay,
		now:          time.Now,
	}
}

// Current returns the last fetched summary. Zero value before the first
// successful fetch.
func (w *BadgeWatcher) Current() BadgeSummary {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Poll fetches the badge unless a fetch landed within the dedupe window, in
// which case the cached summary is returned.
func (w *BadgeWatcher) Poll(ctx context.Context) (BadgeSummary, error) {
	w.mu.Lock()
	if !w.lastFetch.IsZero() && w.now().Sub(w.lastFetch) < w.dedupeWindow {
		cached := w.current
		w.mu.Unlock()
		return cached, nil
	}
	w.mu.Unlock()

	return w.fetch(ctx, false)
}

// ForceRefresh bypasses both the client dedupe window and the server-side
// cache. Used for pull-to-refresh.
func (w *BadgeWatcher) ForceRefresh(ctx context.Context) (BadgeSummary, error) {
	return w.fetch(ctx, true)
}

// OnFocus handles the app returning to the foreground. Focus events within
// the throttle window return the cached summary without touching the network.
func (w *BadgeWatcher) OnFocus(ctx context.Context) (BadgeSummary, error) {
	w.mu.Lock()
	if !w.lastFocus.IsZero() && w.now().Sub(w.lastFocus) < focusThrottle {
		cached := w.current
		w.mu.Unlock()
		return cached, nil
	}
	w.lastFocus = w.now()
	w.mu.Unlock()

	return w.Poll(ctx)
}

// OnReconnect handles connectivity returning. The badge may have drifted
// arbitrarily while offline, so the dedupe window does not apply.
func (w *BadgeWatcher) OnReconnect(ctx context.Context) (BadgeSummary, error) {
	return w.fetch(ctx, false)
}

func (w *BadgeWatcher) fetch(ctx context.Context, bypassServerCache bool) (BadgeSummary, error) {
	query := map[string]string{}
	if bypassServerCache {
		query["refresh"] = "true"
	}

	var lastErr error
	for attempt := 1; attempt <= badgeMaxAttempts; attempt++ {
		var env badgeEnvelope
		err := w.client.get(ctx, "/api/notifications/badge", query, &env)
		if err == nil {
			w.mu.Lock()
			w.current = env.Data
			w.lastFetch = w.now()
			onUpdate := w.OnUpdate
			summary := w.current
			w.mu.Unlock()

			if onUpdate != nil {
				onUpdate(summary)
			}
			return summary, nil
		}

		lastErr = err
		if IsAuthError(err) {
			return BadgeSummary{}, err
		}
		if attempt < badgeMaxAttempts {
			select {
			case <-time.After(w.retryDelay):
			case <-ctx.Done():
				return BadgeSummary{}, ctx.Err()
			}
		}
	}

	return BadgeSummary{}, lastErr
}
