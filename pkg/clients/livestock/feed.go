package livestock

import (
	"context"
	"errors"
	"strconv"
	"sync"
)

// ErrBusy is returned when a feed load is already in flight. Callers should
// drop the trigger rather than queue it; the running load will land soon.
var ErrBusy = errors.New("livestock: feed load already in flight")

const feedPageSize = 20

// ActivityFeed is the stateful backing for an activity list screen. It owns
// the loaded pages, the status filter, and the in-flight guard, so a screen
// only wires pull-to-refresh to Refresh and scroll-to-bottom to LoadMore.
// All methods are safe for concurrent use.
type ActivityFeed struct {
	client *Client

	mu      sync.Mutex
	busy    bool
	items   []Activity
	page    int
	hasMore bool
	total   int
	status  string
}

func NewActivityFeed(client *Client) *ActivityFeed {
	return &ActivityFeed{
		client:  client,
		hasMore: true,
	}
}

// Items returns a copy of the loaded activities in feed order.
func (f *ActivityFeed) Items() []Activity {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Activity, len(f.items))
	copy(out, f.items)
	return out
}

func (f *ActivityFeed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

func (f *ActivityFeed) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

// Refresh reloads the feed from the first page, replacing loaded items.
func (f *ActivityFeed) Refresh(ctx context.Context) error {
	return f.load(ctx, 1, true)
}

// LoadMore appends the next page. It is a no-op error when nothing is left.
func (f *ActivityFeed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if !f.hasMore {
		f.mu.Unlock()
		return nil
	}
	next := f.page + 1
	f.mu.Unlock()

	return f.load(ctx, next, false)
}

// SetStatusFilter switches the status filter and reloads from page one.
// An empty status clears the filter.
func (f *ActivityFeed) SetStatusFilter(ctx context.Context, status string) error {
	f.mu.Lock()
	f.status = status
	f.mu.Unlock()
	return f.load(ctx, 1, true)
}

func (f *ActivityFeed) load(ctx context.Context, page int, replace bool) error {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return ErrBusy
	}
	f.busy = true
	status := f.status
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.busy = false
		f.mu.Unlock()
	}()

	query := map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(feedPageSize),
	}
	if status != "" {
		query["status"] = status
	}

	var env activityListEnvelope
	if err := f.client.get(ctx, "/api/activities", query, &env); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if replace {
		f.items = env.Data.Activities
	} else {
		f.items = append(f.items, env.Data.Activities...)
	}
	f.page = env.Data.Pagination.Page
	f.total = env.Data.Pagination.Total
	f.hasMore = env.Data.Pagination.Page < env.Data.Pagination.TotalPages
	return nil
}

// Add records a new activity and reloads the feed so the new entry lands in
// server order. A reload already in flight is left to finish on its own.
func (f *ActivityFeed) Add(ctx context.Context, req CreateActivityRequest) (Activity, error) {
	var env activityEnvelope
	if err := f.client.post(ctx, "/api/activities", req, &env); err != nil {
		return Activity{}, err
	}
	if err := f.load(ctx, 1, true); err != nil && !errors.Is(err, ErrBusy) {
		return env.Data, err
	}
	return env.Data, nil
}

// UpdateStatus changes an activity's status optimistically: the local item
// flips immediately so the UI feels instant. If the server rejects the
// change, the feed reloads from page one so local state matches the server
// again instead of patching the one item back.
func (f *ActivityFeed) UpdateStatus(ctx context.Context, activityID, status string, statusReason *string) error {
	f.mu.Lock()
	idx := -1
	for i := range f.items {
		if f.items[i].ID == activityID {
			idx = i
			break
		}
	}
	if idx < 0 {
		f.mu.Unlock()
		return errors.New("livestock: activity not loaded in feed")
	}
	f.items[idx].Status = status
	f.items[idx].StatusReason = statusReason
	f.mu.Unlock()

	body := map[string]any{"status": status}
	if statusReason != nil {
		body["statusReason"] = *statusReason
	}

	var env activityEnvelope
	if err := f.client.put(ctx, "/api/activities/"+activityID, body, &env); err != nil {
		// Best effort; the update error is the one the caller acts on.
		_ = f.load(ctx, 1, true)
		return err
	}

	f.mu.Lock()
	if idx < len(f.items) && f.items[idx].ID == activityID {
		f.items[idx] = env.Data
	}
	f.mu.Unlock()
	return nil
}
