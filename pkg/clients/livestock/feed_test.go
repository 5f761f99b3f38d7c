package livestock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func activityFixture(id, status string) Activity {
	return Activity{
		ID:           id,
		AnimalID:     "animal-1",
		FarmID:       "farm-1",
		Title:        "ฉีดวัคซีน",
		ActivityDate: time.Now(),
		Status:       status,
	}
}

func writeActivityPage(w http.ResponseWriter, activities []Activity, page, limit, total int) {
	totalPages := (total + limit - 1) / limit
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data": map[string]any{
			"activities": activities,
			"pagination": map[string]int{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": totalPages,
			},
		},
	})
}

func TestActivityFeed_RefreshAndLoadMore(t *testing.T) {
	// 25 activities across two pages of 20.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		switch page {
		case "1":
			items := make([]Activity, 20)
			for i := range items {
				items[i] = activityFixture(fmt.Sprintf("a-%d", i), "PENDING")
			}
			writeActivityPage(w, items, 1, 20, 25)
		case "2":
			items := make([]Activity, 5)
			for i := range items {
				items[i] = activityFixture(fmt.Sprintf("a-%d", 20+i), "PENDING")
			}
			writeActivityPage(w, items, 2, 20, 25)
		default:
			t.Errorf("unexpected page %q", page)
		}
	}))
	defer server.Close()

	feed := NewActivityFeed(New(server.URL, "token"))

	assert.NoError(t, feed.Refresh(context.Background()))
	assert.Len(t, feed.Items(), 20)
	assert.True(t, feed.HasMore())
	assert.Equal(t, 25, feed.Total())

	assert.NoError(t, feed.LoadMore(context.Background()))
	assert.Len(t, feed.Items(), 25)
	assert.False(t, feed.HasMore())

	// Nothing left: LoadMore is a quiet no-op.
	assert.NoError(t, feed.LoadMore(context.Background()))
	assert.Len(t, feed.Items(), 25)
}

func TestActivityFeed_StatusFilterResets(t *testing.T) {
	var lastStatus string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastStatus = r.URL.Query().Get("status")
		writeActivityPage(w, []Activity{activityFixture("a-1", "OVERDUE")}, 1, 20, 1)
	}))
	defer server.Close()

	feed := NewActivityFeed(New(server.URL, "token"))

	assert.NoError(t, feed.SetStatusFilter(context.Background(), "OVERDUE"))
	assert.Equal(t, "OVERDUE", lastStatus)
	assert.Len(t, feed.Items(), 1)
}

func TestActivityFeed_SingleLoadInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		writeActivityPage(w, nil, 1, 20, 0)
	}))
	defer server.Close()

	feed := NewActivityFeed(New(server.URL, "token"))

	done := make(chan error, 1)
	go func() { done <- feed.Refresh(context.Background()) }()

	<-started
	assert.ErrorIs(t, feed.Refresh(context.Background()), ErrBusy)

	close(release)
	assert.NoError(t, <-done)
}

func TestActivityFeed_OptimisticUpdateRollsBack(t *testing.T) {
	var gets int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   map[string]string{"code": "INVALID_STATUS_TRANSITION", "message": "terminal"},
			})
			return
		}
		gets++
		writeActivityPage(w, []Activity{activityFixture("a-1", "PENDING")}, 1, 20, 1)
	}))
	defer server.Close()

	feed := NewActivityFeed(New(server.URL, "token"))
	assert.NoError(t, feed.Refresh(context.Background()))

	err := feed.UpdateStatus(context.Background(), "a-1", "COMPLETED", nil)

	assert.Error(t, err)
	assert.Equal(t, 2, gets, "a rejected update must re-fetch the feed from the server")
	items := feed.Items()
	if assert.Len(t, items, 1) {
		assert.Equal(t, "PENDING", items[0].Status, "failed update must show the server's status again")
	}
}

func TestActivityFeed_UpdateStatusAppliesServerRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			completed := activityFixture("a-1", "COMPLETED")
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": completed})
			return
		}
		writeActivityPage(w, []Activity{activityFixture("a-1", "PENDING")}, 1, 20, 1)
	}))
	defer server.Close()

	feed := NewActivityFeed(New(server.URL, "token"))
	assert.NoError(t, feed.Refresh(context.Background()))

	assert.NoError(t, feed.UpdateStatus(context.Background(), "a-1", "COMPLETED", nil))

	items := feed.Items()
	if assert.Len(t, items, 1) {
		assert.Equal(t, "COMPLETED", items[0].Status)
	}
}

func TestActivityFeed_AddCreatesAndReloads(t *testing.T) {
	created := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ถ่ายพยาธิ", body["title"])
			assert.Equal(t, "animal-1", body["animalId"])
			created = true

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    activityFixture("a-2", "PENDING"),
			})
			return
		}
		items := []Activity{activityFixture("a-1", "PENDING")}
		if created {
			items = append([]Activity{activityFixture("a-2", "PENDING")}, items...)
		}
		writeActivityPage(w, items, 1, 20, len(items))
	}))
	defer server.Close()

	feed := NewActivityFeed(New(server.URL, "token"))
	assert.NoError(t, feed.Refresh(context.Background()))
	assert.Len(t, feed.Items(), 1)

	activity, err := feed.Add(context.Background(), CreateActivityRequest{
		AnimalID:     "animal-1",
		Title:        "ถ่ายพยาธิ",
		ActivityDate: time.Now(),
	})

	assert.NoError(t, err)
	assert.Equal(t, "a-2", activity.ID)
	items := feed.Items()
	if assert.Len(t, items, 2) {
		assert.Equal(t, "a-2", items[0].ID)
	}
}
