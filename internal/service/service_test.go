package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"videofeed/ingest/internal/catalog"
	"videofeed/ingest/internal/client"
	"videofeed/ingest/internal/config"
	"videofeed/ingest/internal/domain"
	"videofeed/ingest/internal/state"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var feed = config.FeedConfig{
	RootURL:          "http://feed.test/categories",
	CategoryItemsURL: "http://feed.test/videos/",
}

type mapFetcher map[string]string

func (m mapFetcher) FetchDocument(_ context.Context, url string) (client.Document, error) {
	body, ok := m[url]
	if !ok {
		return nil, &domain.TransportError{URL: url, Err: errors.New("404 Not Found")}
	}
	return client.Document(body), nil
}

type memoryStore struct {
	mu     sync.Mutex
	videos []*domain.Video
	err    error
}

func (s *memoryStore) Insert(_ context.Context, video *domain.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.videos = append(s.videos, video)
	return nil
}

func (s *memoryStore) urls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, v := range s.videos {
		out = append(out, v.VideoURL)
	}
	return out
}

func goodFeed() mapFetcher {
	return mapFetcher{
		feed.RootURL: `{"data":[{"name":"Comedy","category_id":"1"},{"name":"Drama","category_id":"2"}]}`,
		feed.CategoryItemsURL + "1": `{"data":[
			{"title":"A","renditions":{"mp4":[{"url":"http://x/a.mp4"}]}},
			{"title":"skip","renditions":{"mp4":[]}}
		]}`,
		feed.CategoryItemsURL + "2": `{"data":[{"title":"B","renditions":{"mp4":[{"url":"http://x/a.mp4"}]}}]}`,
	}
}

func newStateManager(t *testing.T) state.StateManager {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return state.NewRedisStateManager(rdb)
}

func fixedClock() func() time.Time {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func TestIngest_StoresInEverySink(t *testing.T) {
	sm := newStateManager(t)
	db := &memoryStore{}
	stream := &memoryStore{}

	svc := NewService(catalog.NewBuilder(goodFeed(), nil), sm, feed,
		Sink{Name: "postgres", Store: db},
		Sink{Name: "redis", Store: stream},
	)
	svc.now = fixedClock()

	summary, err := svc.Ingest(context.Background())
	require.NoError(t, err)

	want := []string{"http://x/a.mp4?_t=0", "http://x/a.mp4?_t=1"}
	assert.Equal(t, want, db.urls())
	assert.Equal(t, want, stream.urls())

	assert.Equal(t, 2, summary.Categories)
	assert.Equal(t, 3, summary.Items)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 2, summary.Records)
	assert.True(t, summary.Succeeded())

	last, err := sm.GetLastRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, summary, last)
}

func TestIngest_BuildFailureWritesNothing(t *testing.T) {
	sm := newStateManager(t)
	db := &memoryStore{}

	fetcher := goodFeed()
	fetcher[feed.CategoryItemsURL+"2"] = `{"items":[]}`

	svc := NewService(catalog.NewBuilder(fetcher, nil), sm, feed, Sink{Name: "postgres", Store: db})

	summary, err := svc.Ingest(context.Background())
	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)

	assert.Empty(t, db.urls())
	assert.Zero(t, summary.Records)
	assert.False(t, summary.Succeeded())

	last, err := sm.GetLastRun(context.Background())
	require.NoError(t, err)
	assert.Contains(t, last.Error, "schema error")
}

func TestIngest_SinkFailure(t *testing.T) {
	failing := &memoryStore{err: errors.New("disk full")}

	svc := NewService(catalog.NewBuilder(goodFeed(), nil), nil, feed,
		Sink{Name: "postgres", Store: failing},
	)

	summary, err := svc.Ingest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink postgres")
	assert.Contains(t, summary.Error, "disk full")
}

func TestIngest_NoSinks(t *testing.T) {
	svc := NewService(catalog.NewBuilder(goodFeed(), nil), nil, feed)

	summary, err := svc.Ingest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Records)
}

func TestPreviousRun(t *testing.T) {
	t.Run("without state manager", func(t *testing.T) {
		svc := NewService(catalog.NewBuilder(goodFeed(), nil), nil, feed)
		_, err := svc.PreviousRun(context.Background())
		assert.ErrorIs(t, err, state.ErrNoRun)
	})

	t.Run("after a run", func(t *testing.T) {
		svc := NewService(catalog.NewBuilder(goodFeed(), nil), newStateManager(t), feed)
		svc.now = fixedClock()

		_, err := svc.PreviousRun(context.Background())
		assert.ErrorIs(t, err, state.ErrNoRun)

		first, err := svc.Ingest(context.Background())
		require.NoError(t, err)

		last, err := svc.PreviousRun(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first, last)

		// The second run reads the first one back before overwriting it.
		second, err := svc.Ingest(context.Background())
		require.NoError(t, err)
		assert.True(t, second.StartedAt.After(first.FinishedAt))
	})
}
