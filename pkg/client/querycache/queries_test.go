package querycache

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/coaching-center-api/pkg/client"
)

type fakeAPI struct {
	mu    sync.Mutex
	hits  map[string]int
	query map[string]string
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.URL.Path]++
		f.query[r.URL.Path] = r.URL.RawQuery
		f.mu.Unlock()

		var data interface{}
		switch r.URL.Path {
		case "/courses":
			data = []map[string]interface{}{{"id": "c1", "title": "Algebra", "class": 9}}
		case "/team":
			data = []map[string]interface{}{{"id": "t1", "name": "Rina", "type": "team", "qualifications": []string{}, "areasOfInterest": []string{}}}
		case "/videos":
			data = []map[string]interface{}{{"id": "v1", "youtubeId": "yt1", "featured": true, "isActive": true}}
		case "/testimonials":
			data = []map[string]interface{}{{"id": "s1", "rating": 5, "isActive": true, "isApproved": true}}
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "count": 1, "data": data}))
	})
}

func (f *fakeAPI) seen(path string) (int, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path], f.query[path]
}

func newQueries(t *testing.T) (*Queries, *fakeAPI) {
	api := &fakeAPI{hits: map[string]int{}, query: map[string]string{}}
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	return NewQueries(client.New(srv.URL), New(Config{})), api
}

func TestPrefetchWarmsEssentialData(t *testing.T) {
	q, api := newQueries(t)
	ctx := context.Background()

	require.NoError(t, q.PrefetchEssential(ctx))
	assert.Equal(t, 3, q.Cache().Len())
	_, teamQuery := api.seen("/team")
	assert.Equal(t, "type=team", teamQuery)
	_, videoQuery := api.seen("/videos")
	assert.Equal(t, "featured=true&isActive=true&limit=3", videoQuery)

	courses, err := q.Courses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Algebra", courses[0].Title)

	team, err := q.Team(ctx, "")
	require.NoError(t, err)
	require.Len(t, team, 1)

	videos, err := q.Videos(ctx, VideoOptions{Limit: FeaturedVideoLimit, Featured: true})
	require.NoError(t, err)
	require.Len(t, videos, 1)

	for _, path := range []string{"/courses", "/team", "/videos"} {
		hits, _ := api.seen(path)
		assert.Equal(t, 1, hits, path)
	}
}

func TestTestimonialsRequestOnlyVisibleEntries(t *testing.T) {
	q, api := newQueries(t)
	items, err := q.Testimonials(context.Background(), TestimonialOptions{Limit: 6})
	require.NoError(t, err)
	require.Len(t, items, 1)
	_, query := api.seen("/testimonials")
	assert.Equal(t, "isActive=true&isApproved=true&limit=6", query)
}

func TestPrefetchReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	q := NewQueries(client.New(srv.URL), New(Config{}))
	assert.Error(t, q.PrefetchEssential(context.Background()))
	assert.Zero(t, q.Cache().Len())
}
