package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

// newTestServer returns a server that records requests and replies with the
// canned handler responses.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var seen []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path}
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		seen = append(seen, rec)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestListHitsCollectionPath(t *testing.T) {
	srv, seen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1","firstName":"Ada"}]`))
	})

	c := New(srv.URL)
	records, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].ID())
	assert.Equal(t, "Ada", records[0].Field("firstName"))

	require.Len(t, *seen, 1)
	assert.Equal(t, http.MethodGet, (*seen)[0].Method)
	assert.Equal(t, "/users", (*seen)[0].Path)
}

func TestCreatePostsFieldMapWithoutID(t *testing.T) {
	srv, seen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"42","firstName":"Bob"}`))
	})

	c := New(srv.URL)
	rec, err := c.Create(context.Background(), map[string]any{
		"firstName": "Bob",
		"lastName":  "Lee",
		"email":     "bob@x.com",
		"phone":     "9998887777",
	})
	require.NoError(t, err)
	assert.Equal(t, "42", rec.ID())

	require.Len(t, *seen, 1)
	got := (*seen)[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/users", got.Path)
	assert.Equal(t, "Bob", got.Body["firstName"])
	assert.NotContains(t, got.Body, "id")
}

func TestUpdatePutsToItemPath(t *testing.T) {
	srv, seen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","lastName":"Byron"}`))
	})

	c := New(srv.URL)
	rec, err := c.Update(context.Background(), "1", map[string]any{"lastName": "Byron"})
	require.NoError(t, err)
	assert.Equal(t, "1", rec.ID())

	require.Len(t, *seen, 1)
	assert.Equal(t, http.MethodPut, (*seen)[0].Method)
	assert.Equal(t, "/users/1", (*seen)[0].Path)
}

func TestDeleteHitsItemPath(t *testing.T) {
	srv, seen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	c := New(srv.URL)
	require.NoError(t, c.Delete(context.Background(), "7"))

	require.Len(t, *seen, 1)
	assert.Equal(t, http.MethodDelete, (*seen)[0].Method)
	assert.Equal(t, "/users/7", (*seen)[0].Path)
}

func TestGetHitsItemPath(t *testing.T) {
	srv, seen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"3","firstName":"Grace"}`))
	})

	c := New(srv.URL)
	rec, err := c.Get(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Grace", rec.Field("firstName"))
	assert.Equal(t, "/users/3", (*seen)[0].Path)
}

func TestNonSuccessStatusFails(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := New(srv.URL)
	_, err := c.List(context.Background())
	require.Error(t, err)

	var rf *RequestFailed
	require.True(t, errors.As(err, &rf))
	assert.Equal(t, OpList, rf.Op)
	assert.Equal(t, http.StatusInternalServerError, rf.Status)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	c := New(srv.URL)
	err := c.Delete(context.Background(), "1")
	require.Error(t, err)

	var rf *RequestFailed
	require.True(t, errors.As(err, &rf))
	assert.Equal(t, OpDelete, rf.Op)
	assert.Zero(t, rf.Status)
	assert.Error(t, rf.Err)
}

func TestMetricsCountRequests(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	reg := prometheus.NewRegistry()
	c := New(srv.URL, WithMetrics(NewMetrics(reg)))
	_, err := c.List(context.Background())
	require.NoError(t, err)

	count := testutil.ToFloat64(c.metrics.requests.WithLabelValues(OpList, "200"))
	assert.Equal(t, 1.0, count)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "ada", FormatValue("ada"))
	assert.Equal(t, "42", FormatValue(float64(42)))
	assert.Equal(t, "4.5", FormatValue(4.5))
	assert.Equal(t, "7", FormatValue(7))
	assert.Equal(t, "true", FormatValue(true))
}

func TestWithoutID(t *testing.T) {
	r := Record{"id": "1", "firstName": "Ada"}
	data := r.WithoutID()
	assert.NotContains(t, data, "id")
	assert.Equal(t, "Ada", data["firstName"])
	// original untouched
	assert.Equal(t, "1", r.ID())
}
