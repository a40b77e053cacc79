package route

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithm(t *testing.T) {
	for _, name := range []string{"astar", "dijkstra", "greedy", "theta_star"} {
		a, err := ParseAlgorithm(name)
		require.NoError(t, err)
		assert.Equal(t, name, string(a))
	}
	a, err := ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, AStar, a)
	_, err = ParseAlgorithm("bfs")
	assert.Error(t, err)

	assert.Equal(t, Dijkstra, AStar.Next())
	assert.Equal(t, AStar, ThetaStar.Next())
}

func TestQuery(t *testing.T) {
	minElev := 12.5
	req := Request{Algorithm: Greedy, Constraints: DefaultConstraints()}
	req.Constraints.MinElevation = &minElev

	q := req.Query()
	assert.Equal(t, "greedy", q.Get("algorithm"))
	assert.Equal(t, "100", q.Get("max_slope"))
	assert.Equal(t, "12.5", q.Get("min_elev"))
	assert.Equal(t, "100", q.Get("grid_size"))
	assert.Equal(t, "10000", q.Get("max_step"))
	assert.Equal(t, "180", q.Get("max_angle"))
	assert.Equal(t, "10", q.Get("buffer"))
	assert.False(t, q.Has("max_elev"))

	q = Request{}.Query()
	assert.Equal(t, "astar", q.Get("algorithm"))
	assert.Len(t, q, 1)
}

func TestHTTPClientRoute(t *testing.T) {
	var got struct {
		Point1 []float64 `json:"point1"`
		Point2 []float64 `json:"point2"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/optimal-path", r.URL.Path)
		assert.Equal(t, "dijkstra", r.URL.Query().Get("algorithm"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"path": [[0,0,0],[3,4,5],[3,4,10]]}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", log.New(io.Discard))
	res, err := c.Route(context.Background(), Request{
		Point1:    [3]float64{1, 2, 3},
		Point2:    [3]float64{4, 5, 6},
		Algorithm: Dijkstra,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, got.Point1)
	assert.Equal(t, []float64{4, 5, 6}, got.Point2)
	assert.Equal(t, [][3]float64{{0, 0, 0}, {3, 4, 5}, {3, 4, 10}}, res.Path)
	assert.InDelta(t, 5*1.4142135623730951+5, res.Length, 1e-9)
	assert.Equal(t, 1.0, res.AverageSlope)
}

func TestHTTPClientKeepsServiceStatistics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"path": [[0,0,0],[1,0,1]], "length": 99, "maxSlope": 7}`)
	}))
	defer srv.Close()

	res, err := NewHTTPClient(srv.URL, nil).Route(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 99.0, res.Length)
	assert.Equal(t, 7.0, res.MaxSlope)
	assert.Len(t, res.Path, 2)
}

func TestHTTPClientFailures(t *testing.T) {
	for _, tc := range []struct {
		name   string
		status int
		body   string
		noPath bool
	}{
		{"empty path", http.StatusOK, `{"path": []}`, true},
		{"missing path", http.StatusOK, `{}`, true},
		{"server error", http.StatusInternalServerError, `{"detail":"boom"}`, false},
		{"bad json", http.StatusOK, `{"path": [`, false},
		{"short point", http.StatusOK, `{"path": [[1,2]]}`, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			_, err := NewHTTPClient(srv.URL, nil).Route(context.Background(), Request{})
			require.Error(t, err)
			assert.Equal(t, tc.noPath, errors.Is(err, ErrNoRoute))
		})
	}
}

func TestHTTPClientHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHTTPClient(srv.URL, nil).Route(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Result{}, Summarize(nil))
	assert.Equal(t, Result{}, Summarize([][3]float64{{1, 2, 3}}))

	res := Summarize([][3]float64{{0, 0, 0}, {0, 4, 2}, {0, 5, 2}})
	assert.InDelta(t, 4.47213595499958+1, res.Length, 1e-9)
	assert.Equal(t, 0.25, res.AverageSlope)
	assert.Equal(t, 0.0, res.MinSlope)
	assert.Equal(t, 0.5, res.MaxSlope)
	// Four unit steps at 0.5 then one flat step.
	assert.InDelta(t, 0.4, res.LocalAverageSlope, 1e-12)
	assert.Equal(t, 0.0, res.LocalMinSlope)
	assert.InDelta(t, 0.5, res.LocalMaxSlope, 1e-12)
}

func TestSummarizeSkipsVerticalSegments(t *testing.T) {
	res := Summarize([][3]float64{{0, 0, 0}, {0, 0, 10}})
	assert.Equal(t, 10.0, res.Length)
	assert.Equal(t, 0.0, res.AverageSlope)
	assert.Equal(t, 0.0, res.LocalMaxSlope)
}
