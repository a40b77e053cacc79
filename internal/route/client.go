package route

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// HTTPClient talks to the optimal-path service over HTTP. The points go in
// the JSON body; the algorithm and constraints go in the query string.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *log.Logger
}

// NewHTTPClient returns a client for the service at baseURL.
func NewHTTPClient(baseURL string, logger *log.Logger) *HTTPClient {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 60 * time.Second},
		Logger:  logger,
	}
}

// Query encodes the algorithm and the constraints that are set.
func (r Request) Query() url.Values {
	q := url.Values{}
	alg := r.Algorithm
	if alg == "" {
		alg = AStar
	}
	q.Set("algorithm", string(alg))
	c := r.Constraints
	setFloat := func(key string, v *float64) {
		if v != nil {
			q.Set(key, strconv.FormatFloat(*v, 'g', -1, 64))
		}
	}
	setInt := func(key string, v *int) {
		if v != nil {
			q.Set(key, strconv.Itoa(*v))
		}
	}
	setFloat("max_slope", c.MaxSlope)
	setFloat("min_elev", c.MinElevation)
	setFloat("max_elev", c.MaxElevation)
	setInt("grid_size", c.GridSize)
	setFloat("max_step", c.MaxStep)
	setFloat("max_angle", c.MaxAngle)
	setInt("buffer", c.BoundingBufferDistance)
	return q
}

// Route posts the request and returns the path with its statistics. Any
// statistic the service leaves out is computed locally.
func (c *HTTPClient) Route(ctx context.Context, req Request) (Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("route: encode request: %w", err)
	}
	u := c.BaseURL + "/optimal-path?" + req.Query().Encode()
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("route: %w", err)
	}
	hreq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	c.Logger.Debug("requesting route", "url", u, "from", req.Point1, "to", req.Point2)
	resp, err := c.HTTP.Do(hreq)
	if err != nil {
		c.Logger.Warn("route request failed", "err", err)
		return Result{}, fmt.Errorf("route: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		c.Logger.Warn("route service error", "status", resp.StatusCode, "body", string(msg))
		return Result{}, fmt.Errorf("route: service returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var raw struct {
		Path [][]float64 `json:"path"`
		Result
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Result{}, fmt.Errorf("route: decode response: %w", err)
	}
	path := make([][3]float64, 0, len(raw.Path))
	for i, p := range raw.Path {
		if len(p) != 3 {
			return Result{}, fmt.Errorf("route: path point %d has %d coordinates", i, len(p))
		}
		path = append(path, [3]float64{p[0], p[1], p[2]})
	}
	if len(path) == 0 {
		return Result{}, ErrNoRoute
	}

	res := raw.Result
	res.Path = path
	if res.Length == 0 {
		stats := Summarize(path)
		stats.Path = path
		res = stats
	}
	c.Logger.Info("route found", "points", len(path), "length", res.Length, "took", time.Since(start))
	return res, nil
}
