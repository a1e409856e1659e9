package earthengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"cropsight/internal/config"
	"cropsight/internal/domain"
	"cropsight/pkg/e"
)

const earthEngineScope = "https://www.googleapis.com/auth/earthengine"

// Client talks to the Earth Engine REST surface: expression evaluation for
// statistics and thumbnail rendering for the heatmap. Session auth is
// established once at construction; the client is safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	project string
	scale   int
	logger  *slog.Logger
}

// NewClient builds an authenticated client from a service-account key file.
func NewClient(ctx context.Context, cfg config.EarthEngineConfig, logger *slog.Logger) (*Client, error) {
	key, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read earth engine credentials: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, key, earthEngineScope)
	if err != nil {
		return nil, fmt.Errorf("parse earth engine credentials: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, creds.TokenSource)
	httpClient.Timeout = cfg.RequestTimeout

	logger.Info("Earth Engine client initialized",
		slog.String("base_url", cfg.BaseURL),
		slog.String("project", cfg.Project),
	)

	return &Client{
		http:    httpClient,
		baseURL: cfg.BaseURL,
		project: cfg.Project,
		scale:   cfg.ReduceScale,
		logger:  logger,
	}, nil
}

// NewClientWithHTTP injects a pre-built HTTP client; used by tests to point
// at a stub server without credentials.
func NewClientWithHTTP(cfg config.EarthEngineConfig, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		http:    httpClient,
		baseURL: cfg.BaseURL,
		project: cfg.Project,
		scale:   cfg.ReduceScale,
		logger:  logger,
	}
}

// FetchStatistics reduces the NDVI band of the median composite over the
// query region. An empty filtered collection or a reduction with no valid
// pixels surfaces as e.ErrNoImagery.
func (c *Client) FetchStatistics(ctx context.Context, q domain.CompositeQuery) (domain.Statistics, error) {
	var stats domain.Statistics

	var size int64
	if err := c.computeValue(ctx, sizeExpression(q), &size); err != nil {
		return stats, err
	}
	if size == 0 {
		return stats, e.Wrap("no suitable Sentinel-2 images found for the specified criteria", e.ErrNoImagery)
	}

	var bands []string
	if err := c.computeValue(ctx, bandNamesExpression(q), &bands); err != nil {
		return stats, err
	}
	if !containsAll(bands, nirBand, redBand) {
		return stats, e.Wrap("required bands (B4 and B8) not found in the image", e.ErrInvalidInput)
	}

	var result map[string]*float64
	if err := c.computeValue(ctx, statsExpression(q, c.scale), &result); err != nil {
		return stats, err
	}

	mean := result[ndviBand+"_mean"]
	if mean == nil {
		// No unmasked pixels inside the buffer after cloud filtering.
		return stats, e.Wrap("ndvi statistics are empty for the region", e.ErrNoImagery)
	}

	return domain.Statistics{
		Mean: *mean,
		Min:  floatOrZero(result[ndviBand+"_min"]),
		Max:  floatOrZero(result[ndviBand+"_max"]),
		Std:  floatOrZero(result[ndviBand+"_stdDev"]),
	}, nil
}

// FetchVisualization renders the NDVI band through the five-stop ramp at the
// requested dimensions and re-encodes the provider's PNG thumbnail as JPEG.
func (c *Client) FetchVisualization(ctx context.Context, q domain.CompositeQuery, width, height int) ([]byte, error) {
	reqBody := map[string]any{
		"expression": visualizeExpression(q),
		"fileFormat": "PNG",
		"grid": map[string]any{
			"dimensions": map[string]int{"width": width, "height": height},
		},
	}

	var thumb struct {
		Name string `json:"name"`
	}
	url := fmt.Sprintf("%s/v1/projects/%s/thumbnails", c.baseURL, c.project)
	if err := c.postJSON(ctx, url, reqBody, &thumb); err != nil {
		return nil, err
	}
	if thumb.Name == "" {
		return nil, e.Wrap("thumbnail response missing name", e.ErrProvider)
	}

	png, err := c.getBytes(ctx, fmt.Sprintf("%s/v1/%s:getPixels", c.baseURL, thumb.Name))
	if err != nil {
		return nil, err
	}

	jpg, err := encodeJPEG(png, width, height)
	if err != nil {
		return nil, e.Wrap("encode ndvi heatmap", err)
	}
	return jpg, nil
}

func (c *Client) computeValue(ctx context.Context, expr map[string]any, out any) error {
	url := fmt.Sprintf("%s/v1/projects/%s/value:compute", c.baseURL, c.project)

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := c.postJSON(ctx, url, map[string]any{"expression": expr}, &envelope); err != nil {
		return err
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return e.Wrap("decode value:compute result", e.ErrProvider)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, url string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return e.Wrap("marshal provider request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return e.Wrap("create provider request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("earth engine request failed: %v: %w", err, e.ErrProvider)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode earth engine response: %v: %w", err, e.ErrProvider)
	}
	return nil
}

func (c *Client) getBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, e.Wrap("create provider request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("earth engine request failed: %v: %w", err, e.ErrProvider)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read earth engine response: %v: %w", err, e.ErrProvider)
	}
	return raw, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return e.Wrap("no suitable Sentinel-2 images found for the specified criteria", e.ErrNoImagery)
	default:
		return fmt.Errorf("earth engine returned status %d: %w", resp.StatusCode, e.ErrProvider)
	}
}

func containsAll(have []string, want ...string) bool {
	set := make(map[string]struct{}, len(have))
	for _, b := range have {
		set[b] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
