// Package eastmoney provides a client for the EastMoney quote API
package eastmoney

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/asharescope/internal/common"
	"github.com/bobmcallan/asharescope/internal/interfaces"
	"github.com/bobmcallan/asharescope/internal/models"
)

// flexFloat64 handles JSON values that may be either a number or a string.
// Suspended stocks report "-" for numeric fields.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "-" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

const (
	DefaultKlineBaseURL = "https://push2his.eastmoney.com"
	DefaultSpotBaseURL  = "https://push2.eastmoney.com"
	DefaultTimeout      = 30 * time.Second
	DefaultRateLimit    = 3 // requests per second
	DefaultPageSize     = 200

	// Access token the public quote endpoints expect.
	utToken = "7eea3edcaed734bea9cbfc24409ed989"

	klineFields1 = "f1,f2,f3,f4,f5,f6"
	klineFields2 = "f51,f52,f53,f54,f55,f56,f57,f58,f59,f60,f61"
	spotFields   = "f2,f3,f6,f12,f14,f20"

	// A-share boards: SZ main, SZ ChiNext, SH main, SH STAR, BJ.
	spotMarketFilter = "m:0+t:6,m:0+t:80,m:1+t:2,m:1+t:23,m:0+t:81+s:2048"
)

// Client implements the MarketDataClient interface
type Client struct {
	klineBaseURL string
	spotBaseURL  string
	pageSize     int
	httpClient   *http.Client
	logger       *common.Logger
	limiter      *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithKlineBaseURL sets the kline host
func WithKlineBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.klineBaseURL = baseURL
	}
}

// WithSpotBaseURL sets the spot listing host
func WithSpotBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.spotBaseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond float64, burst int) ClientOption {
	return func(c *Client) {
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithPageSize sets the listing pagination size
func WithPageSize(size int) ClientOption {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// NewClient creates a new EastMoney client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		klineBaseURL: DefaultKlineBaseURL,
		spotBaseURL:  DefaultSpotBaseURL,
		pageSize:     DefaultPageSize,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("EastMoney API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request against the given host
func (c *Client) get(ctx context.Context, baseURL, path string, params url.Values, result interface{}) error {
	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("ut", utToken)

	reqURL := fmt.Sprintf("%s%s?%s", baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", baseURL+path).Msg("EastMoney API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetIndexKline retrieves daily bars for a benchmark index. Indices are
// never price-adjusted; the adjust option is ignored here.
func (c *Client) GetIndexKline(ctx context.Context, code string, opts ...interfaces.KlineOption) (*models.KlineSeries, error) {
	params := applyKlineOptions(opts)
	params.Adjust = "none"
	return c.getKline(ctx, indexSecID(code), code, params)
}

// GetStockKline retrieves daily bars for an equity
func (c *Client) GetStockKline(ctx context.Context, code string, opts ...interfaces.KlineOption) (*models.KlineSeries, error) {
	params := applyKlineOptions(opts)
	return c.getKline(ctx, stockSecID(code), code, params)
}

func applyKlineOptions(opts []interfaces.KlineOption) *interfaces.KlineParams {
	params := &interfaces.KlineParams{
		StartDate: "19900101",
		EndDate:   "20500101",
		Adjust:    "qfq",
	}
	for _, opt := range opts {
		opt(params)
	}
	return params
}

func (c *Client) getKline(ctx context.Context, secid, code string, params *interfaces.KlineParams) (*models.KlineSeries, error) {
	urlParams := url.Values{}
	urlParams.Set("secid", secid)
	urlParams.Set("klt", "101") // daily bars
	urlParams.Set("fqt", adjustParam(params.Adjust))
	urlParams.Set("beg", params.StartDate)
	urlParams.Set("end", params.EndDate)
	urlParams.Set("fields1", klineFields1)
	urlParams.Set("fields2", klineFields2)

	var resp klineResponse
	if err := c.get(ctx, c.klineBaseURL, "/api/qt/stock/kline/get", urlParams, &resp); err != nil {
		return nil, err
	}

	series := &models.KlineSeries{Code: code}
	if resp.Data == nil {
		// No data for the window; a valid, empty series
		return series, nil
	}

	series.Name = resp.Data.Name
	series.Bars = make([]models.KlineBar, 0, len(resp.Data.Klines))
	for _, line := range resp.Data.Klines {
		bar, err := parseKline(line)
		if err != nil {
			return nil, fmt.Errorf("parse kline for %s: %w", code, err)
		}
		series.Bars = append(series.Bars, bar)
	}

	c.logger.Debug().
		Str("secid", secid).
		Int("bars", len(series.Bars)).
		Msg("EastMoney kline fetched")

	return series, nil
}

// klineResponse represents the API response for kline data
type klineResponse struct {
	Data *klineData `json:"data"`
}

type klineData struct {
	Code   string   `json:"code"`
	Name   string   `json:"name"`
	Klines []string `json:"klines"`
}

// parseKline decodes one comma-joined kline row:
// date,open,close,high,low,volume,amount,amplitude,change_pct,change,turnover
func parseKline(line string) (models.KlineBar, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 11 {
		return models.KlineBar{}, fmt.Errorf("kline row has %d fields, want 11", len(fields))
	}

	date, err := time.Parse("2006-01-02", fields[0])
	if err != nil {
		return models.KlineBar{}, fmt.Errorf("kline date %q: %w", fields[0], err)
	}

	nums := make([]float64, 10)
	for i, field := range fields[1:] {
		nums[i] = parseNum(field)
	}

	return models.KlineBar{
		Date:      date,
		Open:      nums[0],
		Close:     nums[1],
		High:      nums[2],
		Low:       nums[3],
		Volume:    nums[4],
		Amount:    nums[5],
		Amplitude: nums[6],
		ChangePct: nums[7],
		Change:    nums[8],
		Turnover:  nums[9],
	}, nil
}

// parseNum reads a numeric kline field; "-" marks a missing value.
func parseNum(s string) float64 {
	if s == "" || s == "-" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// adjustParam maps an adjustment mode to the fqt query value
func adjustParam(adjust string) string {
	switch adjust {
	case "qfq":
		return "1"
	case "hfq":
		return "2"
	default:
		return "0"
	}
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
