package draftkings

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/dfsline/contest-tracker/internal/platform/logging"
	"github.com/dfsline/contest-tracker/internal/platform/resilience"
)

const (
	defaultBaseURL   = "https://www.draftkings.com"
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_10_5) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/48.0.2564.97 Safari/537.36"
)

var (
	// ErrBadArchive marks a ZIP payload that cannot be opened.
	ErrBadArchive = crerr.New("draftkings: malformed export archive")
	// ErrPageLayout marks a detail page whose expected structure is missing,
	// which happens for retired contests.
	ErrPageLayout = crerr.New("draftkings: unrecognized page layout")
)

// ClientConfig carries the borrowed browser session explicitly. There is no
// programmatic login; the Cookie header is lifted from an authenticated
// browser and forwarded on every request.
type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Cookie         string
	UserAgent      string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker *resilience.CircuitBreaker
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	cookie     string
	userAgent  string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		cookie:     strings.TrimSpace(cfg.Cookie),
		userAgent:  userAgent,
		logger:     logger,
		breaker:    cfg.CircuitBreaker,
	}
}

// ContestPage fetches the gamecenter detail page for one contest.
func (c *Client) ContestPage(ctx context.Context, contestID string) ([]byte, error) {
	body, _, err := c.get(ctx, "/contest/gamecenter/"+url.PathEscape(contestID), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch contest page id=%s: %w", contestID, err)
	}
	return body, nil
}

// PayoutPage fetches the details popup holding the payout table and entry fee.
func (c *Client) PayoutPage(ctx context.Context, contestID string) ([]byte, error) {
	query := map[string]string{
		"contestId":        contestID,
		"showDraftButton":  "false",
		"defaultToDetails": "true",
		"layoutType":       "legacy",
	}
	body, _, err := c.get(ctx, "/contest/detailspop", query)
	if err != nil {
		return nil, fmt.Errorf("fetch payout page id=%s: %w", contestID, err)
	}
	return body, nil
}

// ExportStandings fetches the full-standings export and classifies the
// response into a tagged payload. The caller switches on Kind; nothing here
// raises for the routine empty/error-page cases.
func (c *Client) ExportStandings(ctx context.Context, contestID string) (ExportPayload, error) {
	body, header, err := c.get(ctx, "/contest/exportfullstandingscsv/"+url.PathEscape(contestID), nil)
	if err != nil {
		return ExportPayload{}, fmt.Errorf("fetch standings export id=%s: %w", contestID, err)
	}

	payload := ClassifyExport(header, body)
	c.logger.Debug("classified standings export",
		"contest_id", contestID,
		"kind", payload.Kind.String(),
		"bytes", len(body),
	)
	return payload, nil
}

// SalaryCSV fetches the available-players salary export for one draft group.
func (c *Client) SalaryCSV(ctx context.Context, draftGroupID, contestTypeID int) ([]byte, error) {
	query := map[string]string{
		"draftGroupId":  fmt.Sprintf("%d", draftGroupID),
		"contestTypeId": fmt.Sprintf("%d", contestTypeID),
	}
	body, _, err := c.get(ctx, "/lineup/getavailableplayerscsv", query)
	if err != nil {
		return nil, fmt.Errorf("fetch salary csv draft_group=%d: %w", draftGroupID, err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string) ([]byte, http.Header, error) {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return nil, nil, err
		}
	}

	body, header, err := c.doGet(ctx, path, query)
	if c.breaker != nil {
		if err != nil {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return body, header, err
}

func (c *Client) doGet(ctx context.Context, path string, query map[string]string) ([]byte, http.Header, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		values := url.Values{}
		for key, value := range query {
			values.Set(key, value)
		}
		fullURL += "?" + values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, crerr.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, crerr.Newf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, crerr.Wrap(err, "read response body")
	}
	return body, resp.Header, nil
}
