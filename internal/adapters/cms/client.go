// internal/adapters/cms/client.go
package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"lakeshore_hotel/internal/domain"
)

// maxBody bounds how much of a collection response we read.
const maxBody = 16 << 20

// Layout selects the CMS endpoint shape for collection items.
type Layout string

const (
	// LayoutCollections serves {base}/collections/{name}/items.
	LayoutCollections Layout = "collections"
	// LayoutLegacy serves {base}/items/{name}.
	LayoutLegacy Layout = "legacy"
)

type Client struct {
	base   string
	layout Layout
	hc     *http.Client
	key    string
	rl     *rate.Limiter
}

// New builds a content store over the headless CMS HTTP API.
// An empty key sends unauthenticated requests; an empty layout means
// LayoutCollections.
func New(base, key string, layout Layout, rps float64, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("content base URL %q is not absolute", base)
	}
	switch layout {
	case "":
		layout = LayoutCollections
	case LayoutCollections, LayoutLegacy:
	default:
		return nil, fmt.Errorf("unknown content API layout %q", layout)
	}
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		layout: layout,
		hc:     &http.Client{Timeout: timeout},
		key:    key,
		rl:     rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

func (c *Client) Name() string { return "http" }

// ---- Public API ----

// Fetch reads one page of the collection with a single request. It never retries.
func (c *Client) Fetch(ctx context.Context, col domain.CollectionID) (domain.RawPage, error) {
	return c.get(ctx, col, c.itemsURL(col))
}

func (c *Client) itemsURL(col domain.CollectionID) string {
	name := url.PathEscape(string(col))
	if c.layout == LayoutLegacy {
		return fmt.Sprintf("%s/items/%s", c.base, name)
	}
	return fmt.Sprintf("%s/collections/%s/items", c.base, name)
}

// Ping reports whether the CMS answers at all; any non-5xx status counts.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, c.base+"/collections")
	if err != nil {
		return err
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("content store ping: status %d", resp.StatusCode)
	}
	return nil
}

// ---- Internals ----

var (
	ErrUnauthorized = errors.New("cms: unauthorized")
	ErrForbidden    = errors.New("cms: forbidden")
)

func (c *Client) do(ctx context.Context, u string) (*http.Response, error) {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if c.key != "" {
		req.Header.Set("X-API-Key", c.key)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "lakeshore-hotel/1.0")
	return c.hc.Do(req)
}

// get performs one GET and classifies the outcome:
// 404 -> NotFound, network/429/5xx/other -> Transient, undecodable body -> Malformed.
func (c *Client) get(ctx context.Context, col domain.CollectionID, u string) (domain.RawPage, error) {
	resp, err := c.do(ctx, u)
	if err != nil {
		// network error or context canceled
		if ctx.Err() != nil {
			return domain.RawPage{}, domain.Transient(col, ctx.Err())
		}
		return domain.RawPage{}, domain.Transient(col, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		if err != nil {
			return domain.RawPage{}, domain.Transient(col, err)
		}
		page, err := domain.ParseRawPage(b)
		if err != nil {
			return domain.RawPage{}, domain.Malformed(col, err)
		}
		return page, nil

	case http.StatusNotFound:
		log.Debug().Str("collection", string(col)).Str("url", u).Str("layout", string(c.layout)).Msg("collection endpoint not found")
		return domain.RawPage{}, domain.NotFound(col)

	case http.StatusUnauthorized:
		return domain.RawPage{}, domain.Transient(col, ErrUnauthorized)

	case http.StatusForbidden:
		return domain.RawPage{}, domain.Transient(col, ErrForbidden)

	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		// surface the server's Retry-After as a hint; the caller decides
		fe := domain.Transient(col, fmt.Errorf("remote %d", resp.StatusCode))
		fe.RetryAfter = retryAfter(resp)
		return domain.RawPage{}, fe

	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.RawPage{}, domain.Transient(col, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	// seconds form
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	// HTTP-date form
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
