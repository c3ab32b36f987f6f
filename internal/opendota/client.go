// Package opendota provides a minimal read-only client for the OpenDota API.
package opendota

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fasthttp"
)

// DefaultBaseURL is the root endpoint of the public OpenDota API.
const DefaultBaseURL = "https://api.opendota.com/api"

// DefaultMatchLimit is the single-request cap on match history. History beyond
// it is never paginated.
const DefaultMatchLimit = 10000

// Options configures a Client.
type Options struct {
	BaseURL    string
	APIKey     string // optional, sent as ?api_key=
	Timeout    time.Duration
	MatchLimit int
}

// Client is a minimal OpenDota API client.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	matchLimit int
	http       *fasthttp.Client
}

// NewClient returns a client, filling zero options with defaults.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MatchLimit <= 0 {
		opts.MatchLimit = DefaultMatchLimit
	}
	return &Client{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		timeout:    opts.Timeout,
		matchLimit: opts.MatchLimit,
		http: &fasthttp.Client{
			Name:                "dotametrics",
			MaxConnsPerHost:     32,
			ReadTimeout:         opts.Timeout,
			WriteTimeout:        opts.Timeout,
			MaxIdleConnDuration: time.Minute,
			MaxResponseBodySize: 256 << 20,
		},
	}
}

// MatchLimit returns the history cap sent with every match request.
func (c *Client) MatchLimit() int { return c.matchLimit }

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Resource string // e.g. "heroes", "player profile 123", "matches for 123"
	Status   int
	Body     string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("failed to load %s: HTTP %d — %s", e.Resource, e.Status, e.Body)
	}
	return fmt.Sprintf("failed to load %s: HTTP %d", e.Resource, e.Status)
}

// Heroes returns the hero catalog.
func (c *Client) Heroes(ctx context.Context) ([]Hero, error) {
	out, err := doRequest[[]Hero](ctx, c, "heroes", "/heroes", nil, false)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Player returns the profile of one account.
func (c *Client) Player(ctx context.Context, accountID string) (*PlayerResponse, error) {
	return doRequest[PlayerResponse](ctx, c, "player profile "+accountID,
		"/players/"+url.PathEscape(accountID), nil, false)
}

// Matches returns an account's match history in a single request. A response
// that is not a JSON array yields an empty history.
func (c *Client) Matches(ctx context.Context, accountID string) ([]Match, error) {
	q := url.Values{
		"significant": {"0"},
		"limit":       {strconv.Itoa(c.matchLimit)},
	}
	raw, err := doRequest[json.RawMessage](ctx, c, "matches for "+accountID,
		"/players/"+url.PathEscape(accountID)+"/matches", q, true)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(*raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []Match{}, nil
	}
	var matches []Match
	if err := json.Unmarshal(trimmed, &matches); err != nil {
		return nil, fmt.Errorf("decode matches for %s: %w", accountID, err)
	}
	return matches, nil
}

// doRequest performs a GET against the API and JSON-decodes the body into T.
// When withBody is set, up to 200 bytes of an error response are kept.
func doRequest[T any](ctx context.Context, c *Client, resource, path string, query url.Values, withBody bool) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if c.apiKey != "" {
		if query == nil {
			query = url.Values{}
		}
		query.Set("api_key", c.apiKey)
	}
	uri := c.baseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "zstd, gzip")

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}

	body, err := decodeBody(resp)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}

	if status := resp.StatusCode(); status < 200 || status > 299 {
		herr := &HTTPError{Resource: resource, Status: status}
		if withBody {
			snippet := string(bytes.TrimSpace(body))
			if len(snippet) > 200 {
				snippet = snippet[:200]
			}
			herr.Body = snippet
		}
		return nil, herr
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", resource, err)
	}
	return &out, nil
}

// decodeBody returns the response body with any content encoding removed.
func decodeBody(resp *fasthttp.Response) ([]byte, error) {
	switch string(bytes.ToLower(resp.Header.Peek(fasthttp.HeaderContentEncoding))) {
	case "gzip":
		b, err := resp.BodyGunzip()
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return b, nil
	case "zstd":
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		b, err := dec.DecodeAll(resp.Body(), nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return b, nil
	default:
		return append([]byte(nil), resp.Body()...), nil
	}
}
