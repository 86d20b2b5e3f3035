// Package supabase implements the two calls made against a Supabase table through its
// PostgREST interface: a bulk upsert and a column select.
package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/context/ctxhttp"

	"github.com/affiliate-dashboard/accounts-sync/records"
)

const (
	// MergeDuplicates is the PostgREST directive that turns a bulk insert into an upsert.
	MergeDuplicates = "resolution=merge-duplicates"
)

type Client struct {
	endpoint string
	key      string
	client   *http.Client
	debug    bool
}

type Option func(*Client)

// Response is the status and raw body returned by the table endpoint. Non-success statuses
// are returned as a Response rather than an error so that the caller can report them verbatim.
type Response struct {
	StatusCode int
	Body       []byte
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// Endpoint returns the REST endpoint for a table. A base URL that already names a table
// under /rest/v1/ is taken to be the table endpoint. A base URL ending in /rest/v1 gets
// the table appended.
func Endpoint(base, table string) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return "", fmt.Errorf("missing Supabase URL")
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid Supabase URL '%v' (%w)", base, err)
	} else if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid Supabase URL '%v' - expected something like 'https://<project>.supabase.co'", base)
	}

	path := strings.TrimRight(u.Path, "/")
	u.Path = path
	u.RawPath = ""

	// .../rest/v1/<table>
	if ix := strings.Index(path, "/rest/v1/"); ix >= 0 && path[ix+len("/rest/v1/"):] != "" {
		return u.String(), nil
	}

	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("missing Supabase table")
	}

	if strings.HasSuffix(path, "/rest/v1") {
		return u.JoinPath(strings.TrimSpace(table)).String(), nil
	}

	return u.JoinPath("rest", "v1", strings.TrimSpace(table)).String(), nil
}

func NewClient(endpoint, key string, opts ...Option) *Client {
	c := Client{
		endpoint: endpoint,
		key:      key,
		client:   http.DefaultClient,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return &c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Upsert posts the entire collection in a single request. Conflicting keys are merged by
// the store. If onConflict is set it names the conflict target column(s).
func (c *Client) Upsert(ctx context.Context, rs records.Records, onConflict string) (*Response, error) {
	body, err := rs.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("error encoding records (%w)", err)
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, err
	}

	if onConflict != "" {
		q := u.Query()
		q.Set("on_conflict", onConflict)
		u.RawQuery = q.Encode()
	}

	rq, err := http.NewRequest(http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	c.authorise(rq)
	rq.Header.Set("Content-Type", "application/json")
	rq.Header.Set("Prefer", MergeDuplicates)

	if c.debug {
		log.Printf("%-5s POST %v (%v records, %v bytes)", "DEBUG", u.String(), len(rs), len(body))
	}

	return c.do(ctx, rq)
}

// Select retrieves the requested columns for every row in the table.
func (c *Client) Select(ctx context.Context, columns string) (*Response, error) {
	if strings.TrimSpace(columns) == "" {
		columns = "*"
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("select", columns)
	u.RawQuery = q.Encode()

	rq, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	c.authorise(rq)

	if c.debug {
		log.Printf("%-5s GET %v", "DEBUG", u.String())
	}

	return c.do(ctx, rq)
}

// Upserted returns true for the statuses PostgREST uses to acknowledge a bulk upsert.
func (r Response) Upserted() bool {
	return r.StatusCode == http.StatusOK || r.StatusCode == http.StatusCreated
}

func (r Response) String() string {
	return fmt.Sprintf("%v %s", r.StatusCode, r.Body)
}

func (c *Client) authorise(rq *http.Request) {
	rq.Header.Set("apikey", c.key)
	rq.Header.Set("Authorization", "Bearer "+c.key)
}

func (c *Client) do(ctx context.Context, rq *http.Request) (*Response, error) {
	response, err := ctxhttp.Do(ctx, c.client, rq)
	if err != nil {
		return nil, fmt.Errorf("error sending request to %v (%w)", c.endpoint, err)
	}

	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response from %v (%w)", c.endpoint, err)
	}

	if c.debug {
		log.Printf("%-5s %v %v", "DEBUG", response.StatusCode, string(body))
	}

	return &Response{
		StatusCode: response.StatusCode,
		Body:       body,
	}, nil
}
