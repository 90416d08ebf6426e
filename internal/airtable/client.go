package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/models"
)

// DefaultAPIURL is the public Airtable REST endpoint
const DefaultAPIURL = "https://api.airtable.com/v0"

var ErrMissingCredentials = errors.New("airtable credentials not configured")

// APIError is returned for any non-2xx response
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("airtable API error: %d - %s", e.Status, e.Body)
}

type listResponse struct {
	Records []models.Record `json:"records"`
	Offset  string          `json:"offset,omitempty"`
}

type createRequest struct {
	Typecast bool           `json:"typecast,omitempty"`
	Records  []createRecord `json:"records"`
}

type createRecord struct {
	Fields map[string]any `json:"fields"`
}

// Client reads and writes records of one Airtable base
type Client struct {
	http   *http.Client
	apiURL string
	baseID string
	apiKey string
	log    *zap.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithAPIURL points the client at another endpoint (tests, proxies)
func WithAPIURL(u string) Option {
	return func(c *Client) { c.apiURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger attaches a logger
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for the given base
func New(apiKey, baseID string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	baseID = strings.TrimSpace(baseID)
	if apiKey == "" || baseID == "" {
		return nil, ErrMissingCredentials
	}

	c := &Client{
		http:   &http.Client{Timeout: 30 * time.Second},
		apiURL: DefaultAPIURL,
		baseID: baseID,
		apiKey: apiKey,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/%s/%s", c.apiURL, url.PathEscape(c.baseID), url.PathEscape(table))
}

// ListRecords fetches every record of a table, following the offset cursor
// page by page until the store stops returning one.
func (c *Client) ListRecords(ctx context.Context, table string) ([]models.Record, error) {
	all := []models.Record{}
	offset := ""
	pages := 0

	for {
		u, err := url.Parse(c.tableURL(table))
		if err != nil {
			return nil, fmt.Errorf("build url for %s: %w", table, err)
		}
		if offset != "" {
			q := u.Query()
			q.Set("offset", offset)
			u.RawQuery = q.Encode()
		}

		var page listResponse
		if err := c.do(ctx, http.MethodGet, u.String(), nil, &page); err != nil {
			return nil, fmt.Errorf("list %s page %d: %w", table, pages+1, err)
		}
		pages++

		for _, rec := range page.Records {
			if rec.Fields == nil {
				rec.Fields = map[string]any{}
			}
			all = append(all, rec)
		}

		if page.Offset == "" {
			break
		}
		offset = page.Offset
	}

	c.log.Debug("airtable table fetched",
		zap.String("table", table),
		zap.Int("records", len(all)),
		zap.Int("pages", pages),
	)
	return all, nil
}

// CreateRecord inserts one record and returns it as stored
func (c *Client) CreateRecord(ctx context.Context, table string, fields map[string]any, typecast bool) (models.Record, error) {
	body, err := json.Marshal(createRequest{
		Typecast: typecast,
		Records:  []createRecord{{Fields: fields}},
	})
	if err != nil {
		return models.Record{}, fmt.Errorf("encode record: %w", err)
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodPost, c.tableURL(table), body, &resp); err != nil {
		return models.Record{}, fmt.Errorf("create %s record: %w", table, err)
	}
	if len(resp.Records) == 0 {
		return models.Record{}, fmt.Errorf("create %s record: empty response", table)
	}
	return resp.Records[0], nil
}

func (c *Client) do(ctx context.Context, method, target string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
