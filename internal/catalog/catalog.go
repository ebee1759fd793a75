// package catalog provides a client of the event catalog cloud API. Only
// the calls needed by the importer service are implemented: token
// validation and application domain lookups.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	// _maxBodySize is the maximum size of a response body read.
	_maxBodySize = 4 << 20 // 4 MB.

	// _pageFetchers is the maximum amount of concurrent page requests.
	_pageFetchers = 4

	// _maxPages is the default maximum amount of pages of a single
	// listing.
	_maxPages = 100

	// _tokenPermissionsPath is the token validation endpoint.
	_tokenPermissionsPath = "/api/v0/token/permissions"

	// _domainsPath is the application domains endpoint.
	_domainsPath = "/api/v2/architecture/applicationDomains"
)

// Config holds the settings of the cloud API communication.
type Config struct {
	// Timeout is the timeout of a single API call.
	Timeout time.Duration `default:"30s" yaml:"timeout"`

	// RateLimit is the maximum amount of API calls per second made by
	// the whole service.
	RateLimit float64 `default:"10" yaml:"rate_limit"`

	// Burst is the amount of API calls allowed to exceed the rate limit.
	Burst int `default:"5" yaml:"burst"`

	// PageSize is the page size used when listing objects.
	PageSize int `default:"20" yaml:"page_size"`

	// MaxPages is the maximum amount of pages a listing may span.
	MaxPages int `default:"100" yaml:"max_pages"`

	// DefaultRegion is the region used when a request does not select
	// one.
	DefaultRegion string `default:"US" yaml:"default_region"`
}

// API holds the resources shared by all clients of the cloud API.
type API struct {
	log *slog.Logger

	http     *http.Client
	limiter  *rate.Limiter
	pageSize int
	maxPages int
}

// NewAPI creates a new cloud API.
func NewAPI(log *slog.Logger, cfg Config) *API {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = _maxPages
	}

	return &API{
		log:      log.With("job", "catalog"),
		http:     &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(limit, burst),
		pageSize: pageSize,
		maxPages: maxPages,
	}
}

// Client returns a client authenticated with the given token.
func (a *API) Client(baseURL, token string) *Client {
	return &Client{
		api:   a,
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
	}
}

// Client calls the cloud API on behalf of a single token.
type Client struct {
	api *API

	base  string
	token string
}

// Domain is an application domain.
type Domain struct {
	// ID is the application domain identifier.
	ID string `json:"id"`

	// Name is the application domain name.
	Name string `json:"name"`
}

// pagination describes the position of a page in a listing.
type pagination struct {
	PageNumber int  `json:"pageNumber"`
	PageSize   int  `json:"pageSize"`
	NextPage   *int `json:"nextPage"`
	TotalPages int  `json:"totalPages"`
}

// domainsPage is a single page of the application domains listing.
type domainsPage struct {
	Data []Domain `json:"data"`
	Meta struct {
		Pagination pagination `json:"pagination"`
	} `json:"meta"`
}

// ValidateToken checks whether the token is accepted by the cloud API.
func (c *Client) ValidateToken(ctx context.Context) error {
	if err := c.do(ctx, _tokenPermissionsPath, nil, nil); err != nil {
		return err
	}

	c.api.log.InfoContext(ctx, "successful token validation")

	return nil
}

// ApplicationDomains returns all application domains visible to the
// token, in the order returned by the API.
func (c *Client) ApplicationDomains(ctx context.Context) ([]Domain, error) {
	first, err := c.domainsPage(ctx, 1, "")
	if err != nil {
		return nil, err
	}

	total := first.Meta.Pagination.TotalPages
	if len(first.Data) == 0 || first.Meta.Pagination.NextPage == nil || total <= 1 {
		return first.Data, nil
	}

	if total > c.api.maxPages {
		return nil, fmt.Errorf("%w: %d pages exceed the limit of %d", ErrTooManyPages, total, c.api.maxPages)
	}

	c.api.log.DebugContext(ctx, "fetching remaining application domain pages", slog.Int("pages", total))

	pages := make([][]Domain, total)
	pages[0] = first.Data

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(_pageFetchers)

	for number := 2; number <= total; number++ {
		number := number

		g.Go(func() error {
			page, err := c.domainsPage(gctx, number, "")
			if err != nil {
				return err
			}

			pages[number-1] = page.Data

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var domains []Domain
	for _, page := range pages {
		domains = append(domains, page...)
	}

	return domains, nil
}

// ApplicationDomain returns the application domain with the given id.
func (c *Client) ApplicationDomain(ctx context.Context, id string) (Domain, error) {
	var resp struct {
		Data Domain `json:"data"`
	}

	err := c.do(ctx, _domainsPath+"/"+url.PathEscape(id), nil, &resp)
	if err != nil {
		var serr *StatusError
		if errors.As(err, &serr) && serr.Code == http.StatusNotFound {
			return Domain{}, fmt.Errorf("%w: id %q", ErrDomainNotFound, id)
		}

		return Domain{}, err
	}

	return resp.Data, nil
}

// FindApplicationDomain returns the application domain with the given
// name.
func (c *Client) FindApplicationDomain(ctx context.Context, name string) (Domain, error) {
	page, err := c.domainsPage(ctx, 1, name)
	if err != nil {
		return Domain{}, err
	}

	for _, d := range page.Data {
		if d.Name == name {
			return d, nil
		}
	}

	return Domain{}, fmt.Errorf("%w: name %q", ErrDomainNotFound, name)
}

// domainsPage fetches a single page of application domains, optionally
// filtered by name.
func (c *Client) domainsPage(ctx context.Context, number int, name string) (domainsPage, error) {
	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(c.api.pageSize))
	query.Set("pageNumber", strconv.Itoa(number))

	if name != "" {
		query.Set("name", name)
	}

	var page domainsPage
	if err := c.do(ctx, _domainsPath, query, &page); err != nil {
		return domainsPage{}, err
	}

	return page, nil
}

// do performs a GET request and decodes the response into out, unless
// it is nil.
func (c *Client) do(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.api.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	c.api.log.DebugContext(ctx, "calling cloud api", slog.String("path", path))

	resp, err := c.api.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %s", path, Redact(err.Error()))
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, _maxBodySize)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(body)

		return &StatusError{
			Code:    resp.StatusCode,
			Message: Redact(strings.TrimSpace(string(msg))),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}

	return nil
}
