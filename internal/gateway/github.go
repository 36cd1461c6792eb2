// Package gateway provides a gateway to the hosting service's REST API,
// implementing the paginated-fetch protocol on top of net/http with HTTP
// Basic authentication.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matks/traces/internal/domain"
)

// lastPagePattern extracts the last-page number from a pagination Link
// header, e.g. `<https://api.github.com/orgs/acme/repos?page=12>; rel="last"`.
var lastPagePattern = regexp.MustCompile(`[?&]page=(\d+)[^>]*>;\s*rel="last"`)

// perPage is the page size requested on paginated endpoints.
const perPage = 100

// Endpoints holds the URL templates of the three consumed API resources.
// Each template carries one %s verb for its path parameter. Injecting them
// lets tests point the client at a local double.
type Endpoints struct {
	OrganizationRepositories string // filled with the organization name
	RepositoryContributors   string // filled with the repository full name
	UserLookup               string // filled with the login
}

// DefaultEndpoints targets the public GitHub API.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		OrganizationRepositories: "https://api.github.com/orgs/%s/repos",
		RepositoryContributors:   "https://api.github.com/repos/%s/contributors",
		UserLookup:               "https://api.github.com/users/%s",
	}
}

// PageFunc is invoked once per fetched page of a paginated resource, with
// the page index just fetched and the discovered total page count.
type PageFunc func(page, total int)

// Fetcher defines the behavior of a gateway for fetching information from
// the hosting service.
type Fetcher interface {
	FetchOrganizationRepositories(ctx context.Context, organization string, onPage PageFunc) ([]domain.Repository, error)
	FetchContributors(ctx context.Context, fullName string) ([]domain.Contributor, error)
	FetchUser(ctx context.Context, login string) (map[string]any, error)
}

// Client is the concrete implementation of the Fetcher interface.
type Client struct {
	httpClient *http.Client
	endpoints  Endpoints
	user       string
	password   string
	logger     *log.Logger
}

// NewClient creates a Client authenticating every request with the given
// Basic credential pair. The timeout bounds each individual HTTP call.
func NewClient(endpoints Endpoints, user, password string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoints:  endpoints,
		user:       user,
		password:   password,
		logger:     logger,
	}
}

// FetchOrganizationRepositories retrieves every repository record of an
// organization, in the service's return order.
func (c *Client) FetchOrganizationRepositories(ctx context.Context, organization string, onPage PageFunc) ([]domain.Repository, error) {
	endpoint := fmt.Sprintf(c.endpoints.OrganizationRepositories, organization)
	records, err := c.fetchAllPages(ctx, endpoint, onPage)
	if err != nil {
		return nil, fmt.Errorf("list repositories of %s: %w", organization, err)
	}
	repositories := make([]domain.Repository, 0, len(records))
	for _, record := range records {
		var repository domain.Repository
		if err := json.Unmarshal(record, &repository); err != nil {
			return nil, fmt.Errorf("decode repository record: %w", err)
		}
		repositories = append(repositories, repository)
	}
	return repositories, nil
}

// FetchContributors retrieves every contributor record of a repository, in
// the service's return order.
func (c *Client) FetchContributors(ctx context.Context, fullName string) ([]domain.Contributor, error) {
	endpoint := fmt.Sprintf(c.endpoints.RepositoryContributors, fullName)
	records, err := c.fetchAllPages(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("list contributors of %s: %w", fullName, err)
	}
	contributors := make([]domain.Contributor, 0, len(records))
	for _, record := range records {
		var contributor domain.Contributor
		if err := json.Unmarshal(record, &contributor); err != nil {
			return nil, fmt.Errorf("decode contributor record: %w", err)
		}
		contributors = append(contributors, contributor)
	}
	return contributors, nil
}

// FetchUser retrieves the full profile of a login as a field-name to value
// mapping, passing every profile field through. A non-success status yields
// an empty profile rather than an error.
func (c *Client) FetchUser(ctx context.Context, login string) (map[string]any, error) {
	endpoint := fmt.Sprintf(c.endpoints.UserLookup, login)
	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("lookup user %s: %w", login, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("user lookup returned non-success status, keeping profile empty",
			"login", login, "status", resp.StatusCode)
		return map[string]any{}, nil
	}
	var profile map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode profile of %s: %w", login, err)
	}
	return profile, nil
}

// fetchAllPages retrieves every page of a paginated resource and returns the
// raw JSON array elements flattened in page order. The first request probes
// page 1: a non-success status there means "nothing found" and yields an
// empty sequence; a non-success status on a later page is a hard error.
func (c *Client) fetchAllPages(ctx context.Context, endpoint string, onPage PageFunc) ([]json.RawMessage, error) {
	resp, err := c.get(ctx, pageURL(endpoint, 1))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		c.logger.Debug("first page returned non-success status, treating as empty",
			"endpoint", endpoint, "status", resp.StatusCode)
		return nil, nil
	}

	total := lastPage(resp.Header.Get("Link"))
	records, err := decodePage(resp)
	if err != nil {
		return nil, err
	}
	if onPage != nil {
		onPage(1, total)
	}

	for page := 2; page <= total; page++ {
		resp, err := c.get(ctx, pageURL(endpoint, page))
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch page %d: unexpected status %d", page, resp.StatusCode)
		}
		more, err := decodePage(resp)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		records = append(records, more...)
		if onPage != nil {
			onPage(page, total)
		}
		c.logger.Debug("fetched page", "endpoint", endpoint, "page", page, "total", total)
	}
	return records, nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.SetBasicAuth(c.user, c.password)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

func pageURL(endpoint string, page int) string {
	separator := "?"
	if strings.Contains(endpoint, "?") {
		separator = "&"
	}
	return fmt.Sprintf("%s%sper_page=%d&page=%d", endpoint, separator, perPage, page)
}

// lastPage returns the total page count declared by a Link header, or 1 when
// the header carries no rel="last" link.
func lastPage(link string) int {
	match := lastPagePattern.FindStringSubmatch(link)
	if match == nil {
		return 1
	}
	n, err := strconv.Atoi(match[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func decodePage(resp *http.Response) ([]json.RawMessage, error) {
	defer resp.Body.Close()
	var records []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return records, nil
}
