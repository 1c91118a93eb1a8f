// Package helpdesk implements the client for the remote ticketing API: a
// paginated ticket listing endpoint with logical-AND filter predicates, a
// per-ticket activities endpoint, and the category listing.
package helpdesk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"desksync/internal/shared/config"
)

// ticketFields is the explicit field set requested from the listing
// endpoint. Requesting fields keeps listing payloads bounded.
var ticketFields = []string{
	"name", "title", "created", "edited",
	"category", "user", "statuses", "customFields",
	"priority", "stage", "first_answer",
	"last_activity_operator", "last_activity_client",
	"contact", "followers", "reopen",
}

type Client struct {
	baseURL          string
	token            string
	pageSize         int
	activityPageSize int
	httpClient       *http.Client
}

func NewClient(cfg config.HelpdeskConfig) *Client {
	return &Client{
		baseURL:          cfg.BaseURL,
		token:            cfg.Token,
		pageSize:         cfg.PageSize,
		activityPageSize: cfg.ActivityPageSize,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// ListFilter describes the logical-AND predicate set for the ticket
// listing: a closed date range on the remote "edited" timestamp and an
// optional category membership filter.
type ListFilter struct {
	From       time.Time
	To         time.Time
	Categories []string
}

// ListTickets pages through the listing endpoint until a short page is
// observed and returns the accumulated result set.
func (c *Client) ListTickets(ctx context.Context, filter ListFilter) ([]Ticket, error) {
	params := url.Values{}
	params.Set("filter[logic]", "and")
	params.Set("filter[filters][0][field]", "edited")
	params.Set("filter[filters][0][operator]", "gte")
	params.Set("filter[filters][0][value]", filter.From.Format("2006-01-02")+" 00:00:00")
	params.Set("filter[filters][1][field]", "edited")
	params.Set("filter[filters][1][operator]", "lte")
	params.Set("filter[filters][1][value]", filter.To.Format("2006-01-02")+" 23:59:59")
	for i, field := range ticketFields {
		params.Set(fmt.Sprintf("fields[%d]", i), field)
	}
	if len(filter.Categories) > 0 {
		params.Set("filter[filters][2][field]", "category")
		if len(filter.Categories) == 1 {
			params.Set("filter[filters][2][operator]", "eq")
			params.Set("filter[filters][2][value]", filter.Categories[0])
		} else {
			params.Set("filter[filters][2][operator]", "in")
			for i, id := range filter.Categories {
				params.Set(fmt.Sprintf("filter[filters][2][value][%d]", i), id)
			}
		}
	}

	var all []Ticket
	skip := 0
	for {
		params.Set("take", strconv.Itoa(c.pageSize))
		params.Set("skip", strconv.Itoa(skip))

		page, err := listPage[Ticket](ctx, c, "/api/v6/tickets.json", params)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		if len(page) < c.pageSize {
			break
		}
		skip += c.pageSize
	}
	return all, nil
}

// ListActivities fetches the full message thread of one ticket, paging at
// the activity page size.
func (c *Client) ListActivities(ctx context.Context, ticketID string) ([]Activity, error) {
	path := fmt.Sprintf("/api/v6/tickets/%s/activities.json", url.PathEscape(ticketID))

	var all []Activity
	skip := 0
	for {
		params := url.Values{}
		params.Set("take", strconv.Itoa(c.activityPageSize))
		params.Set("skip", strconv.Itoa(skip))

		page, err := listPage[Activity](ctx, c, path, params)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		if len(page) < c.activityPageSize {
			break
		}
		skip += c.activityPageSize
	}
	return all, nil
}

// ListCategories returns all ticket categories, used to resolve category
// titles given on the command line to external ids.
func (c *Client) ListCategories(ctx context.Context) ([]Ref, error) {
	return listPage[Ref](ctx, c, "/api/v6/ticketsCategories.json", url.Values{})
}

// resultEnvelope is the remote's standard response wrapper.
type resultEnvelope[T any] struct {
	Result struct {
		Data  []T `json:"data"`
		Total int `json:"total"`
	} `json:"result"`
}

func listPage[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	reqURL := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-AUTH-TOKEN", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, path, truncate(string(body), 200))
	}

	var envelope resultEnvelope[T]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return envelope.Result.Data, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
