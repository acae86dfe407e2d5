package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"justfood/pkg/config"
	"justfood/pkg/logger"
)

// Client fetches menu content from the headless CMS with GROQ queries over
// the query HTTP API. The catalog is owned by the CMS; this is a read-only
// pass-through.
type Client struct {
	baseURL string
	dataset string
	token   string
	httpc   *http.Client
	mylog   *logger.Logger
}

func NewClient(cfg *config.SanityConfig, mylog *logger.Logger) *Client {
	return &Client{
		baseURL: fmt.Sprintf("https://%s.api.sanity.io/v%s", cfg.ProjectID, cfg.APIVersion),
		dataset: cfg.Dataset,
		token:   cfg.Token,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		mylog:   mylog,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(baseURL, dataset, token string, mylog *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		dataset: dataset,
		token:   token,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		mylog:   mylog,
	}
}

type MenuItem struct {
	ID          string  `json:"_id"`
	SKU         string  `json:"sku"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsVeg       bool    `json:"isVeg"`
	IsAvailable bool    `json:"isAvailable"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Position    int    `json:"position"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// MenuItems fetches available menu items, optionally filtered by category
// slug and veg flag.
func (c *Client) MenuItems(ctx context.Context, category string, isVeg *bool) ([]MenuItem, error) {
	query := `*[_type == "menuItem" && isAvailable == true`
	if category != "" {
		query += fmt.Sprintf(` && category->slug.current == %s`, strconv.Quote(category))
	}
	if isVeg != nil {
		query += fmt.Sprintf(` && isVeg == %t`, *isVeg)
	}
	query += `] | order(title asc) {
		_id, sku, title, description, price, isVeg, isAvailable,
		"image": image.asset->url,
		"category": category->slug.current
	}`

	var items []MenuItem
	if err := c.query(ctx, query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	query := `*[_type == "category"] | order(position asc) {
		_id, name, "slug": slug.current, position, description,
		"image": image.asset->url
	}`

	var categories []Category
	if err := c.query(ctx, query, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) query(ctx context.Context, groq string, result interface{}) error {
	endpoint := fmt.Sprintf("%s/data/query/%s?query=%s",
		c.baseURL, c.dataset, url.QueryEscape(groq))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}
	return nil
}
