package zid

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.zid.sa/v1"

// pageSize matches the Zid API default; a page shorter than this means the
// listing is exhausted.
const pageSize = 50

// APIError is returned when the Zid API answers with a non-2xx status.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zid api %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Client calls the Zid merchant API on behalf of one store.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

func NewClient(accessToken string) *Client {
	baseURL := os.Getenv("ZID_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		accessToken: accessToken,
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(accessToken, baseURL string) *Client {
	c := NewClient(accessToken)
	c.baseURL = baseURL
	return c
}

func (c *Client) get(endpoint string, params url.Values, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("X-Manager-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return json.Unmarshal(body, out)
}

func pageParams(page, perPage int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	return params
}

type ordersPage struct {
	Orders  []Order `json:"orders"`
	Payload []Order `json:"payload"`
}

func (p ordersPage) items() []Order {
	if p.Orders != nil {
		return p.Orders
	}
	return p.Payload
}

// GetOrders fetches one page of orders.
func (c *Client) GetOrders(page, perPage int) ([]Order, error) {
	var resp ordersPage
	if err := c.get("/orders", pageParams(page, perPage), &resp); err != nil {
		return nil, err
	}
	return resp.items(), nil
}

// GetAllOrders pages through the full order history until a short page.
func (c *Client) GetAllOrders() ([]Order, error) {
	var all []Order
	for page := 1; ; page++ {
		batch, err := c.GetOrders(page, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < pageSize {
			return all, nil
		}
	}
}

type productsPage struct {
	Products []Product `json:"products"`
	Payload  []Product `json:"payload"`
}

func (p productsPage) items() []Product {
	if p.Products != nil {
		return p.Products
	}
	return p.Payload
}

// GetProducts fetches one page of catalog products.
func (c *Client) GetProducts(page, perPage int) ([]Product, error) {
	var resp productsPage
	if err := c.get("/products", pageParams(page, perPage), &resp); err != nil {
		return nil, err
	}
	return resp.items(), nil
}

// GetAllProducts pages through the full catalog until a short page.
func (c *Client) GetAllProducts() ([]Product, error) {
	var all []Product
	for page := 1; ; page++ {
		batch, err := c.GetProducts(page, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < pageSize {
			return all, nil
		}
	}
}

type customersPage struct {
	Customers []Customer `json:"customers"`
	Payload   []Customer `json:"payload"`
}

func (p customersPage) items() []Customer {
	if p.Customers != nil {
		return p.Customers
	}
	return p.Payload
}

// GetCustomers fetches one page of store customers.
func (c *Client) GetCustomers(page, perPage int) ([]Customer, error) {
	var resp customersPage
	if err := c.get("/customers", pageParams(page, perPage), &resp); err != nil {
		return nil, err
	}
	return resp.items(), nil
}

// GetAllCustomers pages through the full customer list until a short page.
func (c *Client) GetAllCustomers() ([]Customer, error) {
	var all []Customer
	for page := 1; ; page++ {
		batch, err := c.GetCustomers(page, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < pageSize {
			return all, nil
		}
	}
}
