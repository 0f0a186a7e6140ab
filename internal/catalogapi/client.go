// Package catalogapi talks to the remote product catalog (a dummyjson-compatible REST API).
package catalogapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"shopfront/internal/domain"
)

const (
	DefaultBaseURL = "https://dummyjson.com"
	DefaultTimeout = 10 * time.Second

	MsgListFailed   = "failed to load products"
	MsgCreateFailed = "failed to create product"
)

// APIError is the single displayable message a failed call turns into.
// Status is the HTTP status when the API answered, 0 for transport failures.
type APIError struct {
	Message string
	Status  int
	cause   error
}

func (e *APIError) Error() string { return e.Message }
func (e *APIError) Unwrap() error { return e.cause }

func newAPIError(msg string, status int, cause error) *APIError {
	switch {
	case status != 0:
		msg = fmt.Sprintf("%s: %d", msg, status)
	case cause != nil:
		msg = fmt.Sprintf("%s: %s", msg, cause.Error())
	}
	return &APIError{Message: msg, Status: status, cause: cause}
}

type Client struct {
	BaseURL string
	Timeout time.Duration
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), Timeout: timeout}
}

// FetchProducts calls GET /products. limit and skip are always sent, select only when set.
func (c *Client) FetchProducts(p domain.ProductsParams) (domain.ProductsResponse, error) {
	if p.Limit <= 0 {
		p.Limit = domain.DefaultLimit
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("skip", strconv.Itoa(p.Skip))
	if p.Select != "" {
		q.Set("select", p.Select)
	}

	a := fiber.Get(c.BaseURL + "/products?" + q.Encode())
	var out domain.ProductsResponse
	if err := c.do(a, &out, MsgListFailed); err != nil {
		return domain.ProductsResponse{}, err
	}
	return out, nil
}

// CreateProduct calls POST /products/add and returns the echoed product with its id.
func (c *Client) CreateProduct(req domain.ProductCreationRequest) (domain.CreatedProduct, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return domain.CreatedProduct{}, newAPIError(MsgCreateFailed, 0, errors.Wrap(err, "encode request"))
	}
	a := fiber.Post(c.BaseURL + "/products/add").
		ContentType(fiber.MIMEApplicationJSON).
		Body(body)

	var out domain.CreatedProduct
	if err := c.do(a, &out, MsgCreateFailed); err != nil {
		return domain.CreatedProduct{}, err
	}
	return out, nil
}

func (c *Client) do(a *fiber.Agent, out any, msg string) error {
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).Timeout(c.Timeout)

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return newAPIError(msg, 0, errs[0])
	}
	if code < 200 || code > 299 {
		return newAPIError(msg, code, nil)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return newAPIError(msg, 0, errors.Wrap(err, "decode response"))
	}
	return nil
}
