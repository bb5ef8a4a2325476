package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"product-catalog/internal/delivery/dto"
	"product-catalog/pkg/response"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const productsPath = "/api/products"

var (
	ErrNotFound   = errors.New("product not found")
	ErrBadRequest = errors.New("bad request")
)

// APIError is returned for every non-2xx response. It unwraps to ErrNotFound
// or ErrBadRequest for 404 and 400.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		return nil
	}
}

// Product is the client-side view of a catalog item.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductClient talks to the product HTTP API.
type ProductClient struct {
	client  *http.Client
	baseURL string
	token   string
	log     *logrus.Logger
	tracer  trace.Tracer
}

type Option func(*ProductClient)

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *ProductClient) { c.token = token }
}

func WithLogger(log *logrus.Logger) Option {
	return func(c *ProductClient) { c.log = log }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *ProductClient) { c.client = hc }
}

func NewProductClient(baseURL string, timeout time.Duration, opts ...Option) *ProductClient {
	c := &ProductClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     logrus.StandardLogger(),
		tracer:  otel.Tracer("product-catalog/client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ProductClient) List(ctx context.Context) ([]Product, error) {
	products := []Product{}
	if err := c.do(ctx, http.MethodGet, productsPath, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *ProductClient) Get(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, itemPath(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Create posts name and price; the server assigns the id.
func (c *ProductClient) Create(ctx context.Context, name string, price decimal.Decimal) (*Product, error) {
	req := dto.CreateProductRequest{Name: name, Price: &price}

	var product Product
	if err := c.do(ctx, http.MethodPost, productsPath, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update replaces name and price of the product with the given id.
func (c *ProductClient) Update(ctx context.Context, product Product) error {
	req := dto.UpdateProductRequest{ID: product.ID, Name: product.Name, Price: &product.Price}
	return c.do(ctx, http.MethodPut, itemPath(product.ID), req, nil)
}

func (c *ProductClient) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath(id), nil, nil)
}

func itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", productsPath, id)
}

func (c *ProductClient) do(ctx context.Context, method, path string, body, result interface{}) error {
	ctx, span := c.tracer.Start(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	entry := c.log.WithContext(ctx).WithFields(logrus.Fields{
		"method": method,
		"url":    req.URL.String(),
	})

	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		entry.Warnf("Request failed: %v", err)
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	entry = entry.WithField("status", resp.StatusCode)

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(rawBody)}
		span.SetStatus(codes.Error, apiErr.Error())
		entry.Debugf("Request rejected: %s", apiErr.Message)
		return apiErr
	}
	entry.Debug("Request completed")

	if result != nil && len(rawBody) > 0 {
		if err := json.Unmarshal(rawBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// errorMessage extracts a readable message from an error envelope, appending
// field errors in key order.
func errorMessage(rawBody []byte) string {
	var envelope response.Response
	if err := json.Unmarshal(rawBody, &envelope); err != nil {
		return strings.TrimSpace(string(rawBody))
	}

	fields, ok := envelope.Error.(map[string]interface{})
	if !ok || len(fields) == 0 {
		return envelope.Message
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	details := make([]string, 0, len(keys))
	for _, k := range keys {
		details = append(details, fmt.Sprint(fields[k]))
	}
	return envelope.Message + ": " + strings.Join(details, ", ")
}
