package inventory

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/storemanager/internal/config"
)

const (
	itemsPath = "/api/items"
	itemPath  = "/api/items/{id}"
)

// OutcomeKind tags the result of a call to the item store.
type OutcomeKind int

const (
	// Success means the store answered, whatever the status code.
	Success OutcomeKind = iota
	// Unreachable means no response was received at all.
	Unreachable
)

func (k OutcomeKind) String() string {
	if k == Unreachable {
		return "unreachable"
	}
	return "success"
}

// Outcome is the result of a forwarded call. For Success the store's status,
// content type and body are kept verbatim; for Unreachable only Err is set.
type Outcome struct {
	Kind        OutcomeKind
	StatusCode  int
	ContentType string
	Body        []byte
	Err         error
}

// Client forwards item operations to the item store service.
type Client interface {
	ListItems(ctx context.Context) Outcome
	CreateItem(ctx context.Context, payload []byte) Outcome
	DeleteItem(ctx context.Context, id string) Outcome
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an item store client using the provided configuration values.
func NewClient(cfg config.FrontendConfig, logger *zap.Logger) *APIClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BackendURL, "/")).
		SetHeader("Accept", "application/json").
		SetLogger(logger.Sugar()).
		SetTimeout(cfg.BackendTimeout)

	return &APIClient{httpClient: restyClient}
}

// ListItems forwards GET /api/items.
func (c *APIClient) ListItems(ctx context.Context) Outcome {
	return outcomeOf(c.httpClient.R().
		SetContext(ctx).
		Get(itemsPath))
}

// CreateItem forwards the payload verbatim to POST /api/items.
func (c *APIClient) CreateItem(ctx context.Context, payload []byte) Outcome {
	return outcomeOf(c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(itemsPath))
}

// DeleteItem forwards DELETE /api/items/{id}. The id is path-escaped.
func (c *APIClient) DeleteItem(ctx context.Context, id string) Outcome {
	return outcomeOf(c.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete(itemPath))
}

// outcomeOf maps a resty result to an Outcome. Any transport error means the
// store could not be reached; every response, error statuses included, is a
// Success.
func outcomeOf(resp *resty.Response, err error) Outcome {
	if err != nil {
		return Outcome{Kind: Unreachable, Err: err}
	}
	return Outcome{
		Kind:        Success,
		StatusCode:  resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.Body(),
	}
}
