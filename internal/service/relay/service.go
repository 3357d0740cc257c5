package relay

import (
	"context"

	"go.uber.org/zap"

	"github.com/mamadbah2/storemanager/internal/metrics"
	inventoryclient "github.com/mamadbah2/storemanager/pkg/clients/inventory"
)

// Relay operations, used as log fields and metric labels.
const (
	OpList   = "list"
	OpCreate = "create"
	OpDelete = "delete"
)

// Proxy brokers browser requests to the item store.
type Proxy interface {
	ProxyList(ctx context.Context) inventoryclient.Outcome
	ProxyCreate(ctx context.Context, payload []byte) inventoryclient.Outcome
	ProxyDelete(ctx context.Context, id string) inventoryclient.Outcome
}

// Service forwards each call once, without retries.
type Service struct {
	client inventoryclient.Client
	logger *zap.Logger
}

// NewService wires a new relay service instance.
func NewService(client inventoryclient.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// ProxyList forwards a list call.
func (s *Service) ProxyList(ctx context.Context) inventoryclient.Outcome {
	return s.observe(OpList, s.client.ListItems(ctx))
}

// ProxyCreate forwards payload untouched.
func (s *Service) ProxyCreate(ctx context.Context, payload []byte) inventoryclient.Outcome {
	return s.observe(OpCreate, s.client.CreateItem(ctx, payload))
}

// ProxyDelete forwards a delete call.
func (s *Service) ProxyDelete(ctx context.Context, id string) inventoryclient.Outcome {
	return s.observe(OpDelete, s.client.DeleteItem(ctx, id))
}

func (s *Service) observe(op string, out inventoryclient.Outcome) inventoryclient.Outcome {
	metrics.IncRelayOutcome(op, out.Kind.String())

	if out.Kind == inventoryclient.Unreachable {
		s.logger.Warn("item store unreachable", zap.String("operation", op), zap.Error(out.Err))
		return out
	}

	s.logger.Debug("relayed to item store", zap.String("operation", op), zap.Int("status", out.StatusCode))
	return out
}
