package relay

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	inventoryclient "github.com/mamadbah2/storemanager/pkg/clients/inventory"
)

type stubClient struct {
	out   inventoryclient.Outcome
	calls []string
	got   []byte
}

func (s *stubClient) ListItems(context.Context) inventoryclient.Outcome {
	s.calls = append(s.calls, "list")
	return s.out
}

func (s *stubClient) CreateItem(_ context.Context, payload []byte) inventoryclient.Outcome {
	s.calls = append(s.calls, "create")
	s.got = payload
	return s.out
}

func (s *stubClient) DeleteItem(_ context.Context, id string) inventoryclient.Outcome {
	s.calls = append(s.calls, "delete:"+id)
	return s.out
}

func TestServiceForwardsOnce(t *testing.T) {
	ok := inventoryclient.Outcome{Kind: inventoryclient.Success, StatusCode: http.StatusOK, Body: []byte(`[]`)}
	stub := &stubClient{out: ok}
	svc := NewService(stub, nil)
	ctx := context.Background()

	assert.Equal(t, ok, svc.ProxyList(ctx))
	assert.Equal(t, ok, svc.ProxyCreate(ctx, []byte(`{"name":"x"}`)))
	assert.Equal(t, ok, svc.ProxyDelete(ctx, "42"))

	assert.Equal(t, []string{"list", "create", "delete:42"}, stub.calls)
	assert.Equal(t, []byte(`{"name":"x"}`), stub.got)
}

func TestServiceLogsUnreachableWithoutRetry(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	down := inventoryclient.Outcome{Kind: inventoryclient.Unreachable, Err: errors.New("connection refused")}
	stub := &stubClient{out: down}
	svc := NewService(stub, zap.New(core))

	out := svc.ProxyDelete(context.Background(), "1")

	assert.Equal(t, inventoryclient.Unreachable, out.Kind)
	assert.Len(t, stub.calls, 1)
	entries := logs.FilterMessage("item store unreachable").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, OpDelete, entries[0].ContextMap()["operation"])
	}
}
