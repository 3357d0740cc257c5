package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	relaysvc "github.com/mamadbah2/storemanager/internal/service/relay"
	inventoryclient "github.com/mamadbah2/storemanager/pkg/clients/inventory"
)

const jsonContentType = "application/json; charset=utf-8"

// backendDownBody is the single payload returned whenever the store cannot be reached.
var backendDownBody = []byte(`{"error":"Backend is down"}`)

// ProxyHandler relays browser calls to the item store.
type ProxyHandler struct {
	svc    relaysvc.Proxy
	logger *zap.Logger
}

// NewProxyHandler constructs the HTTP handler adapter.
func NewProxyHandler(svc relaysvc.Proxy, logger *zap.Logger) *ProxyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProxyHandler{svc: svc, logger: logger}
}

// List relays GET /proxy/items.
func (h *ProxyHandler) List(c *gin.Context) {
	writeOutcome(c, h.svc.ProxyList(c.Request.Context()))
}

// Create relays POST /proxy/items with the body untouched.
func (h *ProxyHandler) Create(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		h.logger.Warn("failed reading request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	writeOutcome(c, h.svc.ProxyCreate(c.Request.Context(), payload))
}

// Delete relays DELETE /proxy/items/:id.
func (h *ProxyHandler) Delete(c *gin.Context) {
	writeOutcome(c, h.svc.ProxyDelete(c.Request.Context(), c.Param("id")))
}

// RenderOutcome maps a relay outcome to the response sent to the browser.
// A reached store is passed through unchanged; an unreachable one becomes
// 503 {"error":"Backend is down"}.
func RenderOutcome(out inventoryclient.Outcome) (status int, contentType string, body []byte) {
	if out.Kind == inventoryclient.Unreachable {
		return http.StatusServiceUnavailable, jsonContentType, backendDownBody
	}

	contentType = out.ContentType
	if contentType == "" {
		contentType = jsonContentType
	}
	return out.StatusCode, contentType, out.Body
}

func writeOutcome(c *gin.Context, out inventoryclient.Outcome) {
	status, contentType, body := RenderOutcome(out)
	c.Data(status, contentType, body)
}
