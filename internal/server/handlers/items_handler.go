package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/mamadbah2/storemanager/internal/domain/models"
	inventorysvc "github.com/mamadbah2/storemanager/internal/service/inventory"
)

func init() {
	// keep posted numbers as json.Number so they are stored as sent
	binding.EnableDecoderUseNumber = true
}

// ItemsHandler serves the item store HTTP API.
type ItemsHandler struct {
	svc    inventorysvc.ItemService
	logger *zap.Logger
}

// NewItemsHandler constructs the HTTP handler adapter.
func NewItemsHandler(svc inventorysvc.ItemService, logger *zap.Logger) *ItemsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemsHandler{svc: svc, logger: logger}
}

// List returns every item in insertion order.
func (h *ItemsHandler) List(c *gin.Context) {
	items, err := h.svc.ListItems(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list items"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// Create stores the posted fields as a new item. Fields are not validated;
// missing ones are stored as null.
func (h *ItemsHandler) Create(c *gin.Context) {
	var input models.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	item, err := h.svc.CreateItem(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("failed creating item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Delete removes the item with the given id. Unknown ids still succeed.
func (h *ItemsHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteItem(c.Request.Context(), id); err != nil {
		h.logger.Error("failed deleting item", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
