package handlers

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed web/index.html
var homePage []byte

// Home serves the inventory page. The page only talks to /proxy/items.
func Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", homePage)
}
