package menus

import (
	"net/http"

	"cart-normalizer/internal/api/handlers"
	"cart-normalizer/internal/core/menu"
	"cart-normalizer/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// ListResponse 可用菜單清單
type ListResponse struct {
	Menus []string `json:"menus"`
}

// HandleList 列出可用菜單名稱
func HandleList(c *gin.Context) {
	c.JSON(http.StatusOK, ListResponse{Menus: menu.Names()})
}

// HandleGet 取得指定菜單的完整內容
func HandleGet(c *gin.Context) {
	name := c.Param("name")
	m, ok := menu.Find(name)
	if !ok {
		handlers.RespondError(c, common.ErrMenuNotFound)
		return
	}
	c.JSON(http.StatusOK, m)
}
