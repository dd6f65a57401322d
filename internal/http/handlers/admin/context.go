package admin

import (
	"strconv"
	"strings"

	"github.com/redutron/backend/internal/http/response"

	"github.com/gin-gonic/gin"
)

// getAdminID 读取鉴权中间件写入的管理员 ID，缺失时直接响应 401
func getAdminID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("admin_id")
	if exists {
		if id, ok := value.(uint); ok && id > 0 {
			return id, true
		}
	}
	respondError(c, response.CodeUnauthorized, "未登录或登录已过期", nil)
	c.Abort()
	return 0, false
}

// parseIDParam 解析路径参数中的数字 ID，非法时响应 400
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "无效的 ID", err)
		return 0, false
	}
	return uint(id), true
}
