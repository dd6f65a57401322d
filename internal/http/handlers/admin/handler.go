package admin

import (
	"github.com/redutron/backend/internal/provider"
)

// Handler 管理端处理器
type Handler struct {
	*provider.Container
}

// New 创建管理端处理器
func New(container *provider.Container) *Handler {
	return &Handler{Container: container}
}
