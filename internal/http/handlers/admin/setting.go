package admin

import (
	"errors"

	"github.com/redutron/backend/internal/http/response"
	"github.com/redutron/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RatesRequest 税率与费率设置请求
type RatesRequest struct {
	TaxPct     decimal.Decimal `json:"tax_pct"`
	ExpensePct decimal.Decimal `json:"expense_pct"`
}

// GetRates 获取税率与运营费率
func (h *Handler) GetRates(c *gin.Context) {
	rates, err := h.SettingService.GetRates()
	if err != nil {
		respondError(c, response.CodeInternal, "查询费率失败", err)
		return
	}
	response.Success(c, rates)
}

// UpdateRates 更新税率与运营费率
func (h *Handler) UpdateRates(c *gin.Context) {
	var req RatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	rates, err := h.SettingService.SetRates(service.Rates{
		TaxPct:     req.TaxPct,
		ExpensePct: req.ExpensePct,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidRate) {
			respondError(c, response.CodeBadRequest, "费率必须在 0 到 1 之间", nil)
			return
		}
		respondError(c, response.CodeInternal, "保存费率失败", err)
		return
	}

	response.Success(c, rates)
}
