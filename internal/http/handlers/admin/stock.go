package admin

import (
	"errors"
	"strconv"

	"github.com/redutron/backend/internal/http/response"
	"github.com/redutron/backend/internal/repository"
	"github.com/redutron/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// StockEntryRequest 入库请求
type StockEntryRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Date      string          `json:"date" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Origin    string          `json:"origin"`
}

// StockAdjustRequest 库存校准请求
type StockAdjustRequest struct {
	ProductID      uint            `json:"product_id" binding:"required"`
	TargetQuantity decimal.Decimal `json:"target_quantity"`
	Date           string          `json:"date"`
}

// GetStockLevels 库存一览
func (h *Handler) GetStockLevels(c *gin.Context) {
	levels, err := h.InventoryService.StockLevels()
	if err != nil {
		respondError(c, response.CodeInternal, "查询库存失败", err)
		return
	}
	response.Success(c, levels)
}

// GetStockState 单个商品的库存状态
func (h *Handler) GetStockState(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	state, err := h.InventoryService.GetState(id)
	if err != nil {
		respondError(c, response.CodeInternal, "查询库存失败", err)
		return
	}
	response.Success(c, state)
}

// GetStockEntries 入库流水列表
func (h *Handler) GetStockEntries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	productID, _ := strconv.ParseUint(c.Query("product_id"), 10, 32)

	entries, total, err := h.InventoryService.ListEntries(repository.StockEntryListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: uint(productID),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		Origin:    c.Query("origin"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询入库流水失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, entries, pagination)
}

// CreateStockEntry 记录一笔入库并重算加权平均成本
// 数量、成本与日期的合法性在入口校验，台账层不设限。
func (h *Handler) CreateStockEntry(c *gin.Context) {
	var req StockEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		respondError(c, response.CodeBadRequest, "数量必须大于零", nil)
		return
	}
	if req.UnitCost.IsNegative() {
		respondError(c, response.CodeBadRequest, "单位成本不能为负", nil)
		return
	}
	date, err := service.NormalizeDate(req.Date)
	if err != nil {
		respondError(c, response.CodeBadRequest, "日期格式必须为 YYYY-MM-DD", nil)
		return
	}

	state, err := h.InventoryService.ApplyEntry(service.ApplyEntryInput{
		ProductID: req.ProductID,
		Date:      date,
		Quantity:  req.Quantity,
		UnitCost:  req.UnitCost,
		Origin:    req.Origin,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "商品不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "入库失败", err)
		return
	}

	response.Success(c, state)
}

// AdjustStock 把库存校准到目标数量，日期缺省为当天
func (h *Handler) AdjustStock(c *gin.Context) {
	var req StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}
	if req.Date != "" {
		if _, err := service.NormalizeDate(req.Date); err != nil {
			respondError(c, response.CodeBadRequest, "日期格式必须为 YYYY-MM-DD", nil)
			return
		}
	}

	state, err := h.InventoryService.AdjustTo(req.ProductID, req.TargetQuantity, req.Date)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "商品不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "库存校准失败", err)
		return
	}

	response.Success(c, state)
}
