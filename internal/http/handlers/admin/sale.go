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

// SaleRequest 销售记账请求
type SaleRequest struct {
	ProductID         uint            `json:"product_id" binding:"required"`
	Date              string          `json:"date" binding:"required"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	MarketplaceFee    decimal.Decimal `json:"marketplace_fee"`
	OtherVariableCost decimal.Decimal `json:"other_variable_cost"`
	Discount          decimal.Decimal `json:"discount"`
	Source            string          `json:"source"`
}

// GetSales 获取销售流水列表
func (h *Handler) GetSales(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	productID, _ := strconv.ParseUint(c.Query("product_id"), 10, 32)

	sales, total, err := h.SalesService.List(repository.SaleListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: uint(productID),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		Source:    c.Query("source"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询销售记录失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, sales, pagination)
}

// CreateSale 记录一笔销售
func (h *Handler) CreateSale(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}
	date, err := service.NormalizeDate(req.Date)
	if err != nil {
		respondError(c, response.CodeBadRequest, "日期格式必须为 YYYY-MM-DD", nil)
		return
	}

	sale, err := h.SalesService.RecordSale(service.RecordSaleInput{
		ProductID:         req.ProductID,
		Date:              date,
		Quantity:          req.Quantity,
		UnitPrice:         req.UnitPrice,
		MarketplaceFee:    req.MarketplaceFee,
		OtherVariableCost: req.OtherVariableCost,
		Discount:          req.Discount,
		Source:            req.Source,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "商品不存在", nil)
			return
		}
		if errors.Is(err, service.ErrInvalidQuantity) {
			respondError(c, response.CodeBadRequest, "数量必须大于零", nil)
			return
		}
		respondError(c, response.CodeInternal, "销售记账失败", err)
		return
	}

	response.Success(c, sale)
}

// DeleteSale 删除销售记录并把数量还回库存
func (h *Handler) DeleteSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.SalesService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "销售记录不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除销售记录失败", err)
		return
	}

	response.SuccessWithMsg(c, "销售记录已删除", nil)
}
