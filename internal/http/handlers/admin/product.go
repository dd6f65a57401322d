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

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Name         string          `json:"name" binding:"required"`
	SKU          *string         `json:"sku"`
	VariableCost decimal.Decimal `json:"variable_cost"`
	DefaultPrice decimal.Decimal `json:"default_price"`
}

func (r ProductRequest) toServiceInput() service.ProductInput {
	return service.ProductInput{
		Name:         r.Name,
		SKU:          r.SKU,
		VariableCost: r.VariableCost,
		DefaultPrice: r.DefaultPrice,
	}
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	search := c.Query("search")

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询商品失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "商品不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询商品失败", err)
		return
	}

	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	product, err := h.ProductService.Create(req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrEmptyProductName) {
			respondError(c, response.CodeBadRequest, "商品名称不能为空", nil)
			return
		}
		if errors.Is(err, service.ErrDuplicateSKU) {
			respondError(c, response.CodeBadRequest, "SKU 已存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "创建商品失败", err)
		return
	}

	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	product, err := h.ProductService.Update(id, req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "商品不存在", nil)
			return
		}
		if errors.Is(err, service.ErrEmptyProductName) {
			respondError(c, response.CodeBadRequest, "商品名称不能为空", nil)
			return
		}
		if errors.Is(err, service.ErrDuplicateSKU) {
			respondError(c, response.CodeBadRequest, "SKU 已存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "更新商品失败", err)
		return
	}

	response.Success(c, product)
}

// DeleteProduct 删除商品（级联清理库存状态、入库流水与销售记录）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "商品不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除商品失败", err)
		return
	}

	response.SuccessWithMsg(c, "商品已删除", nil)
}
