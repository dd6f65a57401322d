package repository

import (
	"errors"
	"strings"

	"github.com/redutron/backend/internal/models"

	"gorm.io/gorm"
)

// SaleWithProduct 报表查询用的销售记录，带商品名称
type SaleWithProduct struct {
	models.Sale
	ProductName string `json:"product_name"`
}

// SaleRepository 销售流水数据访问接口
type SaleRepository interface {
	Create(sale *models.Sale) error
	GetByID(id uint) (*models.Sale, error)
	List(filter SaleListFilter) ([]models.Sale, int64, error)
	ListRangeWithProduct(dateFrom, dateTo string) ([]SaleWithProduct, error)
	Delete(id uint) error
	WithTx(tx *gorm.DB) SaleRepository
	Transaction(fn func(tx *gorm.DB) error) error
}

// GormSaleRepository GORM 实现
type GormSaleRepository struct {
	db *gorm.DB
}

// NewSaleRepository 创建销售仓库
func NewSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSaleRepository) WithTx(tx *gorm.DB) SaleRepository {
	if tx == nil {
		return r
	}
	return &GormSaleRepository{db: tx}
}

// Transaction 执行事务
func (r *GormSaleRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 追加一条销售流水
func (r *GormSaleRepository) Create(sale *models.Sale) error {
	return r.db.Create(sale).Error
}

// GetByID 根据 ID 获取销售记录
func (r *GormSaleRepository) GetByID(id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// List 查询销售流水
func (r *GormSaleRepository) List(filter SaleListFilter) ([]models.Sale, int64, error) {
	var sales []models.Sale

	query := r.db.Model(&models.Sale{})
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if from := strings.TrimSpace(filter.DateFrom); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := strings.TrimSpace(filter.DateTo); to != "" {
		query = query.Where("date <= ?", to)
	}
	if source := strings.TrimSpace(filter.Source); source != "" {
		query = query.Where("source = ?", source)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("date DESC, id DESC").Find(&sales).Error; err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

// ListRangeWithProduct 查询日期区间内的销售记录并带出商品名称
// 报表引擎按商品聚合时依赖 id ASC 保证首次出现顺序稳定。
func (r *GormSaleRepository) ListRangeWithProduct(dateFrom, dateTo string) ([]SaleWithProduct, error) {
	rows := make([]SaleWithProduct, 0)
	query := r.db.Model(&models.Sale{}).
		Select("sales.*, products.name AS product_name").
		Joins("JOIN products ON products.id = sales.product_id")
	if from := strings.TrimSpace(dateFrom); from != "" {
		query = query.Where("sales.date >= ?", from)
	}
	if to := strings.TrimSpace(dateTo); to != "" {
		query = query.Where("sales.date <= ?", to)
	}
	if err := query.Order("sales.id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete 删除销售记录（硬删除）
func (r *GormSaleRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Sale{}, id).Error
}
