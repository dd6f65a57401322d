package repository

import (
	"strings"

	"github.com/redutron/backend/internal/models"

	"gorm.io/gorm"
)

// StockEntryRepository 入库流水数据访问接口
type StockEntryRepository interface {
	Create(entry *models.StockEntry) error
	List(filter StockEntryListFilter) ([]models.StockEntry, int64, error)
	WithTx(tx *gorm.DB) StockEntryRepository
}

// GormStockEntryRepository GORM 实现
type GormStockEntryRepository struct {
	db *gorm.DB
}

// NewStockEntryRepository 创建入库流水仓库
func NewStockEntryRepository(db *gorm.DB) *GormStockEntryRepository {
	return &GormStockEntryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStockEntryRepository) WithTx(tx *gorm.DB) StockEntryRepository {
	if tx == nil {
		return r
	}
	return &GormStockEntryRepository{db: tx}
}

// Create 追加一条入库流水
func (r *GormStockEntryRepository) Create(entry *models.StockEntry) error {
	return r.db.Create(entry).Error
}

// List 查询入库流水
func (r *GormStockEntryRepository) List(filter StockEntryListFilter) ([]models.StockEntry, int64, error) {
	var entries []models.StockEntry

	query := r.db.Model(&models.StockEntry{})
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if from := strings.TrimSpace(filter.DateFrom); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := strings.TrimSpace(filter.DateTo); to != "" {
		query = query.Where("date <= ?", to)
	}
	if origin := strings.TrimSpace(filter.Origin); origin != "" {
		query = query.Where("origin = ?", origin)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("date DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
