package repository

import (
	"errors"

	"github.com/redutron/backend/internal/models"

	"gorm.io/gorm"
)

// InventoryRepository 库存状态数据访问接口
type InventoryRepository interface {
	Get(productID uint) (*models.ProductInventory, error)
	GetOrCreate(productID uint) (*models.ProductInventory, error)
	Save(state *models.ProductInventory) error
	ListByProductIDs(ids []uint) ([]models.ProductInventory, error)
	WithTx(tx *gorm.DB) InventoryRepository
}

// GormInventoryRepository GORM 实现
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存状态仓库
func NewInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormInventoryRepository) WithTx(tx *gorm.DB) InventoryRepository {
	if tx == nil {
		return r
	}
	return &GormInventoryRepository{db: tx}
}

// Get 获取库存状态
func (r *GormInventoryRepository) Get(productID uint) (*models.ProductInventory, error) {
	var state models.ProductInventory
	if err := r.db.Where("product_id = ?", productID).First(&state).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}

// GetOrCreate 获取库存状态，不存在时落库一条零值记录
func (r *GormInventoryRepository) GetOrCreate(productID uint) (*models.ProductInventory, error) {
	state, err := r.Get(productID)
	if err != nil {
		return nil, err
	}
	if state != nil {
		return state, nil
	}
	state = &models.ProductInventory{ProductID: productID}
	if err := r.db.Create(state).Error; err != nil {
		return nil, err
	}
	return state, nil
}

// Save 保存库存状态
func (r *GormInventoryRepository) Save(state *models.ProductInventory) error {
	return r.db.Save(state).Error
}

// ListByProductIDs 批量获取库存状态
func (r *GormInventoryRepository) ListByProductIDs(ids []uint) ([]models.ProductInventory, error) {
	if len(ids) == 0 {
		return []models.ProductInventory{}, nil
	}
	var states []models.ProductInventory
	if err := r.db.Where("product_id IN ?", ids).Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}
