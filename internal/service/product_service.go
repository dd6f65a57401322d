package service

import (
	"strings"

	"github.com/redutron/backend/internal/logger"
	"github.com/redutron/backend/internal/models"
	"github.com/redutron/backend/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetByID 根据 ID 获取商品
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// ProductInput 创建/更新商品参数
type ProductInput struct {
	Name         string
	SKU          *string
	VariableCost decimal.Decimal
	DefaultPrice decimal.Decimal
}

func normalizeProductInput(input *ProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return ErrEmptyProductName
	}
	if input.SKU != nil {
		trimmed := strings.TrimSpace(*input.SKU)
		if trimmed == "" {
			input.SKU = nil
		} else {
			input.SKU = &trimmed
		}
	}
	return nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := normalizeProductInput(&input); err != nil {
		return nil, err
	}
	if input.SKU != nil {
		existing, err := s.productRepo.GetBySKU(*input.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDuplicateSKU
		}
	}

	product := &models.Product{
		Name:         input.Name,
		SKU:          input.SKU,
		VariableCost: models.NewMoneyFromDecimal(input.VariableCost),
		DefaultPrice: models.NewMoneyFromDecimal(input.DefaultPrice),
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Infow("product_created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := normalizeProductInput(&input); err != nil {
		return nil, err
	}
	if input.SKU != nil {
		existing, err := s.productRepo.GetBySKU(*input.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrDuplicateSKU
		}
	}

	product.Name = input.Name
	product.SKU = input.SKU
	product.VariableCost = models.NewMoneyFromDecimal(input.VariableCost)
	product.DefaultPrice = models.NewMoneyFromDecimal(input.DefaultPrice)
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品并级联清理库存状态、入库流水和销售记录
func (s *ProductService) Delete(id uint) error {
	product, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.productRepo.DeleteCascade(product.ID); err != nil {
		return err
	}
	logger.Infow("product_deleted", "product_id", product.ID, "name", product.Name)
	return nil
}

// FindOrCreate 按 SKU 或名称查找商品，找不到则创建
// 导入适配器依赖这一语义：查找失败不是错误，而是建档信号。
func (s *ProductService) FindOrCreate(identifier, name string, defaultPrice decimal.Decimal) (*models.Product, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrEmptyProductName
	}

	product, err := s.productRepo.GetBySKU(identifier)
	if err != nil {
		return nil, err
	}
	if product == nil {
		product, err = s.productRepo.GetByName(identifier)
		if err != nil {
			return nil, err
		}
	}
	if product != nil {
		return product, nil
	}

	if strings.TrimSpace(name) == "" {
		name = identifier
	}
	sku := identifier
	product = &models.Product{
		Name:         name,
		SKU:          &sku,
		DefaultPrice: models.NewMoneyFromDecimal(defaultPrice),
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Infow("product_auto_created", "product_id", product.ID, "sku", sku, "name", name)
	return product, nil
}
