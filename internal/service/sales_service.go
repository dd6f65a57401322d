package service

import (
	"strings"

	"github.com/redutron/backend/internal/constants"
	"github.com/redutron/backend/internal/logger"
	"github.com/redutron/backend/internal/models"
	"github.com/redutron/backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesService 销售流水服务
// 记账时冻结当时的平均成本到 CostUnitAtSale，后续入库不回溯。
type SalesService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	inventory   *InventoryService
}

// NewSalesService 创建销售服务
func NewSalesService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	inventory *InventoryService,
) *SalesService {
	return &SalesService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		inventory:   inventory,
	}
}

// RecordSaleInput 销售记账参数
type RecordSaleInput struct {
	ProductID         uint
	Date              string
	Quantity          decimal.Decimal
	UnitPrice         decimal.Decimal
	MarketplaceFee    decimal.Decimal
	OtherVariableCost decimal.Decimal
	Discount          decimal.Decimal
	Source            string
}

// RecordSale 记录一笔销售并扣减库存
// 读均价、写流水、减库存在同一事务内完成，期间持有商品锁。
func (s *SalesService) RecordSale(input RecordSaleInput) (*models.Sale, error) {
	if input.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidQuantity
	}
	date := ParseFlexibleDate(input.Date)
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = constants.SaleSourceManual
	}

	unlock := s.inventory.Locks().Lock(input.ProductID)
	defer unlock()

	var sale *models.Sale
	err = s.saleRepo.Transaction(func(tx *gorm.DB) error {
		sale, err = s.recordSaleTx(tx, input, date, source)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("sale_recorded",
		"sale_id", sale.ID,
		"product_id", sale.ProductID,
		"quantity", sale.Quantity.String(),
		"cost_unit_at_sale", sale.CostUnitAtSale.String(),
		"source", sale.Source,
	)
	return sale, nil
}

// recordSaleTx 在事务内冻结成本、写销售流水并扣减库存，调用方必须已持有商品锁
func (s *SalesService) recordSaleTx(tx *gorm.DB, input RecordSaleInput, date, source string) (*models.Sale, error) {
	costAtSale, err := s.inventory.ApplySaleTx(tx, input.ProductID, input.Quantity)
	if err != nil {
		return nil, err
	}

	sale := &models.Sale{
		ProductID:         input.ProductID,
		Date:              date,
		Quantity:          input.Quantity,
		UnitPrice:         models.NewMoneyFromDecimal(input.UnitPrice),
		MarketplaceFee:    models.NewMoneyFromDecimal(input.MarketplaceFee),
		OtherVariableCost: models.NewMoneyFromDecimal(input.OtherVariableCost),
		Discount:          models.NewMoneyFromDecimal(input.Discount),
		CostUnitAtSale:    costAtSale,
		Source:            source,
	}
	if err := s.saleRepo.WithTx(tx).Create(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// List 查询销售流水
func (s *SalesService) List(filter repository.SaleListFilter) ([]models.Sale, int64, error) {
	return s.saleRepo.List(filter)
}

// Delete 删除销售记录并把数量还回库存（均价不变）
func (s *SalesService) Delete(id uint) error {
	sale, err := s.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return ErrNotFound
	}

	unlock := s.inventory.Locks().Lock(sale.ProductID)
	defer unlock()

	err = s.saleRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.saleRepo.WithTx(tx).Delete(sale.ID); err != nil {
			return err
		}
		return s.inventory.restoreSaleTx(tx, sale.ProductID, sale.Quantity)
	})
	if err != nil {
		return err
	}

	logger.Infow("sale_deleted",
		"sale_id", sale.ID,
		"product_id", sale.ProductID,
		"quantity_restored", sale.Quantity.String(),
	)
	return nil
}
