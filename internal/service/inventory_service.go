package service

import (
	"strings"
	"time"

	"github.com/redutron/backend/internal/constants"
	"github.com/redutron/backend/internal/logger"
	"github.com/redutron/backend/internal/models"
	"github.com/redutron/backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryService 库存台账服务
// 维护每个商品的移动加权平均成本，入库重算均价，出库只减数量。
type InventoryService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	entryRepo     repository.StockEntryRepository
	locks         *ProductLocks
}

// NewInventoryService 创建库存服务
func NewInventoryService(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	entryRepo repository.StockEntryRepository,
	locks *ProductLocks,
) *InventoryService {
	return &InventoryService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		entryRepo:     entryRepo,
		locks:         locks,
	}
}

// Locks 返回商品锁表，供销售服务共用同一把锁
func (s *InventoryService) Locks() *ProductLocks {
	return s.locks
}

// GetState 获取库存状态，缺失时落一行零值状态再返回
func (s *InventoryService) GetState(productID uint) (*models.ProductInventory, error) {
	return s.inventoryRepo.GetOrCreate(productID)
}

// ApplyEntryInput 入库参数
type ApplyEntryInput struct {
	ProductID uint
	Date      string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	Origin    string
}

// ApplyEntry 记录一笔入库并重算加权平均成本
// newAvg = (oldQty*oldAvg + qty*cost) / newQty；newQty <= 0 时均价归零。
// 数量与成本的下限校验属于 HTTP 入口，本层不设限。
func (s *InventoryService) ApplyEntry(input ApplyEntryInput) (*models.ProductInventory, error) {
	date := ParseFlexibleDate(input.Date)
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	origin := strings.TrimSpace(input.Origin)
	if origin == "" {
		origin = constants.StockOriginManual
	}

	unlock := s.locks.Lock(input.ProductID)
	defer unlock()

	var state *models.ProductInventory
	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		state, err = s.applyEntryTx(tx, input.ProductID, date, input.Quantity, input.UnitCost, origin)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("stock_entry_applied",
		"product_id", input.ProductID,
		"quantity", input.Quantity.String(),
		"unit_cost", input.UnitCost.String(),
		"new_avg_cost", state.AvgCost.String(),
		"origin", origin,
	)
	return state, nil
}

// applyEntryTx 在事务内追加流水并重算均价，调用方必须已持有商品锁
func (s *InventoryService) applyEntryTx(tx *gorm.DB, productID uint, date string, quantity, unitCost decimal.Decimal, origin string) (*models.ProductInventory, error) {
	entries := s.entryRepo.WithTx(tx)
	inventories := s.inventoryRepo.WithTx(tx)

	if err := entries.Create(&models.StockEntry{
		ProductID: productID,
		Date:      date,
		Quantity:  quantity,
		UnitCost:  models.NewMoneyFromDecimal(unitCost),
		Origin:    origin,
	}); err != nil {
		return nil, err
	}

	state, err := inventories.GetOrCreate(productID)
	if err != nil {
		return nil, err
	}

	oldQty := state.Quantity
	oldAvg := state.AvgCost
	newQty := oldQty.Add(quantity)
	newAvg := decimal.Zero
	if newQty.GreaterThan(decimal.Zero) {
		newAvg = oldQty.Mul(oldAvg).Add(quantity.Mul(unitCost)).Div(newQty)
	}

	state.Quantity = newQty
	state.AvgCost = newAvg
	if err := inventories.Save(state); err != nil {
		return nil, err
	}
	return state, nil
}

// ApplySaleTx 在事务内按销量减少库存，均价保持不变
// 允许减到负数，调用方必须已持有商品锁。返回出库前的平均成本。
func (s *InventoryService) ApplySaleTx(tx *gorm.DB, productID uint, quantity decimal.Decimal) (decimal.Decimal, error) {
	inventories := s.inventoryRepo.WithTx(tx)
	state, err := inventories.GetOrCreate(productID)
	if err != nil {
		return decimal.Zero, err
	}
	costAtSale := state.AvgCost
	state.Quantity = state.Quantity.Sub(quantity)
	if err := inventories.Save(state); err != nil {
		return decimal.Zero, err
	}
	return costAtSale, nil
}

// restoreSaleTx 在事务内把销量加回库存，均价保持不变（删除销售记录时使用）
func (s *InventoryService) restoreSaleTx(tx *gorm.DB, productID uint, quantity decimal.Decimal) error {
	inventories := s.inventoryRepo.WithTx(tx)
	state, err := inventories.GetOrCreate(productID)
	if err != nil {
		return err
	}
	state.Quantity = state.Quantity.Add(quantity)
	return inventories.Save(state)
}

// AdjustTo 把库存校准到目标数量
// 差额为正时按当前均价记一笔入库，为负时按销售口径只减数量，为零不动。
// date 为空时取当天。
func (s *InventoryService) AdjustTo(productID uint, targetQuantity decimal.Decimal, date string) (*models.ProductInventory, error) {
	day := ParseFlexibleDate(date)
	if day == "" {
		day = time.Now().Format(constants.DateLayout)
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	unlock := s.locks.Lock(productID)
	defer unlock()

	var state *models.ProductInventory
	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		inventories := s.inventoryRepo.WithTx(tx)
		current, err := inventories.GetOrCreate(productID)
		if err != nil {
			return err
		}

		diff := targetQuantity.Sub(current.Quantity)
		if diff.IsZero() {
			state = current
			return nil
		}

		if diff.GreaterThan(decimal.Zero) {
			state, err = s.applyEntryTx(tx, productID, day, diff, current.AvgCost, constants.StockOriginAdjustment)
			return err
		}

		current.Quantity = current.Quantity.Add(diff)
		if err := inventories.Save(current); err != nil {
			return err
		}
		state = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("stock_adjusted",
		"product_id", productID,
		"target_quantity", targetQuantity.String(),
		"quantity", state.Quantity.String(),
		"avg_cost", state.AvgCost.String(),
	)
	return state, nil
}

// ListEntries 查询入库流水
func (s *InventoryService) ListEntries(filter repository.StockEntryListFilter) ([]models.StockEntry, int64, error) {
	return s.entryRepo.List(filter)
}

// StockLevel 库存一览行
type StockLevel struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	SKU       *string         `json:"sku"`
	Quantity  decimal.Decimal `json:"quantity"`
	AvgCost   decimal.Decimal `json:"avg_cost"`
	Total     decimal.Decimal `json:"total"`
}

// StockLevels 全部商品的库存一览（数量 × 均价 = 在库金额）
func (s *InventoryService) StockLevels() ([]StockLevel, error) {
	products, _, err := s.productRepo.List(repository.ProductListFilter{})
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	states, err := s.inventoryRepo.ListByProductIDs(ids)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[uint]models.ProductInventory, len(states))
	for _, st := range states {
		byProduct[st.ProductID] = st
	}

	levels := make([]StockLevel, 0, len(products))
	for _, p := range products {
		st := byProduct[p.ID]
		levels = append(levels, StockLevel{
			ProductID: p.ID,
			Name:      p.Name,
			SKU:       p.SKU,
			Quantity:  st.Quantity,
			AvgCost:   st.AvgCost,
			Total:     st.Quantity.Mul(st.AvgCost),
		})
	}
	return levels, nil
}
