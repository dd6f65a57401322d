package service

import (
	"errors"
	"testing"
	"time"

	"github.com/redutron/backend/internal/constants"
	"github.com/redutron/backend/internal/repository"

	"github.com/shopspring/decimal"
)

func TestApplyEntryWeightedAverage(t *testing.T) {
	env := newTestEnv(t, "inventory_weighted_average")
	product := env.createProduct(t, "Parafuso")

	state, err := env.inventory.ApplyEntry(ApplyEntryInput{
		ProductID: product.ID,
		Date:      "2024-01-10",
		Quantity:  decimal.NewFromInt(10),
		UnitCost:  dec(t, "2.0"),
	})
	if err != nil {
		t.Fatalf("first entry failed: %v", err)
	}
	assertDecimalEqual(t, "quantity after first entry", state.Quantity, "10")
	assertDecimalEqual(t, "avg cost after first entry", state.AvgCost, "2")

	state, err = env.inventory.ApplyEntry(ApplyEntryInput{
		ProductID: product.ID,
		Date:      "2024-01-11",
		Quantity:  decimal.NewFromInt(10),
		UnitCost:  dec(t, "4.0"),
	})
	if err != nil {
		t.Fatalf("second entry failed: %v", err)
	}
	assertDecimalEqual(t, "quantity after second entry", state.Quantity, "20")
	assertDecimalEqual(t, "avg cost after second entry", state.AvgCost, "3")
}

func TestApplyEntryUnknownProduct(t *testing.T) {
	env := newTestEnv(t, "inventory_entry_unknown")

	_, err := env.inventory.ApplyEntry(ApplyEntryInput{
		ProductID: 9999,
		Date:      "2024-01-10",
		Quantity:  decimal.NewFromInt(1),
		UnitCost:  decimal.NewFromInt(1),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplyEntryNormalizesLooseDate(t *testing.T) {
	env := newTestEnv(t, "inventory_entry_loose_date")
	product := env.createProduct(t, "Porca")

	// 台账层对日期宽松规范化，严格校验在 HTTP 入口
	if _, err := env.inventory.ApplyEntry(ApplyEntryInput{
		ProductID: product.ID,
		Date:      "10/01/2024",
		Quantity:  decimal.NewFromInt(1),
		UnitCost:  decimal.NewFromInt(1),
	}); err != nil {
		t.Fatalf("entry failed: %v", err)
	}

	entries, _, err := env.inventory.ListEntries(repository.StockEntryListFilter{ProductID: product.ID})
	if err != nil {
		t.Fatalf("list entries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Date != "2024-01-10" {
		t.Fatalf("expected canonical entry date 2024-01-10, got %+v", entries)
	}
}

func TestApplyEntryIntoNegativeStockResetsAverage(t *testing.T) {
	env := newTestEnv(t, "inventory_negative_reset")
	product := env.createProduct(t, "Arruela")

	// 先把库存卖成负数
	if _, err := env.inventory.ApplyEntry(ApplyEntryInput{
		ProductID: product.ID,
		Date:      "2024-01-10",
		Quantity:  decimal.NewFromInt(2),
		UnitCost:  decimal.NewFromInt(5),
	}); err != nil {
		t.Fatalf("entry failed: %v", err)
	}
	if _, err := env.sales.RecordSale(RecordSaleInput{
		ProductID: product.ID,
		Date:      "2024-01-11",
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: decimal.NewFromInt(9),
	}); err != nil {
		t.Fatalf("sale failed: %v", err)
	}

	state, err := env.inventory.GetState(product.ID)
	if err != nil {
		t.Fatalf("get state failed: %v", err)
	}
	assertDecimalEqual(t, "negative quantity", state.Quantity, "-8")
	assertDecimalEqual(t, "avg cost untouched by sale", state.AvgCost, "5")

	// 补 3 个仍不够翻正，均价归零
	state, err = env.inventory.ApplyEntry(ApplyEntryInput{
		ProductID: product.ID,
		Date:      "2024-01-12",
		Quantity:  decimal.NewFromInt(3),
		UnitCost:  decimal.NewFromInt(7),
	})
	if err != nil {
		t.Fatalf("replenish entry failed: %v", err)
	}
	assertDecimalEqual(t, "still negative quantity", state.Quantity, "-5")
	assertDecimalEqual(t, "avg cost reset while non-positive", state.AvgCost, "0")
}

func TestGetStateCreatesAndPersistsZeroState(t *testing.T) {
	env := newTestEnv(t, "inventory_zero_state")
	product := env.createProduct(t, "Mola")

	state, err := env.inventory.GetState(product.ID)
	if err != nil {
		t.Fatalf("get state failed: %v", err)
	}
	if !state.Quantity.IsZero() || !state.AvgCost.IsZero() {
		t.Fatalf("expected zero state, got qty=%s avg=%s", state.Quantity, state.AvgCost)
	}

	// 零值状态作为副作用落库
	stored, err := repository.NewInventoryRepository(env.db).Get(product.ID)
	if err != nil {
		t.Fatalf("read stored state failed: %v", err)
	}
	if stored == nil {
		t.Fatalf("expected persisted zero state for product %d", product.ID)
	}
	if !stored.Quantity.IsZero() || !stored.AvgCost.IsZero() {
		t.Fatalf("expected zero stored state, got qty=%s avg=%s", stored.Quantity, stored.AvgCost)
	}
}

func TestAdjustToIncrease(t *testing.T) {
	env := newTestEnv(t, "inventory_adjust_up")
	product := env.createProduct(t, "Engrenagem")

	if _, err := env.inventory.ApplyEntry(ApplyEntryInput{
		ProductID: product.ID,
		Date:      "2024-02-01",
		Quantity:  decimal.NewFromInt(10),
		UnitCost:  dec(t, "3.0"),
	}); err != nil {
		t.Fatalf("entry failed: %v", err)
	}

	state, err := env.inventory.AdjustTo(product.ID, decimal.NewFromInt(15), "2024-02-10")
	if err != nil {
		t.Fatalf("adjust up failed: %v", err)
	}
	assertDecimalEqual(t, "quantity after adjust up", state.Quantity, "15")
	// 差额按当前均价入库，均价不变
	assertDecimalEqual(t, "avg cost after adjust up", state.AvgCost, "3")

	entries, _, err := env.inventory.ListEntries(repository.StockEntryListFilter{
		ProductID: product.ID,
		Origin:    constants.StockOriginAdjustment,
	})
	if err != nil {
		t.Fatalf("list entries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 adjustment entry, got %d", len(entries))
	}
	assertDecimalEqual(t, "adjustment entry quantity", entries[0].Quantity, "5")
	assertDecimalEqual(t, "adjustment entry unit cost", entries[0].UnitCost.Decimal, "3")
	// 校准传入的日期记在入库流水上
	if entries[0].Date != "2024-02-10" {
		t.Fatalf("expected adjustment entry date 2024-02-10, got %s", entries[0].Date)
	}
}

func TestAdjustToDecreaseAndNoop(t *testing.T) {
	env := newTestEnv(t, "inventory_adjust_down")
	product := env.createProduct(t, "Eixo")

	if _, err := env.inventory.ApplyEntry(ApplyEntryInput{
		ProductID: product.ID,
		Date:      "2024-02-01",
		Quantity:  decimal.NewFromInt(10),
		UnitCost:  dec(t, "3.0"),
	}); err != nil {
		t.Fatalf("entry failed: %v", err)
	}

	state, err := env.inventory.AdjustTo(product.ID, decimal.NewFromInt(4), "")
	if err != nil {
		t.Fatalf("adjust down failed: %v", err)
	}
	assertDecimalEqual(t, "quantity after adjust down", state.Quantity, "4")
	assertDecimalEqual(t, "avg cost after adjust down", state.AvgCost, "3")

	// 减量校准按销售口径，不产生入库流水
	entries, _, err := env.inventory.ListEntries(repository.StockEntryListFilter{
		ProductID: product.ID,
		Origin:    constants.StockOriginAdjustment,
	})
	if err != nil {
		t.Fatalf("list entries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no adjustment entries, got %d", len(entries))
	}

	state, err = env.inventory.AdjustTo(product.ID, decimal.NewFromInt(4), "")
	if err != nil {
		t.Fatalf("noop adjust failed: %v", err)
	}
	assertDecimalEqual(t, "quantity after noop adjust", state.Quantity, "4")
}

func TestAdjustToEmptyDateUsesToday(t *testing.T) {
	env := newTestEnv(t, "inventory_adjust_today")
	product := env.createProduct(t, "Rolamento")

	if _, err := env.inventory.AdjustTo(product.ID, decimal.NewFromInt(3), ""); err != nil {
		t.Fatalf("adjust failed: %v", err)
	}

	entries, _, err := env.inventory.ListEntries(repository.StockEntryListFilter{
		ProductID: product.ID,
		Origin:    constants.StockOriginAdjustment,
	})
	if err != nil {
		t.Fatalf("list entries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 adjustment entry, got %d", len(entries))
	}
	today := time.Now().Format(constants.DateLayout)
	if entries[0].Date != today {
		t.Fatalf("expected entry date %s, got %s", today, entries[0].Date)
	}
}

func TestStockLevels(t *testing.T) {
	env := newTestEnv(t, "inventory_stock_levels")
	a := env.createProduct(t, "Alfa")
	b := env.createProduct(t, "Beta")

	if _, err := env.inventory.ApplyEntry(ApplyEntryInput{
		ProductID: b.ID,
		Date:      "2024-02-01",
		Quantity:  decimal.NewFromInt(4),
		UnitCost:  dec(t, "2.5"),
	}); err != nil {
		t.Fatalf("entry failed: %v", err)
	}

	levels, err := env.inventory.StockLevels()
	if err != nil {
		t.Fatalf("stock levels failed: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(levels))
	}
	// 列表按名称排序
	if levels[0].ProductID != a.ID || levels[1].ProductID != b.ID {
		t.Fatalf("unexpected row order: %+v", levels)
	}
	assertDecimalEqual(t, "alfa quantity", levels[0].Quantity, "0")
	assertDecimalEqual(t, "beta total", levels[1].Total, "10")
}
