package service

import (
	"testing"

	"github.com/redutron/backend/internal/models"
	"github.com/redutron/backend/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db        *gorm.DB
	products  *ProductService
	inventory *InventoryService
	sales     *SalesService
	reports   *ReportService
	settings  *SettingService
	imports   *ImportService
}

func newTestEnv(t *testing.T, name string) *testEnv {
	t.Helper()
	dsn := "file:" + name + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductInventory{},
		&models.StockEntry{},
		&models.Sale{},
		&models.Setting{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	entryRepo := repository.NewStockEntryRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	locks := NewProductLocks()
	inventory := NewInventoryService(productRepo, inventoryRepo, entryRepo, locks)
	sales := NewSalesService(saleRepo, productRepo, inventory)
	products := NewProductService(productRepo)

	return &testEnv{
		db:        db,
		products:  products,
		inventory: inventory,
		sales:     sales,
		reports:   NewReportService(saleRepo),
		settings:  NewSettingService(settingRepo),
		imports:   NewImportService(products, sales),
	}
}

func (e *testEnv) createProduct(t *testing.T, name string) *models.Product {
	t.Helper()
	product, err := e.products.Create(ProductInput{Name: name})
	if err != nil {
		t.Fatalf("create product %q failed: %v", name, err)
	}
	return product
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func assertDecimalEqual(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s: got %s, want %s", label, got, want)
	}
}
