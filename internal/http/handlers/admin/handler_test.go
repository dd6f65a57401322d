package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redutron/backend/internal/config"
	"github.com/redutron/backend/internal/models"
	"github.com/redutron/backend/internal/provider"
	"github.com/redutron/backend/internal/repository"
	"github.com/redutron/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestHandler(t *testing.T, name string) *Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:admin_"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductInventory{},
		&models.StockEntry{},
		&models.Sale{},
		&models.Setting{},
		&models.Admin{},
	); err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	entryRepo := repository.NewStockEntryRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	locks := service.NewProductLocks()
	inventory := service.NewInventoryService(productRepo, inventoryRepo, entryRepo, locks)
	products := service.NewProductService(productRepo)
	sales := service.NewSalesService(saleRepo, productRepo, inventory)

	c := &provider.Container{
		Config:           &config.Config{},
		ProductRepo:      productRepo,
		InventoryRepo:    inventoryRepo,
		StockEntryRepo:   entryRepo,
		SaleRepo:         saleRepo,
		SettingRepo:      settingRepo,
		ProductService:   products,
		InventoryService: inventory,
		SalesService:     sales,
		ReportService:    service.NewReportService(saleRepo),
		SettingService:   service.NewSettingService(settingRepo),
		ImportService:    service.NewImportService(products, sales),
	}
	return New(c)
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request failed: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal envelope failed: %v", err)
	}
	return resp
}

func TestCreateProductHandler(t *testing.T) {
	h := newTestHandler(t, "create_product")
	r := gin.New()
	r.POST("/products", h.CreateProduct)

	resp := doJSON(t, r, http.MethodPost, "/products", gin.H{
		"name": "Caneca",
		"sku":  "CNK-1",
	})
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var product models.Product
	if err := json.Unmarshal(resp.Data, &product); err != nil {
		t.Fatalf("unmarshal product failed: %v", err)
	}
	if product.ID == 0 || product.Name != "Caneca" {
		t.Fatalf("unexpected product: %+v", product)
	}

	// 重复 SKU 返回业务 400
	resp = doJSON(t, r, http.MethodPost, "/products", gin.H{
		"name": "Outra Caneca",
		"sku":  "CNK-1",
	})
	if resp.StatusCode != 400 {
		t.Fatalf("duplicate sku status_code want 400 got %d", resp.StatusCode)
	}
}

func TestCreateSaleHandlerValidation(t *testing.T) {
	h := newTestHandler(t, "create_sale_validation")
	r := gin.New()
	r.POST("/sales", h.CreateSale)

	product, err := h.ProductService.Create(service.ProductInput{Name: "Copo"})
	if err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	resp := doJSON(t, r, http.MethodPost, "/sales", gin.H{
		"product_id": product.ID,
		"date":       "2024-03-02",
		"quantity":   "0",
		"unit_price": "10",
	})
	if resp.StatusCode != 400 {
		t.Fatalf("zero quantity status_code want 400 got %d", resp.StatusCode)
	}

	resp = doJSON(t, r, http.MethodPost, "/sales", gin.H{
		"product_id": product.ID,
		"date":       "02/03/2024",
		"quantity":   "1",
		"unit_price": "10",
	})
	if resp.StatusCode != 400 {
		t.Fatalf("non-ISO date status_code want 400 got %d", resp.StatusCode)
	}

	resp = doJSON(t, r, http.MethodPost, "/sales", gin.H{
		"product_id": product.ID,
		"date":       "2024-03-02",
		"quantity":   "2",
		"unit_price": "10",
	})
	if resp.StatusCode != 0 {
		t.Fatalf("valid sale status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
}

func TestCreateStockEntryHandlerValidation(t *testing.T) {
	h := newTestHandler(t, "create_entry_validation")
	r := gin.New()
	r.POST("/stock/entries", h.CreateStockEntry)

	product, err := h.ProductService.Create(service.ProductInput{Name: "Prato"})
	if err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	// 下限与日期校验在入口完成
	resp := doJSON(t, r, http.MethodPost, "/stock/entries", gin.H{
		"product_id": product.ID,
		"date":       "2024-03-02",
		"quantity":   "0",
		"unit_cost":  "1",
	})
	if resp.StatusCode != 400 {
		t.Fatalf("zero quantity status_code want 400 got %d", resp.StatusCode)
	}

	resp = doJSON(t, r, http.MethodPost, "/stock/entries", gin.H{
		"product_id": product.ID,
		"date":       "2024-03-02",
		"quantity":   "1",
		"unit_cost":  "-0.5",
	})
	if resp.StatusCode != 400 {
		t.Fatalf("negative cost status_code want 400 got %d", resp.StatusCode)
	}

	resp = doJSON(t, r, http.MethodPost, "/stock/entries", gin.H{
		"product_id": product.ID,
		"date":       "02/03/2024",
		"quantity":   "1",
		"unit_cost":  "1",
	})
	if resp.StatusCode != 400 {
		t.Fatalf("non-ISO date status_code want 400 got %d", resp.StatusCode)
	}

	resp = doJSON(t, r, http.MethodPost, "/stock/entries", gin.H{
		"product_id": product.ID,
		"date":       "2024-03-02",
		"quantity":   "5",
		"unit_cost":  "2",
	})
	if resp.StatusCode != 0 {
		t.Fatalf("valid entry status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
}

func TestAdjustStockHandlerWithDate(t *testing.T) {
	h := newTestHandler(t, "adjust_stock_date")
	r := gin.New()
	r.POST("/stock/adjust", h.AdjustStock)

	product, err := h.ProductService.Create(service.ProductInput{Name: "Jarra"})
	if err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	resp := doJSON(t, r, http.MethodPost, "/stock/adjust", gin.H{
		"product_id":      product.ID,
		"target_quantity": "4",
		"date":            "02/03/2024",
	})
	if resp.StatusCode != 400 {
		t.Fatalf("non-ISO date status_code want 400 got %d", resp.StatusCode)
	}

	resp = doJSON(t, r, http.MethodPost, "/stock/adjust", gin.H{
		"product_id":      product.ID,
		"target_quantity": "4",
		"date":            "2024-03-02",
	})
	if resp.StatusCode != 0 {
		t.Fatalf("adjust status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}

	entries, _, err := h.InventoryService.ListEntries(repository.StockEntryListFilter{ProductID: product.ID})
	if err != nil {
		t.Fatalf("list entries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Date != "2024-03-02" {
		t.Fatalf("expected adjustment entry on 2024-03-02, got %+v", entries)
	}
}

func TestGetRatesHandlerDefaults(t *testing.T) {
	h := newTestHandler(t, "get_rates")
	r := gin.New()
	r.GET("/settings/rates", h.GetRates)

	resp := doJSON(t, r, http.MethodGet, "/settings/rates", nil)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	var rates struct {
		TaxPct     string `json:"tax_pct"`
		ExpensePct string `json:"expense_pct"`
	}
	if err := json.Unmarshal(resp.Data, &rates); err != nil {
		t.Fatalf("unmarshal rates failed: %v", err)
	}
	if rates.TaxPct != "0.05" || rates.ExpensePct != "0.035" {
		t.Fatalf("unexpected default rates: %+v", rates)
	}
}
