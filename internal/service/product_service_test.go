package service

import (
	"errors"
	"testing"

	"github.com/redutron/backend/internal/models"
	"github.com/redutron/backend/internal/repository"

	"github.com/shopspring/decimal"
)

func TestProductCreateValidation(t *testing.T) {
	env := newTestEnv(t, "product_create_validation")

	if _, err := env.products.Create(ProductInput{Name: "   "}); !errors.Is(err, ErrEmptyProductName) {
		t.Fatalf("expected ErrEmptyProductName, got %v", err)
	}

	sku := "SKU-1"
	if _, err := env.products.Create(ProductInput{Name: "Primeiro", SKU: &sku}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := env.products.Create(ProductInput{Name: "Segundo", SKU: &sku}); !errors.Is(err, ErrDuplicateSKU) {
		t.Fatalf("expected ErrDuplicateSKU, got %v", err)
	}

	blank := "  "
	product, err := env.products.Create(ProductInput{Name: "Terceiro", SKU: &blank})
	if err != nil {
		t.Fatalf("create with blank sku failed: %v", err)
	}
	if product.SKU != nil {
		t.Fatalf("blank sku should be stored as null, got %q", *product.SKU)
	}
}

func TestProductUpdate(t *testing.T) {
	env := newTestEnv(t, "product_update")
	product := env.createProduct(t, "Antigo")

	updated, err := env.products.Update(product.ID, ProductInput{
		Name:         "Novo",
		VariableCost: dec(t, "1.25"),
		DefaultPrice: dec(t, "9.90"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Novo" {
		t.Fatalf("expected renamed product, got %s", updated.Name)
	}
	assertDecimalEqual(t, "variable cost", updated.VariableCost.Decimal, "1.25")
	assertDecimalEqual(t, "default price", updated.DefaultPrice.Decimal, "9.9")

	if _, err := env.products.Update(9999, ProductInput{Name: "X"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductDeleteCascadesOwnedRecords(t *testing.T) {
	env := newTestEnv(t, "product_delete_service")
	product := env.createProduct(t, "Descartavel")

	if _, err := env.inventory.ApplyEntry(ApplyEntryInput{
		ProductID: product.ID,
		Date:      "2024-06-01",
		Quantity:  decimal.NewFromInt(5),
		UnitCost:  decimal.NewFromInt(2),
	}); err != nil {
		t.Fatalf("entry failed: %v", err)
	}
	if _, err := env.sales.RecordSale(RecordSaleInput{
		ProductID: product.ID,
		Date:      "2024-06-02",
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(8),
	}); err != nil {
		t.Fatalf("sale failed: %v", err)
	}

	if err := env.products.Delete(product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var sales, entries, states int64
	env.db.Model(&models.Sale{}).Where("product_id = ?", product.ID).Count(&sales)
	env.db.Model(&models.StockEntry{}).Where("product_id = ?", product.ID).Count(&entries)
	env.db.Model(&models.ProductInventory{}).Where("product_id = ?", product.ID).Count(&states)
	if sales != 0 || entries != 0 || states != 0 {
		t.Fatalf("expected cascade delete, got sales=%d entries=%d states=%d", sales, entries, states)
	}

	if err := env.products.Delete(product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestFindOrCreate(t *testing.T) {
	env := newTestEnv(t, "product_find_or_create")

	created, err := env.products.FindOrCreate("MLB-123", "Fone de Ouvido", dec(t, "49.90"))
	if err != nil {
		t.Fatalf("find or create failed: %v", err)
	}
	if created.SKU == nil || *created.SKU != "MLB-123" {
		t.Fatalf("expected sku MLB-123, got %+v", created.SKU)
	}
	if created.Name != "Fone de Ouvido" {
		t.Fatalf("unexpected name: %s", created.Name)
	}
	assertDecimalEqual(t, "default price", created.DefaultPrice.Decimal, "49.9")

	// 二次查找命中 SKU，不重复建档
	again, err := env.products.FindOrCreate("MLB-123", "Outro Nome", decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("second find failed: %v", err)
	}
	if again.ID != created.ID {
		t.Fatalf("expected existing product, got new id %d", again.ID)
	}

	// 名称匹配同样命中
	named := env.createProduct(t, "Carregador")
	byName, err := env.products.FindOrCreate("Carregador", "", decimal.Zero)
	if err != nil {
		t.Fatalf("find by name failed: %v", err)
	}
	if byName.ID != named.ID {
		t.Fatalf("expected match by name, got new id %d", byName.ID)
	}

	if _, err := env.products.FindOrCreate("  ", "", decimal.Zero); !errors.Is(err, ErrEmptyProductName) {
		t.Fatalf("expected ErrEmptyProductName, got %v", err)
	}

	total, _, err := env.products.List(repository.ProductListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(total) != 2 {
		t.Fatalf("expected 2 products, got %d", len(total))
	}
}
