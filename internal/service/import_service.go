package service

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/redutron/backend/internal/constants"
	"github.com/redutron/backend/internal/logger"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ImportService 电子表格导入适配器
// 消费外部表格（统一模板与 Mercado Livre 导出），逐行转换为销售记账。
// 单行解析失败只跳过该行，不中断整个导入。
type ImportService struct {
	products *ProductService
	sales    *SalesService
}

// NewImportService 创建导入服务
func NewImportService(products *ProductService, sales *SalesService) *ImportService {
	return &ImportService{products: products, sales: sales}
}

// ImportResult 导入结果统计
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// 统一销售模板的列头（第 1 行）
var consolidatedColumns = []string{"Produto", "Data", "Quantidade", "Preço unitário", "Comissão", "Origem"}

// ConsolidatedTemplate 生成统一销售模板工作簿
func (s *ImportService) ConsolidatedTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Vendas Consolidadas"
	f.SetSheetName("Sheet1", sheet)
	for col, name := range consolidatedColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write template workbook failed: %w", err)
	}
	return buf.Bytes(), nil
}

func readSheetRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook failed: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet rows failed: %w", err)
	}
	return rows, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// headerIndex 把列头行映射为 小写列名 -> 列下标
func headerIndex(row []string) map[string]int {
	index := make(map[string]int, len(row))
	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "" {
			continue
		}
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return index
}

func findColumn(index map[string]int, names ...string) int {
	for _, name := range names {
		if col, ok := index[strings.ToLower(name)]; ok {
			return col
		}
	}
	return -1
}

// ImportConsolidated 导入统一销售模板
// 列头在第 1 行，Produto 同时作为 SKU 与名称做建档匹配。
func (s *ImportService) ImportConsolidated(r io.Reader) (*ImportResult, error) {
	rows, err := readSheetRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook is empty")
	}

	index := headerIndex(rows[0])
	for _, required := range []string{"Produto", "Data", "Quantidade", "Preço unitário", "Comissão"} {
		if findColumn(index, required) < 0 {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}
	colProduct := findColumn(index, "Produto")
	colDate := findColumn(index, "Data")
	colQty := findColumn(index, "Quantidade")
	colPrice := findColumn(index, "Preço unitário")
	colFee := findColumn(index, "Comissão")
	colOrigin := findColumn(index, "Origem")

	result := &ImportResult{}
	for _, row := range rows[1:] {
		productText := cellAt(row, colProduct)
		if productText == "" || strings.EqualFold(productText, "nan") || strings.EqualFold(productText, "none") {
			continue
		}
		date := ParseFlexibleDate(cellAt(row, colDate))
		quantity := ParseLocaleNumber(cellAt(row, colQty))
		price := ParseLocaleNumber(cellAt(row, colPrice))
		fee := ParseLocaleNumber(cellAt(row, colFee))
		if quantity.LessThanOrEqual(decimal.Zero) || price.LessThanOrEqual(decimal.Zero) {
			result.Skipped++
			continue
		}
		source := cellAt(row, colOrigin)
		if source == "" {
			source = constants.SaleSourceConsolidated
		}

		product, err := s.products.FindOrCreate(productText, productText, price)
		if err != nil {
			result.Skipped++
			continue
		}
		if _, err := s.sales.RecordSale(RecordSaleInput{
			ProductID:      product.ID,
			Date:           date,
			Quantity:       quantity,
			UnitPrice:      price,
			MarketplaceFee: fee,
			Source:         source,
		}); err != nil {
			result.Skipped++
			continue
		}
		result.Imported++
	}

	logger.Infow("consolidated_import_finished",
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	return result, nil
}

// Mercado Livre 导出表格的列头在第 6 行
const marketplaceHeaderRow = 6

// ImportMarketplace 导入 Mercado Livre 销售导出
// 列名按已知别名模糊匹配；单价 = (商品收入 + 平台费) / 数量。
func (s *ImportService) ImportMarketplace(r io.Reader) (*ImportResult, error) {
	rows, err := readSheetRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < marketplaceHeaderRow {
		return nil, fmt.Errorf("workbook has no header row")
	}

	index := headerIndex(rows[marketplaceHeaderRow-1])
	colSKU := findColumn(index, "sku")
	colDate := findColumn(index, "data da venda")
	colQty := findColumn(index, "unidades", "quantidade", "quantidade / unidades")
	colRevenue := findColumn(index, "receita por produtos (brl)", "receita por produtos")
	colFee := findColumn(index,
		"tarifa de venda e impostos (brl)",
		"tarifa de venda e impostos brl",
		"tarifa de venda e impostos",
	)
	colListing := findColumn(index, "# de anúncio", "# de anuncio", "nº do anúncio", "n° do anúncio")
	colTitle := findColumn(index, "título do anúncio", "titulo do anuncio")

	if colDate < 0 || colQty < 0 || colRevenue < 0 || colFee < 0 {
		return nil, fmt.Errorf("missing required marketplace columns")
	}

	result := &ImportResult{}
	for _, row := range rows[marketplaceHeaderRow:] {
		if cellAt(row, colQty) == "" {
			continue
		}
		quantity := ParseLocaleNumber(cellAt(row, colQty))
		if quantity.LessThanOrEqual(decimal.Zero) {
			result.Skipped++
			continue
		}
		date := ParseFlexibleDate(cellAt(row, colDate))
		revenue := ParseLocaleNumber(cellAt(row, colRevenue))
		fee := ParseLocaleNumber(cellAt(row, colFee))
		unitPrice := revenue.Add(fee).Div(quantity)

		sku := cellAt(row, colSKU)
		if sku == "" {
			sku = cellAt(row, colListing)
		}
		if sku == "" {
			sku = "SEM-SKU"
		}
		name := cellAt(row, colTitle)
		if name == "" {
			name = "Produto " + sku
		}

		product, err := s.products.FindOrCreate(sku, name, unitPrice)
		if err != nil {
			result.Skipped++
			continue
		}
		if _, err := s.sales.RecordSale(RecordSaleInput{
			ProductID:      product.ID,
			Date:           date,
			Quantity:       quantity,
			UnitPrice:      unitPrice,
			MarketplaceFee: fee,
			Source:         constants.SaleSourceMarketplace,
		}); err != nil {
			result.Skipped++
			continue
		}
		result.Imported++
	}

	logger.Infow("marketplace_import_finished",
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	return result, nil
}
