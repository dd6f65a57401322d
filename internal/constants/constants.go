package constants

// 销售来源常量
const (
	SaleSourceManual       = "manual"
	SaleSourceMarketplace  = "marketplace"
	SaleSourceConsolidated = "consolidated"
)

// 库存流水来源常量（导入走销售流水，不产生入库）
const (
	StockOriginManual     = "manual_entry"
	StockOriginAdjustment = "positive_adjustment"
)

// 报表排序依据常量
const (
	ReportCriterionGrossRevenue       = "gross_revenue"
	ReportCriterionContributionMargin = "contribution_margin"
)

// ABC 曲线分级常量
// 按累计毛收入占比划分：<=80% 为 A，<=95% 为 B，其余为 C（固定策略，不可配置）。
const (
	CurveTierA = "A"
	CurveTierB = "B"
	CurveTierC = "C"

	CurveTierABoundaryPct = 80
	CurveTierBBoundaryPct = 95
)

// 设置键常量
const (
	SettingKeyTaxPct     = "tax_pct"
	SettingKeyExpensePct = "expense_pct"

	DefaultTaxPct     = "0.05"
	DefaultExpensePct = "0.035"
)

// 日期规范格式（报表按字典序比较，要求补零的 ISO 形式）
const DateLayout = "2006-01-02"
