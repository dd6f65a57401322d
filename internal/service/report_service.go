package service

import (
	"sort"
	"strings"

	"github.com/redutron/backend/internal/constants"
	"github.com/redutron/backend/internal/logger"
	"github.com/redutron/backend/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService 利润率与 ABC 曲线报表引擎
type ReportService struct {
	saleRepo repository.SaleRepository
}

// NewReportService 创建报表服务
func NewReportService(saleRepo repository.SaleRepository) *ReportService {
	return &ReportService{saleRepo: saleRepo}
}

// ReportRow 报表行（按商品聚合）
type ReportRow struct {
	ProductID          uint            `json:"product_id"`
	ProductName        string          `json:"product_name"`
	Quantity           decimal.Decimal `json:"quantity"`
	GrossRevenue       decimal.Decimal `json:"gross_revenue"`
	Discounts          decimal.Decimal `json:"discounts"`
	MarketplaceFees    decimal.Decimal `json:"marketplace_fees"`
	OtherCosts         decimal.Decimal `json:"other_costs"`
	Tax                decimal.Decimal `json:"tax"`
	Expense            decimal.Decimal `json:"expense"`
	ProductCost        decimal.Decimal `json:"product_cost"`
	TotalVariableCosts decimal.Decimal `json:"total_variable_costs"`
	ContributionMargin decimal.Decimal `json:"contribution_margin"`
	MarginPct          decimal.Decimal `json:"margin_pct"`
	CumulativePct      decimal.Decimal `json:"cumulative_pct"`
	Curve              string          `json:"curve"`
}

// ReportTotals 报表合计
type ReportTotals struct {
	Quantity           decimal.Decimal `json:"quantity"`
	Discounts          decimal.Decimal `json:"discounts"`
	MarketplaceFees    decimal.Decimal `json:"marketplace_fees"`
	OtherCosts         decimal.Decimal `json:"other_costs"`
	Tax                decimal.Decimal `json:"tax"`
	Expense            decimal.Decimal `json:"expense"`
	ProductCost        decimal.Decimal `json:"product_cost"`
	TotalVariableCosts decimal.Decimal `json:"total_variable_costs"`
	ContributionMargin decimal.Decimal `json:"contribution_margin"`
}

// MarginReport 利润率报表
type MarginReport struct {
	Rows              []ReportRow     `json:"rows"`
	TotalGrossRevenue decimal.Decimal `json:"total_gross_revenue"`
	ItemCount         int             `json:"item_count"`
	Totals            ReportTotals    `json:"totals"`
	Criterion         string          `json:"criterion"`
	DateFrom          string          `json:"date_from"`
	DateTo            string          `json:"date_to"`
}

// Compute 计算指定区间的利润率报表
// 税率与费率由调用方显式传入，报表引擎不隐式读取配置。
// 算法：按商品聚合 → 逐项算税费与贡献边际 → 按排序依据降序 →
// 按毛收入累计占比划分 ABC 曲线（<=80 为 A，<=95 为 B）。
// 毛收入合计为零时返回空报表。
func (s *ReportService) Compute(dateFrom, dateTo, criterion string, rates Rates) (*MarginReport, error) {
	if dateFrom != "" {
		normalized, err := NormalizeDate(dateFrom)
		if err != nil {
			return nil, err
		}
		dateFrom = normalized
	}
	if dateTo != "" {
		normalized, err := NormalizeDate(dateTo)
		if err != nil {
			return nil, err
		}
		dateTo = normalized
	}
	criterion = strings.TrimSpace(criterion)
	if criterion == "" {
		criterion = constants.ReportCriterionGrossRevenue
	}

	sales, err := s.saleRepo.ListRangeWithProduct(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	report := &MarginReport{
		Rows:      []ReportRow{},
		Criterion: criterion,
		DateFrom:  dateFrom,
		DateTo:    dateTo,
	}

	// 按商品聚合，保持首次出现顺序
	index := make(map[uint]int)
	rows := make([]ReportRow, 0)
	for _, sale := range sales {
		i, ok := index[sale.ProductID]
		if !ok {
			i = len(rows)
			index[sale.ProductID] = i
			rows = append(rows, ReportRow{
				ProductID:   sale.ProductID,
				ProductName: sale.ProductName,
			})
		}
		row := &rows[i]
		row.Quantity = row.Quantity.Add(sale.Quantity)
		row.GrossRevenue = row.GrossRevenue.Add(sale.Quantity.Mul(sale.UnitPrice.Decimal))
		row.Discounts = row.Discounts.Add(sale.Discount.Decimal)
		row.MarketplaceFees = row.MarketplaceFees.Add(sale.MarketplaceFee.Decimal)
		row.OtherCosts = row.OtherCosts.Add(sale.OtherVariableCost.Decimal)
		row.ProductCost = row.ProductCost.Add(sale.Quantity.Mul(sale.CostUnitAtSale))
	}

	totalGross := decimal.Zero
	hundred := decimal.NewFromInt(100)
	for i := range rows {
		row := &rows[i]
		row.Tax = row.GrossRevenue.Mul(rates.TaxPct)
		row.Expense = row.GrossRevenue.Sub(row.MarketplaceFees).Mul(rates.ExpensePct)
		net := row.GrossRevenue.Sub(row.Discounts)
		row.TotalVariableCosts = row.ProductCost.
			Add(row.MarketplaceFees).
			Add(row.OtherCosts).
			Add(row.Tax).
			Add(row.Expense)
		row.ContributionMargin = net.Sub(row.TotalVariableCosts)
		if net.GreaterThan(decimal.Zero) {
			row.MarginPct = row.ContributionMargin.Div(net).Mul(hundred)
		} else {
			row.MarginPct = decimal.Zero
		}
		totalGross = totalGross.Add(row.GrossRevenue)

		report.Totals.Quantity = report.Totals.Quantity.Add(row.Quantity)
		report.Totals.Discounts = report.Totals.Discounts.Add(row.Discounts)
		report.Totals.MarketplaceFees = report.Totals.MarketplaceFees.Add(row.MarketplaceFees)
		report.Totals.OtherCosts = report.Totals.OtherCosts.Add(row.OtherCosts)
		report.Totals.Tax = report.Totals.Tax.Add(row.Tax)
		report.Totals.Expense = report.Totals.Expense.Add(row.Expense)
		report.Totals.ProductCost = report.Totals.ProductCost.Add(row.ProductCost)
		report.Totals.TotalVariableCosts = report.Totals.TotalVariableCosts.Add(row.TotalVariableCosts)
		report.Totals.ContributionMargin = report.Totals.ContributionMargin.Add(row.ContributionMargin)
	}

	if totalGross.IsZero() {
		return report, nil
	}

	if criterion == constants.ReportCriterionContributionMargin {
		sort.SliceStable(rows, func(a, b int) bool {
			return rows[a].ContributionMargin.GreaterThan(rows[b].ContributionMargin)
		})
	} else {
		sort.SliceStable(rows, func(a, b int) bool {
			return rows[a].GrossRevenue.GreaterThan(rows[b].GrossRevenue)
		})
	}

	// ABC 曲线固定按毛收入累计占比划分，与排序依据无关
	boundaryA := decimal.NewFromInt(constants.CurveTierABoundaryPct)
	boundaryB := decimal.NewFromInt(constants.CurveTierBBoundaryPct)
	cumulative := decimal.Zero
	for i := range rows {
		cumulative = cumulative.Add(rows[i].GrossRevenue)
		pct := cumulative.Div(totalGross).Mul(hundred)
		rows[i].CumulativePct = pct
		switch {
		case pct.LessThanOrEqual(boundaryA):
			rows[i].Curve = constants.CurveTierA
		case pct.LessThanOrEqual(boundaryB):
			rows[i].Curve = constants.CurveTierB
		default:
			rows[i].Curve = constants.CurveTierC
		}
	}

	report.Rows = rows
	report.TotalGrossRevenue = totalGross
	report.ItemCount = len(rows)

	logger.Debugw("margin_report_computed",
		"date_from", dateFrom,
		"date_to", dateTo,
		"criterion", criterion,
		"item_count", report.ItemCount,
	)
	return report, nil
}
