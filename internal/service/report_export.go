package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var reportExportHeader = []string{
	"Product",
	"Quantity",
	"Gross revenue",
	"Discounts",
	"Marketplace fees",
	"Taxes",
	"Expenses",
	"Other costs",
	"Product cost",
	"Variable costs",
	"Contribution margin",
	"Margin (%)",
	"Curve",
}

func reportExportRow(row ReportRow) []string {
	return []string{
		row.ProductName,
		row.Quantity.String(),
		row.GrossRevenue.StringFixed(2),
		row.Discounts.StringFixed(2),
		row.MarketplaceFees.StringFixed(2),
		row.Tax.StringFixed(2),
		row.Expense.StringFixed(2),
		row.OtherCosts.StringFixed(2),
		row.ProductCost.StringFixed(2),
		row.TotalVariableCosts.StringFixed(2),
		row.ContributionMargin.StringFixed(2),
		row.MarginPct.StringFixed(2),
		row.Curve,
	}
}

func reportExportTotals(report *MarginReport) [][]string {
	return [][]string{
		{"TOTAL QUANTITY", report.Totals.Quantity.StringFixed(2)},
		{"TOTAL GROSS REVENUE", report.TotalGrossRevenue.StringFixed(2)},
		{"TOTAL DISCOUNTS", report.Totals.Discounts.StringFixed(2)},
		{"TOTAL MARKETPLACE FEES", report.Totals.MarketplaceFees.StringFixed(2)},
		{"TOTAL TAXES", report.Totals.Tax.StringFixed(2)},
		{"TOTAL EXPENSES", report.Totals.Expense.StringFixed(2)},
		{"TOTAL OTHER COSTS", report.Totals.OtherCosts.StringFixed(2)},
		{"TOTAL PRODUCT COST", report.Totals.ProductCost.StringFixed(2)},
		{"TOTAL VARIABLE COSTS", report.Totals.TotalVariableCosts.StringFixed(2)},
		{"TOTAL CONTRIBUTION MARGIN", report.Totals.ContributionMargin.StringFixed(2)},
	}
}

// ExportCSV 导出报表为分号分隔的 CSV（带 UTF-8 BOM，便于电子表格软件识别）
func (s *ReportService) ExportCSV(report *MarginReport) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\xEF\xBB\xBF")

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(reportExportHeader); err != nil {
		return nil, err
	}
	for _, row := range report.Rows {
		if err := w.Write(reportExportRow(row)); err != nil {
			return nil, err
		}
	}
	if err := w.Write([]string{}); err != nil {
		return nil, err
	}
	for _, total := range reportExportTotals(report) {
		if err := w.Write(total); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportXLSX 导出报表为 XLSX 工作簿
func (s *ReportService) ExportXLSX(report *MarginReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Margin Report"
	f.SetSheetName("Sheet1", sheet)

	writeRow := func(rowIdx int, values []string) error {
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, reportExportHeader); err != nil {
		return nil, err
	}
	rowIdx := 2
	for _, row := range report.Rows {
		if err := writeRow(rowIdx, reportExportRow(row)); err != nil {
			return nil, err
		}
		rowIdx++
	}
	rowIdx++
	for _, total := range reportExportTotals(report) {
		if err := writeRow(rowIdx, total); err != nil {
			return nil, err
		}
		rowIdx++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write report workbook failed: %w", err)
	}
	return buf.Bytes(), nil
}
