package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/redutron/backend/internal/http/response"
	"github.com/redutron/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// GetMarginReport 计算贡献边际报表
// 税率与费率从设置里读出后显式传给报表引擎。
func (h *Handler) GetMarginReport(c *gin.Context) {
	report, ok := h.computeMarginReport(c)
	if !ok {
		return
	}
	response.Success(c, report)
}

// ExportMarginReport 导出贡献边际报表（csv 或 xlsx）
func (h *Handler) ExportMarginReport(c *gin.Context) {
	report, ok := h.computeMarginReport(c)
	if !ok {
		return
	}

	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "csv")))
	var (
		data        []byte
		contentType string
		err         error
	)
	switch format {
	case "csv":
		data, err = h.ReportService.ExportCSV(report)
		contentType = "text/csv; charset=utf-8"
	case "xlsx":
		data, err = h.ReportService.ExportXLSX(report)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		respondError(c, response.CodeBadRequest, "不支持的导出格式", nil)
		return
	}
	if err != nil {
		respondError(c, response.CodeInternal, "导出报表失败", err)
		return
	}

	filename := exportFilename(report, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func (h *Handler) computeMarginReport(c *gin.Context) (*service.MarginReport, bool) {
	rates, err := h.SettingService.GetRates()
	if err != nil {
		respondError(c, response.CodeInternal, "查询费率失败", err)
		return nil, false
	}

	report, err := h.ReportService.Compute(
		c.Query("date_from"),
		c.Query("date_to"),
		c.Query("criterion"),
		rates,
	)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			respondError(c, response.CodeBadRequest, "日期格式必须为 YYYY-MM-DD", nil)
			return nil, false
		}
		respondError(c, response.CodeInternal, "计算报表失败", err)
		return nil, false
	}
	return report, true
}

func exportFilename(report *service.MarginReport, format string) string {
	name := "relatorio_margem"
	if report.DateFrom != "" || report.DateTo != "" {
		from := report.DateFrom
		if from == "" {
			from = "inicio"
		}
		to := report.DateTo
		if to == "" {
			to = "hoje"
		}
		name = fmt.Sprintf("%s_%s_%s", name, from, to)
	}
	return name + "." + format
}
