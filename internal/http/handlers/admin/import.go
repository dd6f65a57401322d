package admin

import (
	"fmt"
	"net/http"

	"github.com/redutron/backend/internal/http/response"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportConsolidated 导入统一销售工作簿（multipart 字段 file）
func (h *Handler) ImportConsolidated(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "缺少上传文件", err)
		return
	}
	reader, err := file.Open()
	if err != nil {
		respondError(c, response.CodeInternal, "读取上传文件失败", err)
		return
	}
	defer reader.Close()

	result, err := h.ImportService.ImportConsolidated(reader)
	if err != nil {
		respondError(c, response.CodeBadRequest, fmt.Sprintf("导入失败: %v", err), err)
		return
	}

	requestLog(c).Infow("consolidated_import_requested",
		"filename", file.Filename,
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	response.Success(c, result)
}

// GetConsolidatedTemplate 下载统一销售模板
func (h *Handler) GetConsolidatedTemplate(c *gin.Context) {
	data, err := h.ImportService.ConsolidatedTemplate()
	if err != nil {
		respondError(c, response.CodeInternal, "生成模板失败", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="modelo_vendas_consolidadas.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ImportMarketplace 导入市场平台导出的销售工作簿（multipart 字段 file）
func (h *Handler) ImportMarketplace(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "缺少上传文件", err)
		return
	}
	reader, err := file.Open()
	if err != nil {
		respondError(c, response.CodeInternal, "读取上传文件失败", err)
		return
	}
	defer reader.Close()

	result, err := h.ImportService.ImportMarketplace(reader)
	if err != nil {
		respondError(c, response.CodeBadRequest, fmt.Sprintf("导入失败: %v", err), err)
		return
	}

	requestLog(c).Infow("marketplace_import_requested",
		"filename", file.Filename,
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	response.Success(c, result)
}
