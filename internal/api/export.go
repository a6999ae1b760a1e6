package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/MartinianoLopez/comparador-clientes/internal/service/excel"
	"github.com/MartinianoLopez/comparador-clientes/internal/util"
)

// DownloadExport 下载对比结果 Excel（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el token"})
		return
	}

	result, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "El enlace de descarga expiró"})
		return
	}

	file, err := h.exporter.Export(result)
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", buildExportContentDisposition(h.exportFileName()))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		util.Log.WithError(err).WithField("run_id", result.RunID).Error("write export failed")
		return
	}

	h.downloads.delete(token)
}

func (h *Handler) exportFileName() string {
	if h.cfg.Export.FileName != "" {
		return h.cfg.Export.FileName
	}
	return excel.ExportFileName
}

// buildExportContentDisposition ASCII 文件名 + RFC 5987 编码文件名
func buildExportContentDisposition(name string) string {
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", asciiFallback(name), url.PathEscape(name))
}

func asciiFallback(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r > 0x7e || r < 0x20 || r == '"' || r == '\\' {
			out = append(out, '_')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
