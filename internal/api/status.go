package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MartinianoLopez/comparador-clientes/internal/model"
	"github.com/MartinianoLopez/comparador-clientes/internal/service/excel"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	App         string         `json:"app"`
	Version     string         `json:"version"`
	ExtraFields []string       `json:"extraFields"`
	Labels      model.LabelSet `json:"labels"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		App:         "comparador-clientes",
		Version:     Version,
		ExtraFields: h.reconciler.ExtraFields(),
		Labels:      h.labels,
	})
}

// ConfigResponse 对比配置
type ConfigResponse struct {
	Columns        excel.Columns  `json:"columns"`
	Labels         model.LabelSet `json:"labels"`
	ExportSheet    string         `json:"exportSheet"`
	ExportFileName string         `json:"exportFileName"`
}

// GetConfig 获取对比配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		Columns:        h.cfg.Columns(),
		Labels:         h.labels,
		ExportSheet:    h.cfg.Export.SheetName,
		ExportFileName: h.exportFileName(),
	})
}
