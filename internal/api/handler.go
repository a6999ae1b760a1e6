package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MartinianoLopez/comparador-clientes/internal/config"
	"github.com/MartinianoLopez/comparador-clientes/internal/model"
	"github.com/MartinianoLopez/comparador-clientes/internal/service/excel"
	"github.com/MartinianoLopez/comparador-clientes/internal/service/reconciler"
)

// Version 构建版本，通过 -ldflags 注入
var Version = "dev"

// downloadTTL 导出链接有效期
const downloadTTL = 10 * time.Minute

// Handler API 处理器
type Handler struct {
	cfg        *config.AppConfig
	labels     model.LabelSet
	decoder    *excel.Decoder
	exporter   *excel.Exporter
	reconciler *reconciler.Reconciler
	downloads  *exportDownloadStore
}

// NewHandler 根据配置创建处理器
func NewHandler(cfg *config.AppConfig) (*Handler, error) {
	labels, err := cfg.LabelSet()
	if err != nil {
		return nil, err
	}
	return &Handler{
		cfg:        cfg,
		labels:     labels,
		decoder:    excel.NewDecoder(cfg.Columns()),
		exporter:   excel.NewExporter(cfg.Export.SheetName),
		reconciler: reconciler.New(cfg.Comparison.ExtraFields, labels),
		downloads:  newExportDownloadStore(),
	}, nil
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)
	router.GET("/config", h.GetConfig)

	// 对比
	router.POST("/compare", h.Compare)

	// 导出
	router.GET("/export/download/:token", h.DownloadExport)
}
