package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MartinianoLopez/comparador-clientes/internal/model"
	"github.com/MartinianoLopez/comparador-clientes/internal/service/excel"
	"github.com/MartinianoLopez/comparador-clientes/internal/service/reconciler"
	"github.com/MartinianoLopez/comparador-clientes/internal/service/render"
	"github.com/MartinianoLopez/comparador-clientes/internal/util"
)

type comparisonItem struct {
	model.ComparisonRecord
	Label string `json:"label"`
}

type fileInfo struct {
	FileName    string `json:"fileName"`
	SheetName   string `json:"sheetName"`
	Records     int    `json:"records"`
	SkippedRows int    `json:"skippedRows"`
}

// CompareResponse 对比结果响应
type CompareResponse struct {
	RunID       string             `json:"runId"`
	Files       []fileInfo         `json:"files"`
	ExtraFields []string           `json:"extraFields"`
	Comparisons []comparisonItem   `json:"comparisons"`
	Summary     []model.SummaryRow `json:"summary"`
	NetTotal    float64            `json:"netTotal"`
	HTML        string             `json:"html"`
	DownloadURL string             `json:"downloadUrl"`
}

// Compare 上传两个 Excel（上期在前）并返回对比结果
// POST /api/compare
func (h *Handler) Compare(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formulario inválido"})
		return
	}

	files := form.File["file"]
	if len(files) < 2 {
		writeError(c, &reconciler.InputError{Got: len(files)})
		return
	}

	// 多余的文件忽略：第一个为上期，第二个为本期
	datasets := make([]*excel.Dataset, 0, 2)
	for _, fh := range files[:2] {
		f, err := fh.Open()
		if err != nil {
			writeError(c, fmt.Errorf("open upload %s: %w", fh.Filename, err))
			return
		}
		ds, err := h.decoder.Decode(f, fh.Filename)
		_ = f.Close()
		if err != nil {
			writeError(c, err)
			return
		}
		datasets = append(datasets, ds)
	}

	records := make([][]model.RawRecord, 0, len(datasets))
	for _, ds := range datasets {
		records = append(records, ds.Records)
	}
	result, err := h.reconciler.Compare(records...)
	if err != nil {
		writeError(c, err)
		return
	}

	html, err := render.HTML(result)
	if err != nil {
		writeError(c, err)
		return
	}

	token := h.downloads.put(result, downloadTTL)
	prefix := strings.TrimSuffix(c.FullPath(), "/compare")

	resp := CompareResponse{
		RunID:       result.RunID,
		Files:       make([]fileInfo, 0, len(datasets)),
		ExtraFields: result.ExtraFields,
		Comparisons: make([]comparisonItem, 0, len(result.Comparisons)),
		Summary:     result.SummaryRows(),
		NetTotal:    result.NetTotal,
		HTML:        string(html),
		DownloadURL: fmt.Sprintf("%s/export/download/%s", prefix, token),
	}
	for _, ds := range datasets {
		resp.Files = append(resp.Files, fileInfo{
			FileName:    ds.FileName,
			SheetName:   ds.SheetName,
			Records:     len(ds.Records),
			SkippedRows: ds.SkippedRows,
		})
	}
	for _, rec := range result.Comparisons {
		resp.Comparisons = append(resp.Comparisons, comparisonItem{
			ComparisonRecord: rec,
			Label:            result.Label(rec),
		})
	}

	util.Log.WithFields(logrus.Fields{
		"run_id":    result.RunID,
		"prior":     datasets[0].FileName,
		"current":   datasets[1].FileName,
		"clients":   len(result.Comparisons),
		"net_total": result.NetTotal,
	}).Info("comparison completed")

	c.JSON(http.StatusOK, resp)
}
