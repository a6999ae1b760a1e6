package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MartinianoLopez/comparador-clientes/internal/service/excel"
	"github.com/MartinianoLopez/comparador-clientes/internal/service/reconciler"
	"github.com/MartinianoLopez/comparador-clientes/internal/util"
)

// MsgTwoFilesRequired 缺少文件时展示给用户的提示
const MsgTwoFilesRequired = "Por favor sube dos archivos."

// writeError 按错误类型映射 HTTP 状态码
func writeError(c *gin.Context, err error) {
	var inputErr *reconciler.InputError
	var decodeErr *excel.DecodeError

	switch {
	case errors.As(err, &inputErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgTwoFilesRequired})
	case errors.As(err, &decodeErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "No se pudo leer el archivo " + decodeErr.FileName + ": " + decodeErr.Err.Error(),
		})
	default:
		util.Log.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno: " + err.Error()})
	}
}
