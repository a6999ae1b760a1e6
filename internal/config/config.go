package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/MartinianoLopez/comparador-clientes/internal/model"
	"github.com/MartinianoLopez/comparador-clientes/internal/service/excel"
)

// AppConfig 应用配置
type AppConfig struct {
	Server     ServerConfig     `toml:"server"`
	Comparison ComparisonConfig `toml:"comparison"`
	Export     ExportConfig     `toml:"export"`
	Log        LogConfig        `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// ComparisonConfig 对比配置：列名与附加字段
type ComparisonConfig struct {
	ExtraFields     []string `toml:"extra_fields"`
	Labels          string   `toml:"labels"` // igual | sin_cambios
	IDColumn        string   `toml:"id_column"`
	NameColumn      string   `toml:"name_column"`
	SegmentColumn   string   `toml:"segment_column"`
	IndicatorColumn string   `toml:"indicator_column"`
}

// ExportConfig 导出配置
type ExportConfig struct {
	SheetName string `toml:"sheet_name"`
	FileName  string `toml:"file_name"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	Found         bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	cols := excel.DefaultColumns()
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Comparison: ComparisonConfig{
			ExtraFields:     cols.Extras,
			Labels:          model.LabelSetIgual,
			IDColumn:        cols.ID,
			NameColumn:      cols.Name,
			SegmentColumn:   cols.Segment,
			IndicatorColumn: cols.Indicator,
		},
		Export: ExportConfig{
			SheetName: excel.ExportSheetName,
			FileName:  excel.ExportFileName,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Columns 转换为解码器列配置
func (c *AppConfig) Columns() excel.Columns {
	extras := make([]string, len(c.Comparison.ExtraFields))
	copy(extras, c.Comparison.ExtraFields)
	return excel.Columns{
		ID:        c.Comparison.IDColumn,
		Name:      c.Comparison.NameColumn,
		Segment:   c.Comparison.SegmentColumn,
		Indicator: c.Comparison.IndicatorColumn,
		Extras:    extras,
	}
}

// LabelSet 当前配置选择的分类文案
func (c *AppConfig) LabelSet() (model.LabelSet, error) {
	return model.LabelSetByKey(c.Comparison.Labels)
}

// Validate 校验配置
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Comparison.IDColumn) == "" {
		return errors.New("comparison.id_column must not be empty")
	}
	seen := make(map[string]struct{}, len(c.Comparison.ExtraFields))
	for _, f := range c.Comparison.ExtraFields {
		key := strings.ToLower(excel.NormalizeHeader(f))
		if key == "" {
			return errors.New("comparison.extra_fields contains an empty label")
		}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("comparison.extra_fields contains duplicate label %q", f)
		}
		seen[key] = struct{}{}
	}
	if _, err := c.LabelSet(); err != nil {
		return err
	}
	return nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath 可执行文件同目录下的 config.toml
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo 加载配置并返回元信息；path 为空时读取默认位置
// 文件不存在时返回默认配置
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.Found = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, err
	}

	// 环境变量覆盖
	if v := os.Getenv("COMPARADOR_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, info, fmt.Errorf("invalid COMPARADOR_PORT %q: %w", v, err)
		}
		config.Server.Port = port
		info.PortSpecified = true
	}
	if v := os.Getenv("COMPARADOR_LABELS"); v != "" {
		config.Comparison.Labels = v
	}

	if err := config.Validate(); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

// LoadConfig 从默认位置加载配置
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo("")
	return config, err
}

// SaveConfig 保存配置到指定路径
func SaveConfig(config *AppConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
