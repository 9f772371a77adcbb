package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/decker502/gallery/pkg/embedded"
)

// DefaultGalleryConfigPath 内置画廊配置（嵌入资源）
const DefaultGalleryConfigPath = "assets/config/gallery.yaml"

// GalleryConfig 画廊完整配置（assets/config/gallery.yaml）
type GalleryConfig struct {
	Window   WindowConfig    `yaml:"window"`
	Grid     GridConfig      `yaml:"grid"`
	Panel    PanelConfig     `yaml:"panel"`
	Base     *EffectConfig   `yaml:"base"`     // 可选，缺省时使用 DefaultEffectConfig
	Sections []SectionConfig `yaml:"sections"` // 效果分组，按出现顺序纵向排列
	Items    []GalleryItem   `yaml:"items"`

	// BaseDir 外部配置文件所在目录，图片路径相对于它解析；内置配置为空
	BaseDir string `yaml:"-"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// GridConfig 网格布局配置
type GridConfig struct {
	Columns       int     `yaml:"columns"`
	CellWidth     float64 `yaml:"cell_width"`
	CellHeight    float64 `yaml:"cell_height"`
	CaptionHeight float64 `yaml:"caption_height"`
	Gap           float64 `yaml:"gap"`
	MarginX       float64 `yaml:"margin_x"`
	MarginTop     float64 `yaml:"margin_top"`
	HeadingHeight float64 `yaml:"heading_height"`
	ScrollSpeed   float64 `yaml:"scroll_speed"`
}

// PanelConfig 详情面板布局配置
// 面板占据视口的一半，图片在上、文字在下
type PanelConfig struct {
	Padding       float64 `yaml:"padding"`
	ImageRatio    float64 `yaml:"image_ratio"` // 图片高度占视口高度的比例
	ContentHeight float64 `yaml:"content_height"`
	CloseSize     float64 `yaml:"close_size"`
}

// SectionConfig 效果分组：标题、说明和作用于组内所有网格项的覆盖值
type SectionConfig struct {
	ID        string            `yaml:"id"`
	Title     string            `yaml:"title"`
	Meta      string            `yaml:"meta"`
	Overrides map[string]string `yaml:"overrides"`
}

// GalleryItem 网格项数据（只读引用数据）
type GalleryItem struct {
	ID          string            `yaml:"id"`
	Image       string            `yaml:"image"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Effect      string            `yaml:"effect"`
	Overrides   map[string]string `yaml:"overrides,omitempty"`
}

// LoadGalleryConfig 加载画廊配置
// path 为空时读取内置配置，否则从文件系统读取
func LoadGalleryConfig(path string) (*GalleryConfig, error) {
	if path == "" {
		data, err := embedded.ReadFile(DefaultGalleryConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded gallery config: %w", err)
		}
		return ParseGalleryConfig(data)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gallery config file %s: %w", path, err)
	}

	cfg, err := ParseGalleryConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.BaseDir = filepath.Dir(path)
	return cfg, nil
}

// ParseGalleryConfig 解析 YAML 并填充默认值
func ParseGalleryConfig(data []byte) (*GalleryConfig, error) {
	// 预置基础配置，YAML 中只需写出与默认值不同的字段
	base := DefaultEffectConfig()
	cfg := GalleryConfig{Base: &base}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析画廊配置失败: %w", err)
	}

	applyGalleryDefaults(&cfg)

	if err := cfg.Base.Validate(); err != nil {
		return nil, fmt.Errorf("基础效果配置无效: %w", err)
	}

	seen := make(map[string]bool, len(cfg.Items))
	for _, item := range cfg.Items {
		if item.ID == "" {
			return nil, fmt.Errorf("网格项缺少 id: %q", item.Title)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("网格项 id 重复: %s", item.ID)
		}
		seen[item.ID] = true
	}

	return &cfg, nil
}

func applyGalleryDefaults(cfg *GalleryConfig) {
	if cfg.Window.Width == 0 {
		cfg.Window.Width = 1280
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = 800
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = "Gallery"
	}
	if cfg.Grid.Columns == 0 {
		cfg.Grid.Columns = 4
	}
	if cfg.Grid.CellWidth == 0 {
		cfg.Grid.CellWidth = 220
	}
	if cfg.Grid.CellHeight == 0 {
		cfg.Grid.CellHeight = 280
	}
	if cfg.Grid.CaptionHeight == 0 {
		cfg.Grid.CaptionHeight = 44
	}
	if cfg.Grid.Gap == 0 {
		cfg.Grid.Gap = 24
	}
	if cfg.Grid.MarginX == 0 {
		cfg.Grid.MarginX = 60
	}
	if cfg.Grid.MarginTop == 0 {
		cfg.Grid.MarginTop = 40
	}
	if cfg.Grid.HeadingHeight == 0 {
		cfg.Grid.HeadingHeight = 70
	}
	if cfg.Grid.ScrollSpeed == 0 {
		cfg.Grid.ScrollSpeed = 40
	}
	if cfg.Panel.Padding == 0 {
		cfg.Panel.Padding = 40
	}
	if cfg.Panel.ImageRatio == 0 {
		cfg.Panel.ImageRatio = 0.65
	}
	if cfg.Panel.ContentHeight == 0 {
		cfg.Panel.ContentHeight = 140
	}
	if cfg.Panel.CloseSize == 0 {
		cfg.Panel.CloseSize = 32
	}
	if cfg.Base == nil {
		base := DefaultEffectConfig()
		cfg.Base = &base
	}
}

// Section 根据 id 查找分组，找不到时返回 nil
func (c *GalleryConfig) Section(id string) *SectionConfig {
	for i := range c.Sections {
		if c.Sections[i].ID == id {
			return &c.Sections[i]
		}
	}
	return nil
}

// ItemsInSection 返回属于指定分组的网格项（保持配置顺序）
func (c *GalleryConfig) ItemsInSection(id string) []GalleryItem {
	var items []GalleryItem
	for _, item := range c.Items {
		if item.Effect == id {
			items = append(items, item)
		}
	}
	return items
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
