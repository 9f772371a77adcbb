package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/decker502/gallery/pkg/types"
	"github.com/decker502/gallery/pkg/utils"
)

// MaxSteps 单次过渡允许的 mover 数量上限
const MaxSteps = 100

// ErrInvalidEffectConfig 效果配置不满足约束
var ErrInvalidEffectConfig = errors.New("invalid effect config")

// EffectConfig 一次画廊过渡的参数集
//
// 基础配置在启动时构造一次；每次点击时与分组（section）和网格项的覆盖值合并，
// 得到的新值只在这一次打开/关闭周期内有效，基础配置本身从不被修改。
type EffectConfig struct {
	ClipPathDirection            types.ClipDirection `yaml:"clipPathDirection"`
	AutoAdjustHorizontalClipPath bool                `yaml:"autoAdjustHorizontalClipPath"`

	Steps                int     `yaml:"steps"`                // mover 数量
	StepDuration         float64 `yaml:"stepDuration"`         // 单个 mover 进入/退出时长（秒）
	StepInterval         float64 `yaml:"stepInterval"`         // 相邻 mover 的启动间隔（秒）
	MoverPauseBeforeExit float64 `yaml:"moverPauseBeforeExit"` // 进入与退出之间的停顿（秒）
	RotationRange        float64 `yaml:"rotationRange"`        // mover 随机旋转范围（度）
	WobbleStrength       float64 `yaml:"wobbleStrength"`       // 路径抖动强度（像素）

	PanelRevealEase string `yaml:"panelRevealEase"`
	GridItemEase    string `yaml:"gridItemEase"`
	MoverEnterEase  string `yaml:"moverEnterEase"`
	MoverExitEase   string `yaml:"moverExitEase"`

	PanelRevealDurationFactor float64 `yaml:"panelRevealDurationFactor"`
	ClickedItemDurationFactor float64 `yaml:"clickedItemDurationFactor"`
	GridItemStaggerFactor     float64 `yaml:"gridItemStaggerFactor"`

	// MoverBlendMode 空字符串表示普通混合
	MoverBlendMode string `yaml:"moverBlendMode"`

	PathMotion      types.PathMotion `yaml:"pathMotion"`
	SineAmplitude   float64          `yaml:"sineAmplitude"`
	SineFrequency   float64          `yaml:"sineFrequency"`
	BounceIntensity float64          `yaml:"bounceIntensity"`
	BounceCenter    float64          `yaml:"bounceCenter"`
}

// DefaultEffectConfig 返回基础效果配置（effect01：直线路径、平滑缓动）
func DefaultEffectConfig() EffectConfig {
	return EffectConfig{
		ClipPathDirection:            types.ClipTopBottom,
		AutoAdjustHorizontalClipPath: true,
		Steps:                        6,
		StepDuration:                 0.35,
		StepInterval:                 0.05,
		MoverPauseBeforeExit:         0.14,
		RotationRange:                0,
		WobbleStrength:               0,
		PanelRevealEase:              "sine.inOut",
		GridItemEase:                 "sine",
		MoverEnterEase:               "sine.in",
		MoverExitEase:                "sine",
		PanelRevealDurationFactor:    2,
		ClickedItemDurationFactor:    2,
		GridItemStaggerFactor:        0.3,
		MoverBlendMode:               "",
		PathMotion:                   types.MotionLinear,
		SineAmplitude:                50,
		SineFrequency:                math.Pi,
		BounceIntensity:              1,
		BounceCenter:                 0.5,
	}
}

// Validate 检查配置是否满足约束：时长/间隔非负，0 <= steps <= MaxSteps，缓动名称可识别
// 返回的错误都包装了 ErrInvalidEffectConfig
func (c EffectConfig) Validate() error {
	if c.Steps < 0 || c.Steps > MaxSteps {
		return fmt.Errorf("%w: steps must be in [0, %d], got %d", ErrInvalidEffectConfig, MaxSteps, c.Steps)
	}
	nonNegative := map[string]float64{
		"stepDuration":              c.StepDuration,
		"stepInterval":              c.StepInterval,
		"moverPauseBeforeExit":      c.MoverPauseBeforeExit,
		"panelRevealDurationFactor": c.PanelRevealDurationFactor,
		"clickedItemDurationFactor": c.ClickedItemDurationFactor,
		"gridItemStaggerFactor":     c.GridItemStaggerFactor,
		"rotationRange":             c.RotationRange,
		"wobbleStrength":            c.WobbleStrength,
	}
	for name, v := range nonNegative {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidEffectConfig, name, v)
		}
	}
	if _, ok := types.ParseClipDirection(string(c.ClipPathDirection)); !ok {
		return fmt.Errorf("%w: unknown clipPathDirection %q", ErrInvalidEffectConfig, c.ClipPathDirection)
	}
	if _, ok := types.ParsePathMotion(string(c.PathMotion)); !ok {
		return fmt.Errorf("%w: unknown pathMotion %q", ErrInvalidEffectConfig, c.PathMotion)
	}
	for _, ease := range []string{c.PanelRevealEase, c.GridItemEase, c.MoverEnterEase, c.MoverExitEase} {
		if _, ok := utils.EasingByName(ease); !ok {
			return fmt.Errorf("%w: unknown ease %q", ErrInvalidEffectConfig, ease)
		}
	}
	return nil
}

// CascadeDuration mover 级联的总启动时长：steps * stepInterval
func (c EffectConfig) CascadeDuration() float64 {
	return float64(c.Steps) * c.StepInterval
}

// MoverLifetime 最晚启动的 mover 完成全部动画所需的时长上界
//
//	steps*stepInterval + 2*stepDuration + moverPauseBeforeExit
func (c EffectConfig) MoverLifetime() float64 {
	return c.CascadeDuration() + 2*c.StepDuration + c.MoverPauseBeforeExit
}

// PathParams 转换为路径生成参数
func (c EffectConfig) PathParams() utils.PathParams {
	return utils.PathParams{
		Motion:          c.PathMotion,
		SineAmplitude:   c.SineAmplitude,
		SineFrequency:   c.SineFrequency,
		WobbleStrength:  c.WobbleStrength,
		BounceIntensity: c.BounceIntensity,
		BounceCenter:    c.BounceCenter,
	}
}

// overrideSetter 把一个字符串覆盖值写入配置，返回值是否被接受
type overrideSetter func(c *EffectConfig, value string) bool

var overrideSetters = map[string]overrideSetter{
	"clipPathDirection": func(c *EffectConfig, v string) bool {
		d, ok := types.ParseClipDirection(v)
		if ok {
			c.ClipPathDirection = d
		}
		return ok
	},
	"autoAdjustHorizontalClipPath": boolSetter(func(c *EffectConfig) *bool { return &c.AutoAdjustHorizontalClipPath }),
	"steps": func(c *EffectConfig, v string) bool {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > MaxSteps {
			return false
		}
		c.Steps = n
		return true
	},
	"stepDuration":              durationSetter(func(c *EffectConfig) *float64 { return &c.StepDuration }),
	"stepInterval":              durationSetter(func(c *EffectConfig) *float64 { return &c.StepInterval }),
	"moverPauseBeforeExit":      durationSetter(func(c *EffectConfig) *float64 { return &c.MoverPauseBeforeExit }),
	"rotationRange":             durationSetter(func(c *EffectConfig) *float64 { return &c.RotationRange }),
	"wobbleStrength":            durationSetter(func(c *EffectConfig) *float64 { return &c.WobbleStrength }),
	"panelRevealDurationFactor": durationSetter(func(c *EffectConfig) *float64 { return &c.PanelRevealDurationFactor }),
	"clickedItemDurationFactor": durationSetter(func(c *EffectConfig) *float64 { return &c.ClickedItemDurationFactor }),
	"gridItemStaggerFactor":     durationSetter(func(c *EffectConfig) *float64 { return &c.GridItemStaggerFactor }),
	"panelRevealEase":           easeSetter(func(c *EffectConfig) *string { return &c.PanelRevealEase }),
	"gridItemEase":              easeSetter(func(c *EffectConfig) *string { return &c.GridItemEase }),
	"moverEnterEase":            easeSetter(func(c *EffectConfig) *string { return &c.MoverEnterEase }),
	"moverExitEase":             easeSetter(func(c *EffectConfig) *string { return &c.MoverExitEase }),
	"moverBlendMode": func(c *EffectConfig, v string) bool {
		mode, ok := ParseBlendMode(v)
		if ok {
			c.MoverBlendMode = mode
		}
		return ok
	},
	"pathMotion": func(c *EffectConfig, v string) bool {
		m, ok := types.ParsePathMotion(v)
		if ok {
			c.PathMotion = m
		}
		return ok
	},
	"sineAmplitude":   floatSetter(func(c *EffectConfig) *float64 { return &c.SineAmplitude }),
	"sineFrequency":   floatSetter(func(c *EffectConfig) *float64 { return &c.SineFrequency }),
	"bounceIntensity": floatSetter(func(c *EffectConfig) *float64 { return &c.BounceIntensity }),
	"bounceCenter": func(c *EffectConfig, v string) bool {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f >= 1 {
			return false
		}
		c.BounceCenter = f
		return true
	},
}

func floatSetter(field func(*EffectConfig) *float64) overrideSetter {
	return func(c *EffectConfig, v string) bool {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
		*field(c) = f
		return true
	}
}

func durationSetter(field func(*EffectConfig) *float64) overrideSetter {
	parse := floatSetter(field)
	return func(c *EffectConfig, v string) bool {
		if strings.HasPrefix(strings.TrimSpace(v), "-") {
			return false
		}
		return parse(c, v)
	}
}

func boolSetter(field func(*EffectConfig) *bool) overrideSetter {
	return func(c *EffectConfig, v string) bool {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false
		}
		*field(c) = b
		return true
	}
}

func easeSetter(field func(*EffectConfig) *string) overrideSetter {
	return func(c *EffectConfig, v string) bool {
		if _, ok := utils.EasingByName(v); !ok {
			return false
		}
		*field(c) = v
		return true
	}
}

// ParseBlendMode 解析 mover 混合模式
// "false"、"none"、"normal" 和空字符串都表示普通混合
func ParseBlendMode(v string) (string, bool) {
	switch mode := strings.ToLower(strings.TrimSpace(v)); mode {
	case "", "false", "none", "normal":
		return "", true
	case "lighter", "screen", "hard-light", "lighten", "multiply":
		return mode, true
	default:
		return "", false
	}
}

// NormalizeOverrideKey 把覆盖键统一为 camelCase
// 支持 "stepDuration"、"step-duration"、"data-step-duration" 三种写法
func NormalizeOverrideKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimPrefix(key, "data-")
	if !strings.Contains(key, "-") {
		return key
	}

	var b strings.Builder
	upper := false
	for _, r := range key {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// WithOverrides 返回合并了字符串覆盖值的新配置（接收者不变）
//
// 每个字段独立解析：无法解析的值、未知的键都会被忽略，不会影响其余字段。
//
// 返回：
//   - EffectConfig: 合并后的配置
//   - []string: 被忽略的键（按原始写法），用于日志
func (c EffectConfig) WithOverrides(overrides map[string]string) (EffectConfig, []string) {
	merged := c
	var ignored []string
	for _, key := range sortedKeys(overrides) {
		setter, ok := overrideSetters[NormalizeOverrideKey(key)]
		if !ok || !setter(&merged, strings.TrimSpace(overrides[key])) {
			ignored = append(ignored, key)
		}
	}
	return merged, ignored
}
