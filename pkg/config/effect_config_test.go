package config

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/decker502/gallery/pkg/types"
)

// TestDefaultEffectConfig 默认配置必须通过校验
func TestDefaultEffectConfig(t *testing.T) {
	cfg := DefaultEffectConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Steps != 6 || cfg.StepDuration != 0.35 || cfg.StepInterval != 0.05 {
		t.Errorf("unexpected timing defaults: %+v", cfg)
	}
	if cfg.SineFrequency != math.Pi {
		t.Errorf("SineFrequency = %v, want π", cfg.SineFrequency)
	}
}

// TestEffectConfig_Timing 级联时长与 mover 生命周期
func TestEffectConfig_Timing(t *testing.T) {
	cfg := DefaultEffectConfig()
	if got := cfg.CascadeDuration(); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("CascadeDuration = %v, want 0.3", got)
	}
	// 6*0.05 + 2*0.35 + 0.14
	if got := cfg.MoverLifetime(); math.Abs(got-1.14) > 1e-9 {
		t.Errorf("MoverLifetime = %v, want 1.14", got)
	}
}

// TestWithOverrides 覆盖值逐字段解析
func TestWithOverrides(t *testing.T) {
	base := DefaultEffectConfig()

	merged, ignored := base.WithOverrides(map[string]string{
		"steps":                   "10",
		"step-duration":           "0.3",
		"data-clip-path-direction": "left-right",
		"pathMotion":              "sine",
		"sineAmplitude":           "300",
		"moverExitEase":           "power4",
		"moverBlendMode":          "hard-light",
		"autoAdjustHorizontalClipPath": "false",
	})

	if len(ignored) != 0 {
		t.Errorf("no keys should be ignored, got %v", ignored)
	}
	if merged.Steps != 10 || merged.StepDuration != 0.3 {
		t.Errorf("numeric overrides not applied: %+v", merged)
	}
	if merged.ClipPathDirection != types.ClipLeftRight {
		t.Errorf("ClipPathDirection = %s, want left-right", merged.ClipPathDirection)
	}
	if merged.PathMotion != types.MotionSine || merged.SineAmplitude != 300 {
		t.Errorf("path overrides not applied: %+v", merged)
	}
	if merged.MoverExitEase != "power4" || merged.MoverBlendMode != "hard-light" {
		t.Errorf("string overrides not applied: %+v", merged)
	}
	if merged.AutoAdjustHorizontalClipPath {
		t.Error("bool override not applied")
	}

	// 基础配置不受影响
	if !reflect.DeepEqual(base, DefaultEffectConfig()) {
		t.Error("WithOverrides must not mutate the receiver")
	}
}

// TestWithOverrides_MalformedIgnored 无法解析的字段被忽略，其余字段照常合并
func TestWithOverrides_MalformedIgnored(t *testing.T) {
	base := DefaultEffectConfig()

	merged, ignored := base.WithOverrides(map[string]string{
		"steps":             "many",
		"stepDuration":      "-0.5",
		"stepInterval":      "0.07",
		"clipPathDirection": "clipPathDirection",
		"pathMotion":        "physics",
		"moverEnterEase":    "custom",
		"panelRevealEase":   "steps(3)",
		"bounceCenter":      "2",
		"perspective":       "1200",
	})

	if merged.StepInterval != 0.07 {
		t.Errorf("valid field should still merge, StepInterval = %v", merged.StepInterval)
	}

	want := base
	want.StepInterval = 0.07
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("malformed overrides leaked into config:\n got %+v\nwant %+v", merged, want)
	}
	if len(ignored) != 8 {
		t.Errorf("expected 8 ignored keys, got %v", ignored)
	}
	if err := merged.Validate(); err != nil {
		t.Errorf("merged config should stay valid: %v", err)
	}
}

func TestNormalizeOverrideKey(t *testing.T) {
	tests := map[string]string{
		"stepDuration":                          "stepDuration",
		"step-duration":                         "stepDuration",
		"data-step-duration":                    "stepDuration",
		"data-auto-adjust-horizontal-clip-path": "autoAdjustHorizontalClipPath",
		" steps ":                               "steps",
	}
	for in, want := range tests {
		if got := NormalizeOverrideKey(in); got != want {
			t.Errorf("NormalizeOverrideKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EffectConfig)
	}{
		{"负 steps", func(c *EffectConfig) { c.Steps = -1 }},
		{"steps 超过上限", func(c *EffectConfig) { c.Steps = MaxSteps + 1 }},
		{"负时长", func(c *EffectConfig) { c.StepDuration = -0.1 }},
		{"负间隔", func(c *EffectConfig) { c.StepInterval = -0.1 }},
		{"未知方向", func(c *EffectConfig) { c.ClipPathDirection = "morph" }},
		{"未知路径", func(c *EffectConfig) { c.PathMotion = "physics" }},
		{"未知缓动", func(c *EffectConfig) { c.MoverEnterEase = "custom" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEffectConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidEffectConfig) {
				t.Errorf("error should wrap ErrInvalidEffectConfig: %v", err)
			}
		})
	}

	for _, steps := range []int{0, MaxSteps} {
		cfg := DefaultEffectConfig()
		cfg.Steps = steps
		if err := cfg.Validate(); err != nil {
			t.Errorf("steps = %d should be valid: %v", steps, err)
		}
	}
}

// TestWithOverrides_StepsCap 超过上限的 steps 覆盖值被忽略，不会生成海量 mover
func TestWithOverrides_StepsCap(t *testing.T) {
	tests := []struct {
		value       string
		wantSteps   int
		wantIgnored bool
	}{
		{"100", MaxSteps, false},
		{"101", 6, true},
		{"1000000000", 6, true},
		{"0", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			merged, ignored := DefaultEffectConfig().WithOverrides(map[string]string{"steps": tt.value})
			if merged.Steps != tt.wantSteps {
				t.Errorf("Steps = %d, want %d", merged.Steps, tt.wantSteps)
			}
			if (len(ignored) == 1) != tt.wantIgnored {
				t.Errorf("ignored = %v, wantIgnored %v", ignored, tt.wantIgnored)
			}
			if err := merged.Validate(); err != nil {
				t.Errorf("merged config should stay valid: %v", err)
			}
		})
	}
}

func TestParseBlendMode(t *testing.T) {
	for _, v := range []string{"", "false", "normal", "NONE"} {
		if mode, ok := ParseBlendMode(v); !ok || mode != "" {
			t.Errorf("ParseBlendMode(%q) = (%q, %v), want normal", v, mode, ok)
		}
	}
	if mode, ok := ParseBlendMode("hard-light"); !ok || mode != "hard-light" {
		t.Errorf("hard-light should be accepted, got (%q, %v)", mode, ok)
	}
	if _, ok := ParseBlendMode("difference"); ok {
		t.Error("unsupported blend mode should be rejected")
	}
}
