package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func testFace(t *testing.T) *text.GoTextFace {
	t.Helper()
	faceSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("无法创建字体源: %v", err)
	}
	return &text.GoTextFace{Source: faceSource, Size: 16}
}

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	font := testFace(t)

	tests := []struct {
		name      string
		input     string
		maxWidth  float64
		expectMin int // 期望最少的行数
	}{
		{"短文本不换行", "Still water", 1000, 1},
		{"长文本自动换行", "Grain and haze over an open horizon, layered paper lit from behind.", 150, 3},
		{"超长单词强制断行", strings.Repeat("w", 60), 100, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, font, tt.maxWidth)
			if len(lines) < tt.expectMin {
				t.Errorf("期望至少 %d 行，实际得到 %d 行: %q", tt.expectMin, len(lines), lines)
			}
			for i, line := range lines {
				if w := measureTextWidth(line, font); w > tt.maxWidth {
					t.Errorf("第 %d 行 %q 宽度 %.1f 超过 %.0f", i+1, line, w, tt.maxWidth)
				}
				if line != strings.TrimSpace(line) {
					t.Errorf("第 %d 行 %q 不应有首尾空白", i+1, line)
				}
			}
		})
	}
}

// TestWrapTextKeepsWords 断行只发生在空白处，拼回后与原文一致
func TestWrapTextKeepsWords(t *testing.T) {
	font := testFace(t)
	input := "A study   in soft contrast\nand slow light."

	lines := WrapText(input, font, 90)
	if got, want := strings.Join(lines, " "), strings.Join(strings.Fields(input), " "); got != want {
		t.Errorf("rejoined = %q, want %q", got, want)
	}
}

// TestWrapTextEdgeCases 测试边界情况
func TestWrapTextEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		font     *text.GoTextFace
		maxWidth float64
		wantLen  int
	}{
		{"empty text", "", &text.GoTextFace{Size: 16}, 100, 1},
		{"nil font", "caption", nil, 100, 1},
		{"zero maxWidth", "caption", &text.GoTextFace{Size: 16}, 0, 1},
		{"negative maxWidth", "caption", &text.GoTextFace{Size: 16}, -100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, tt.font, tt.maxWidth)
			if len(lines) != tt.wantLen {
				t.Errorf("期望 %d 行，实际得到 %d 行", tt.wantLen, len(lines))
			}
		})
	}
}
