package main

import (
	"bytes"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/decker502/gallery/pkg/types"
)

func TestParseRect(t *testing.T) {
	tests := []struct {
		input   string
		want    types.Rect
		wantErr bool
	}{
		{"10,20,30,40", types.Rect{Left: 10, Top: 20, Width: 30, Height: 40}, false},
		{" 1.5, 2 ,3,4 ", types.Rect{Left: 1.5, Top: 2, Width: 3, Height: 4}, false},
		{"-5,-5,10,10", types.Rect{Left: -5, Top: -5, Width: 10, Height: 10}, false},
		{"1,2,3", types.Rect{}, true},
		{"a,2,3,4", types.Rect{}, true},
		{"1,2,-3,4", types.Rect{}, true},
		{"", types.Rect{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseRect(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRect(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseRect(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

// TestCommandOutput 命令输出可被解析回路径，覆盖值生效
func TestCommandOutput(t *testing.T) {
	var out bytes.Buffer
	cmd := newCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--from", "0,0,100,100",
		"--to", "500,0,100,100",
		"--set", "steps=4",
		"--set", "data-path-motion=sine",
		"--set", "bogus=1",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	var got pathOutput
	if err := yaml.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, out.String())
	}
	if got.Steps != 4 || len(got.Path) != 4 {
		t.Errorf("steps = %d, path length = %d, want 4", got.Steps, len(got.Path))
	}
	if got.Motion != types.MotionSine {
		t.Errorf("motion = %q, want sine", got.Motion)
	}
	if len(got.Ignored) != 1 || got.Ignored[0] != "bogus" {
		t.Errorf("ignored = %v, want [bogus]", got.Ignored)
	}
	// 中间矩形沿 x 方向单调前进
	for i := 1; i < len(got.Path); i++ {
		if got.Path[i].Left <= got.Path[i-1].Left {
			t.Errorf("path not advancing at %d: %+v", i, got.Path)
		}
	}
}

func TestCommandRequiresRects(t *testing.T) {
	cmd := newCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--from", "0,0,10,10"})

	if err := cmd.Execute(); err == nil {
		t.Error("missing --to should fail")
	}
}

// TestCommandShorthandFlags --steps / --motion 覆盖同名的 --set
func TestCommandShorthandFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantSteps   int
		wantMotion  types.PathMotion
		wantIgnored int
	}{
		{"defaults", nil, 6, types.MotionLinear, 0},
		{"steps and motion", []string{"--steps", "3", "--motion", "bounce"}, 3, types.MotionBounce, 0},
		{"shorthand wins", []string{"--set", "steps=9", "--set", "data-path-motion=sine", "--steps", "2", "--motion", "diagonal"}, 2, types.MotionDiagonal, 0},
		{"unknown motion ignored", []string{"--motion", "spiral"}, 6, types.MotionLinear, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newCommand()
			cmd.SetOut(&out)
			cmd.SetArgs(append([]string{"--from", "0,0,100,100", "--to", "400,200,200,200"}, tt.args...))
			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}

			var got pathOutput
			if err := yaml.Unmarshal(out.Bytes(), &got); err != nil {
				t.Fatalf("output is not valid YAML: %v", err)
			}
			if got.Steps != tt.wantSteps || len(got.Path) != tt.wantSteps {
				t.Errorf("steps = %d, path length = %d, want %d", got.Steps, len(got.Path), tt.wantSteps)
			}
			if got.Motion != tt.wantMotion {
				t.Errorf("motion = %q, want %q", got.Motion, tt.wantMotion)
			}
			if len(got.Ignored) != tt.wantIgnored {
				t.Errorf("ignored = %v, want %d keys", got.Ignored, tt.wantIgnored)
			}
		})
	}
}
