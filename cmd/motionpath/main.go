// motionpath 打印两个矩形之间的 mover 路径（YAML）
//
// 用法：
//
//	go run ./cmd/motionpath --from 40,40,200,240 --to 540,40,420,350
//	go run ./cmd/motionpath --from 40,40,200,240 --to 540,40,420,350 --steps 10 --motion sine
//	go run ./cmd/motionpath --from 40,40,200,240 --to 540,40,420,350 \
//	    --set sineAmplitude=120 --set wobble-strength=20 --seed 7
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/decker502/gallery/pkg/config"
	"github.com/decker502/gallery/pkg/types"
	"github.com/decker502/gallery/pkg/utils"
)

// pathOutput 输出格式
type pathOutput struct {
	From     types.Rect       `yaml:"from"`
	To       types.Rect       `yaml:"to"`
	Steps    int              `yaml:"steps"`
	Motion   types.PathMotion `yaml:"motion"`
	Clip     string           `yaml:"clipPathDirection"`
	Cascade  float64          `yaml:"cascadeSeconds"`
	Lifetime float64          `yaml:"moverLifetimeSeconds"`
	Path     []types.Rect     `yaml:"path"`
	Ignored  []string         `yaml:"ignoredOverrides,omitempty"`
}

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		from, to  string
		overrides map[string]string
		steps     int
		motion    string
		seed      int64
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "motionpath",
		Short: "Print the mover path between two rectangles as YAML",
		Long: `motionpath runs the gallery path generator headlessly.

Rectangles are given as left,top,width,height in viewport pixels.
Effect parameters start from the built-in defaults and accept the same
override keys as gallery sections (camelCase, kebab-case or data- prefixed).`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			start, err := parseRect(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			end, err := parseRect(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			// --steps / --motion 是 --set 的简写，优先于同名 --set
			merged := make(map[string]string, len(overrides)+2)
			for k, v := range overrides {
				merged[k] = v
			}
			if cmd.Flags().Changed("steps") {
				merged["steps"] = strconv.Itoa(steps)
			}
			if cmd.Flags().Changed("motion") {
				merged["pathMotion"] = motion
			}
			return writePath(cmd.OutOrStdout(), start, end, merged, seed)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start rectangle: left,top,width,height")
	cmd.Flags().StringVar(&to, "to", "", "end rectangle: left,top,width,height")
	cmd.Flags().IntVar(&steps, "steps", 6, "number of movers (shorthand for --set steps=N)")
	cmd.Flags().StringVar(&motion, "motion", "linear", "path motion: linear, sine, diagonal, bounce")
	cmd.Flags().StringToStringVar(&overrides, "set", nil, "effect override key=value (repeatable)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for wobble (0 = time based)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// writePath 生成路径并以 YAML 写出
func writePath(w io.Writer, start, end types.Rect, overrides map[string]string, seed int64) error {
	cfg, ignored := config.DefaultEffectConfig().WithOverrides(overrides)
	if len(ignored) > 0 {
		log.Warn("[motionpath] Ignored overrides", "keys", ignored)
	}

	path := utils.GenerateMotionPath(start, end, cfg.Steps, cfg.PathParams(), utils.NewRandomSource(seed))
	log.Debug("[motionpath] Generated path", "steps", cfg.Steps, "motion", cfg.PathMotion)

	out := pathOutput{
		From:     start,
		To:       end,
		Steps:    cfg.Steps,
		Motion:   cfg.PathMotion,
		Clip:     string(cfg.ClipPathDirection),
		Cascade:  cfg.CascadeDuration(),
		Lifetime: cfg.MoverLifetime(),
		Path:     path,
		Ignored:  ignored,
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode path: %w", err)
	}
	return enc.Close()
}

// parseRect 解析 "left,top,width,height"
func parseRect(s string) (types.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return types.Rect{}, fmt.Errorf("expected left,top,width,height, got %q", s)
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return types.Rect{}, fmt.Errorf("invalid number %q: %w", p, err)
		}
		v[i] = f
	}
	if v[2] < 0 || v[3] < 0 {
		return types.Rect{}, fmt.Errorf("negative size in %q", s)
	}
	return types.Rect{Left: v[0], Top: v[1], Width: v[2], Height: v[3]}, nil
}
