package systems

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/gallery/pkg/components"
	"github.com/decker502/gallery/pkg/ecs"
	"github.com/decker502/gallery/pkg/types"
	"github.com/decker502/gallery/pkg/utils"
)

// 画廊配色
var (
	ColorBackground = color.RGBA{R: 14, G: 14, B: 14, A: 255}
	colorText       = color.RGBA{R: 232, G: 228, B: 222, A: 255}
	colorTextMuted  = color.RGBA{R: 150, G: 146, B: 140, A: 255}
)

// blendMultiply 正片叠底：dst * src + dst * (1 - srcAlpha)
var blendMultiply = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// Fonts 渲染使用的字体，任一字段为 nil 时跳过对应文字
type Fonts struct {
	Heading *text.GoTextFace // 分组标题
	Meta    *text.GoTextFace // 分组说明
	Caption *text.GoTextFace // 网格项标题
	Title   *text.GoTextFace // 面板标题
	Body    *text.GoTextFace // 面板描述
}

// RenderSystem 按层级绘制网格、分组标题、面板和 mover
//
// 图片先按 cover 方式缩放进一张临时画布并在画布上裁剪，
// 再整体缩放、旋转、设置透明度与混合模式后绘制到屏幕。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	fonts         Fonts
	panel         ecs.EntityID

	// scratch 单个精灵的离屏画布，每次绘制前清空
	scratch *ebiten.Image
}

// NewRenderSystem 创建渲染系统，离屏画布与视口同尺寸
func NewRenderSystem(em *ecs.EntityManager, fonts Fonts, panel ecs.EntityID, viewport types.Size) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		fonts:         fonts,
		panel:         panel,
		scratch:       ebiten.NewImage(int(viewport.Width), int(viewport.Height)),
	}
}

// Draw 绘制所有可见实体
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for _, id := range DrawOrder(s.entityManager) {
		s.drawEntity(screen, id)
	}
}

// DrawOrder 返回需要绘制的实体，按 ZIndex 升序，同层按 ID 升序
// 面板根实体只提供整体不透明度，本身不绘制
func DrawOrder(em *ecs.EntityManager) []ecs.EntityID {
	entities := ecs.GetEntitiesWith2[*components.BoundsComponent, *components.AppearanceComponent](em)
	list := make([]ecs.EntityID, 0, len(entities))
	for _, id := range entities {
		if ecs.HasComponent[*components.PanelComponent](em, id) {
			continue
		}
		list = append(list, id)
	}

	sort.SliceStable(list, func(i, j int) bool {
		a, _ := ecs.GetComponent[*components.AppearanceComponent](em, list[i])
		b, _ := ecs.GetComponent[*components.AppearanceComponent](em, list[j])
		if a.ZIndex != b.ZIndex {
			return a.ZIndex < b.ZIndex
		}
		return list[i] < list[j]
	})
	return list
}

// EffectiveOpacity 实体的最终不透明度；面板子实体需要乘上根实体的不透明度
func EffectiveOpacity(em *ecs.EntityManager, id ecs.EntityID) float64 {
	appearance, ok := ecs.GetComponent[*components.AppearanceComponent](em, id)
	if !ok {
		return 0
	}
	alpha := appearance.Opacity
	if part, ok := ecs.GetComponent[*components.PanelPartComponent](em, id); ok {
		if root, ok := ecs.GetComponent[*components.AppearanceComponent](em, part.Root); ok {
			alpha *= root.Opacity
		}
	}
	return alpha
}

func (s *RenderSystem) drawEntity(screen *ebiten.Image, id ecs.EntityID) {
	alpha := EffectiveOpacity(s.entityManager, id)
	if alpha <= 0 {
		return
	}
	appearance, _ := ecs.GetComponent[*components.AppearanceComponent](s.entityManager, id)
	bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id)

	if chrome, ok := ecs.GetComponent[*components.ChromeComponent](s.entityManager, id); ok {
		s.drawChrome(screen, chrome, bounds.Rect, alpha)
		return
	}

	if panel, ok := ecs.GetComponent[*components.PanelComponent](s.entityManager, s.panel); ok && id == panel.ContentEntity {
		s.drawPanelContent(screen, panel, bounds.Rect, appearance, alpha)
		return
	}

	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok {
		s.drawSprite(screen, bounds.Rect, appearance, sprite, alpha)
	}

	if item, ok := ecs.GetComponent[*components.GridItemComponent](s.entityManager, id); ok {
		drawText(screen, item.Title, s.fonts.Caption, bounds.Rect.Left, bounds.Rect.Bottom()+10, colorText, alpha)
	}
}

// drawSprite 绘制带裁剪、缩放、旋转的图片；图片缺失时绘制占位色块
func (s *RenderSystem) drawSprite(screen *ebiten.Image, rect types.Rect, appearance *components.AppearanceComponent, sprite *components.SpriteComponent, alpha float64) {
	scale := appearance.Scale
	w := math.Min(math.Ceil(rect.Width*scale), float64(s.scratch.Bounds().Dx()))
	h := math.Min(math.Ceil(rect.Height*scale), float64(s.scratch.Bounds().Dy()))
	if w < 1 || h < 1 {
		return
	}

	visible := appearance.Clip.Apply(types.Rect{Width: w, Height: h})
	if visible.Width < 1 || visible.Height < 1 {
		return
	}

	s.scratch.Clear()
	clipped := s.scratch.SubImage(image.Rect(
		int(visible.Left), int(visible.Top),
		int(math.Ceil(visible.Right())), int(math.Ceil(visible.Bottom())),
	)).(*ebiten.Image)

	if sprite.Image != nil {
		ib := sprite.Image.Bounds()
		iw, ih := float64(ib.Dx()), float64(ib.Dy())
		cover := math.Max(w/iw, h/ih)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(cover, cover)
		op.GeoM.Translate((w-iw*cover)/2, (h-ih*cover)/2)
		op.Filter = ebiten.FilterLinear
		clipped.DrawImage(sprite.Image, op)
	} else {
		vector.DrawFilledRect(clipped, 0, 0, float32(w), float32(h), sprite.Placeholder, false)
	}

	center := rect.Center()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(appearance.Rotation * math.Pi / 180)
	op.GeoM.Translate(center.X, center.Y+appearance.OffsetY)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Blend = BlendFor(appearance.BlendMode)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.scratch.SubImage(image.Rect(0, 0, int(w), int(h))).(*ebiten.Image), op)
}

func (s *RenderSystem) drawChrome(screen *ebiten.Image, chrome *components.ChromeComponent, rect types.Rect, alpha float64) {
	drawText(screen, chrome.Title, s.fonts.Heading, rect.Left, rect.Top, colorText, alpha)
	if s.fonts.Heading != nil {
		drawText(screen, chrome.Meta, s.fonts.Meta, rect.Left, rect.Top+s.fonts.Heading.Size*1.3, colorTextMuted, alpha)
	}
}

// drawPanelContent 面板文字区：标题、自动换行的描述、关闭按钮
func (s *RenderSystem) drawPanelContent(screen *ebiten.Image, panel *components.PanelComponent, rect types.Rect, appearance *components.AppearanceComponent, alpha float64) {
	y := rect.Top + appearance.OffsetY
	if s.fonts.Title != nil {
		drawText(screen, panel.Title, s.fonts.Title, rect.Left, y, colorText, alpha)
		y += s.fonts.Title.Size * 1.5
	}
	if s.fonts.Body != nil {
		for _, line := range utils.WrapText(panel.Description, s.fonts.Body, rect.Width) {
			drawText(screen, line, s.fonts.Body, rect.Left, y, colorTextMuted, alpha)
			y += s.fonts.Body.Size * 1.4
		}
	}

	// 关闭按钮：一个 ×
	c := panel.CloseRect.Translate(0, appearance.OffsetY)
	clr := scaleAlpha(colorText, alpha)
	inset := c.Width * 0.25
	vector.StrokeLine(screen, float32(c.Left+inset), float32(c.Top+inset), float32(c.Right()-inset), float32(c.Bottom()-inset), 2, clr, true)
	vector.StrokeLine(screen, float32(c.Right()-inset), float32(c.Top+inset), float32(c.Left+inset), float32(c.Bottom()-inset), 2, clr, true)
}

// BlendFor 把混合模式名称映射为 Ebitengine 的混合方式
// 屏幕类模式（lighter/screen/hard-light/lighten）统一使用加色混合
func BlendFor(mode string) ebiten.Blend {
	switch mode {
	case "lighter", "screen", "hard-light", "lighten":
		return ebiten.BlendLighter
	case "multiply":
		return blendMultiply
	default:
		return ebiten.BlendSourceOver
	}
}

func drawText(dst *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color, alpha float64) {
	if face == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(dst, str, face, op)
}

func scaleAlpha(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
