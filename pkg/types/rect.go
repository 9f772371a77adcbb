// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "math"

// Rect 屏幕矩形（视口坐标，像素）
type Rect struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Point 二维点
type Point struct {
	X, Y float64
}

// Center 返回矩形中心点
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Right 返回矩形右边界
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom 返回矩形下边界
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Contains 判断点是否落在矩形内（含边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right() && y >= r.Top && y <= r.Bottom()
}

// Translate 返回平移后的矩形
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Width: r.Width, Height: r.Height}
}

// RectFromCenter 由中心点和尺寸构造矩形
func RectFromCenter(c Point, width, height float64) Rect {
	return Rect{Left: c.X - width/2, Top: c.Y - height/2, Width: width, Height: height}
}

// Distance 返回两点间的欧氏距离
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Size 视口尺寸
type Size struct {
	Width  float64
	Height float64
}
