package utils

import (
	"math"
	"strconv"
	"strings"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值（通常 ∈ [0, 1]，back 类会略微越界）。
//
// 效果配置里的缓动以名称引用（如 "sine.in"、"power4.inOut"、"back.out(1.7)"），
// 由 EasingByName 解析为具体函数。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInCubic 三次方缓入
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuad 二次方缓出（未指定缓动时的默认值）
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseInSine 正弦缓入
func EaseInSine(t float64) float64 {
	return 1 - math.Cos(t*math.Pi/2)
}

// EaseOutSine 正弦缓出
func EaseOutSine(t float64) float64 {
	return math.Sin(t * math.Pi / 2)
}

// EaseInOutSine 正弦缓入缓出
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// EaseOutExpo 指数缓出
// 特点：开始非常快，结束非常慢
// 公式：f(t) = 1 - 2^(-10t)
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// EaseInExpo 指数缓入
func EaseInExpo(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Pow(2, 10*t-10)
}

// EaseInOutExpo 指数缓入缓出
func EaseInOutExpo(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return math.Pow(2, 20*t-10) / 2
	default:
		return (2 - math.Pow(2, -20*t+10)) / 2
	}
}

// EaseOutBounce 弹跳缓出
func EaseOutBounce(t float64) float64 {
	const n1, d1 = 7.5625, 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// EaseInBounce 弹跳缓入
func EaseInBounce(t float64) float64 {
	return 1 - EaseOutBounce(1-t)
}

// EaseInOutBounce 弹跳缓入缓出
func EaseInOutBounce(t float64) float64 {
	if t < 0.5 {
		return (1 - EaseOutBounce(1-2*t)) / 2
	}
	return (1 + EaseOutBounce(2*t-1)) / 2
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// powerEase 构造幂次缓动（power1 = quad, power2 = cubic, ...）
func powerEase(exp float64, variant string) EasingFunc {
	switch variant {
	case "in":
		return func(t float64) float64 { return math.Pow(t, exp) }
	case "inout":
		return func(t float64) float64 {
			if t < 0.5 {
				return math.Pow(2, exp-1) * math.Pow(t, exp)
			}
			return 1 - math.Pow(-2*t+2, exp)/2
		}
	default:
		return func(t float64) float64 { return 1 - math.Pow(1-t, exp) }
	}
}

// backEase 构造回弹缓动，overshoot 默认 1.70158
func backEase(overshoot float64, variant string) EasingFunc {
	c1 := overshoot
	c3 := c1 + 1
	switch variant {
	case "in":
		return func(t float64) float64 { return c3*t*t*t - c1*t*t }
	case "inout":
		c2 := c1 * 1.525
		return func(t float64) float64 {
			if t < 0.5 {
				return (math.Pow(2*t, 2) * ((c2+1)*2*t - c2)) / 2
			}
			return (math.Pow(2*t-2, 2)*((c2+1)*(t*2-2)+c2) + 2) / 2
		}
	default:
		return func(t float64) float64 {
			return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
		}
	}
}

// EasingByName 根据名称解析缓动函数
//
// 名称格式：family[.variant][(param)]
//   - family: none/linear, sine, quad, cubic, quart, quint, strong, power0..power4, expo, circ, back, bounce
//   - variant: in, out, inOut（省略时为 out）
//   - param: 仅 back 使用，表示回弹幅度
//
// 返回：
//   - EasingFunc: 解析出的缓动函数
//   - bool: 名称是否可识别
func EasingByName(name string) (EasingFunc, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}

	param := ""
	if open := strings.IndexByte(name, '('); open >= 0 {
		if !strings.HasSuffix(name, ")") {
			return nil, false
		}
		param = name[open+1 : len(name)-1]
		name = name[:open]
	}

	family, variant, _ := strings.Cut(strings.ToLower(name), ".")
	if variant == "" {
		variant = "out"
	}
	if variant != "in" && variant != "out" && variant != "inout" {
		return nil, false
	}

	switch family {
	case "none", "linear", "power0":
		return EaseLinear, true
	case "sine":
		switch variant {
		case "in":
			return EaseInSine, true
		case "inout":
			return EaseInOutSine, true
		default:
			return EaseOutSine, true
		}
	case "power1", "quad":
		return powerEase(2, variant), true
	case "power2", "cubic":
		return powerEase(3, variant), true
	case "power3", "quart":
		return powerEase(4, variant), true
	case "power4", "quint", "strong":
		return powerEase(5, variant), true
	case "expo":
		switch variant {
		case "in":
			return EaseInExpo, true
		case "inout":
			return EaseInOutExpo, true
		default:
			return EaseOutExpo, true
		}
	case "circ":
		switch variant {
		case "in":
			return func(t float64) float64 { return 1 - math.Sqrt(1-t*t) }, true
		case "inout":
			return func(t float64) float64 {
				if t < 0.5 {
					return (1 - math.Sqrt(1-math.Pow(2*t, 2))) / 2
				}
				return (math.Sqrt(1-math.Pow(-2*t+2, 2)) + 1) / 2
			}, true
		default:
			return func(t float64) float64 { return math.Sqrt(1 - math.Pow(t-1, 2)) }, true
		}
	case "back":
		overshoot := 1.70158
		if param != "" {
			v, err := strconv.ParseFloat(param, 64)
			if err != nil {
				return nil, false
			}
			overshoot = v
		}
		return backEase(overshoot, variant), true
	case "bounce":
		switch variant {
		case "in":
			return EaseInBounce, true
		case "inout":
			return EaseInOutBounce, true
		default:
			return EaseOutBounce, true
		}
	}
	return nil, false
}

// EasingOrDefault 解析缓动名称，无法识别时返回 EaseOutQuad
func EasingOrDefault(name string) EasingFunc {
	if fn, ok := EasingByName(name); ok {
		return fn
	}
	return EaseOutQuad
}
