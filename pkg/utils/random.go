package utils

import (
	"math/rand"
	"time"
)

// RandomSource 随机数来源
// *rand.Rand 满足此接口；测试时注入固定种子即可得到确定性的结果
type RandomSource interface {
	Float64() float64
}

// NewRandomSource 创建随机数来源，seed 为 0 时使用当前时间
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomRange 返回 [-r, r] 内的随机值；rng 为 nil 或 r <= 0 时返回 0
func RandomRange(rng RandomSource, r float64) float64 {
	if rng == nil || r <= 0 {
		return 0
	}
	return (rng.Float64()*2 - 1) * r
}
