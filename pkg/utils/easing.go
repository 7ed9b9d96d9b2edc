// Package utils 提供行为与系统共用的小工具：缓动函数和轴对齐包围盒。
package utils

import (
	"fmt"
	"math"
)

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值。
// EaseOutBack 会短暂超过 1，用于缩放"弹出"效果。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数签名
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseOutExpo 指数缓出
// 公式：f(t) = 1 - 2^(-10t)
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// EaseOutBack 回弹缓出
// 特点：越过终点后回落，适合子弹生成时的"弹出"缩放
// 公式：f(t) = 1 + c3(t-1)³ + c1(t-1)²
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

var easingByName = map[string]EasingFunc{
	"linear":   EaseLinear,
	"outQuad":  EaseOutQuad,
	"outCubic": EaseOutCubic,
	"outExpo":  EaseOutExpo,
	"outBack":  EaseOutBack,
}

// EasingByName 根据配置中的名字查找缓动函数
// 空字符串返回 EaseLinear
func EasingByName(name string) (EasingFunc, error) {
	if name == "" {
		return EaseLinear, nil
	}
	fn, ok := easingByName[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}
