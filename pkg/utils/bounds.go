package utils

import "github.com/jakecoffman/cp"

// BoundsAround 以 (x, y) 为中心、半宽 hw、半高 hh 构造包围盒
//
// 实体的 PositionComponent 表示视觉中心，所以包围盒总是居中构造。
func BoundsAround(x, y, hw, hh float64) cp.BB {
	return cp.NewBBForExtents(cp.Vector{X: x, Y: y}, hw, hh)
}

// ScreenBounds 返回屏幕矩形向外扩展 margin 像素后的包围盒
func ScreenBounds(width, height, margin float64) cp.BB {
	return cp.BB{L: -margin, B: -margin, R: width + margin, T: height + margin}
}

// Overlaps 两个包围盒是否严格相交（仅接触边缘不算）
func Overlaps(a, b cp.BB) bool {
	return a.L < b.R && a.R > b.L && a.B < b.T && a.T > b.B
}
