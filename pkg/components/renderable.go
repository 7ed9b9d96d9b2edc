package components

import "image/color"

// RenderableComponent 用纯色圆形绘制的实体（子弹）
type RenderableComponent struct {
	Radius float64
	Color  color.RGBA
	Layer  int // 数值大的后绘制
}
