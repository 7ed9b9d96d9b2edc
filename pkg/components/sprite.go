package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteComponent 精灵图组件
//
// Image 是横向排列的图集；FrameWidth 为 0 时整张图作为单帧绘制。
type SpriteComponent struct {
	Image       *ebiten.Image
	FrameWidth  int
	FrameHeight int
	Index       int
	Tint        color.RGBA
}

// SpriteAnimationComponent 图集帧动画
type SpriteAnimationComponent struct {
	Len       int     // 帧数
	FrameTime float64 // 每帧时长（秒）
}

// NewSpriteAnimation 根据帧数和 fps 创建动画
func NewSpriteAnimation(length, fps int) *SpriteAnimationComponent {
	frameTime := 0.0
	if fps > 0 {
		frameTime = 1.0 / float64(fps)
	}
	return &SpriteAnimationComponent{Len: length, FrameTime: frameTime}
}

// FrameTimeComponent 累积的帧时间
type FrameTimeComponent struct {
	Elapsed float64
}
