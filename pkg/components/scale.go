package components

import "github.com/gonewx/peashot/pkg/utils"

// ScaleComponent 存储实体级别的缩放因子
// 渲染时对整个实体进行缩放（1.0 = 原始大小）
type ScaleComponent struct {
	ScaleX float64
	ScaleY float64
}

// ScaleAnimationComponent 一次性缩放动画
//
// ScaleEffectSystem 按 Easing 曲线把 ScaleComponent 从 From 插值到 To，
// Elapsed >= Duration 后写入 To 并移除本组件。
type ScaleAnimationComponent struct {
	From     float64
	To       float64
	Duration float64 // 秒
	Elapsed  float64 // 秒
	Easing   utils.EasingFunc
}
