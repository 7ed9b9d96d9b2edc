package components

// FlashEffectComponent 闪烁效果组件
// 子弹生成时短暂闪白
type FlashEffectComponent struct {
	// Duration 闪烁持续时间（秒）
	Duration float64

	// Elapsed 已经过的时间（秒）
	Elapsed float64

	// Intensity 闪烁强度（0.0 - 1.0）
	// 1.0 = 完全白色，0.0 = 无效果
	Intensity float64

	// IsActive 是否激活（用于临时禁用效果）
	IsActive bool
}

// CurrentIntensity 返回随时间线性衰减后的强度
func (f *FlashEffectComponent) CurrentIntensity() float64 {
	if !f.IsActive || f.Duration <= 0 || f.Elapsed >= f.Duration {
		return 0
	}
	return f.Intensity * (1 - f.Elapsed/f.Duration)
}
