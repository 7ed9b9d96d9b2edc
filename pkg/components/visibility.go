package components

// VisibilityNotifierComponent 屏幕可见性通知组件
//
// VisibilitySystem 每帧用 (HalfWidth, HalfHeight) 构造包围盒与视口比较。
// 只有"曾经在屏幕内 -> 现在完全离开"这一跳变会触发 Subscribers，
// 且每个实体最多触发一次。
type VisibilityNotifierComponent struct {
	HalfWidth  float64
	HalfHeight float64

	// OnScreen 上一帧的可见性
	OnScreen bool
	// Seen 是否曾经进入过屏幕
	Seen bool
	// Fired 离屏事件是否已经发出
	Fired bool

	Subscribers []func()
}
