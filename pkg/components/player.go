package components

// PlayerComponent 标记由玩家输入控制的 Actor
type PlayerComponent struct {
	Speed     float64 // 水平移动速度（像素/秒）
	FallSpeed float64 // 下落速度（像素/秒）
	JumpPower float64 // 一次跳跃的总高度（像素）
}

// JumpComponent 跳跃中剩余的上升高度
// 为 0 时由 PlayerPhysicsSystem 移除
type JumpComponent struct {
	Remaining float64
}

// GroundedComponent 是否站在地面上
//
// 通过比较本帧与上一帧的 Y 坐标判断：Y 没有变化即视为着地。
type GroundedComponent struct {
	Grounded bool
	LastY    float64
	HasLast  bool
}
