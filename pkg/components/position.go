package components

// PositionComponent 实体的世界坐标（视觉中心）
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 实体速度（像素/秒）
// 仅用于渲染朝向和存档；真正的位移由 MovementComponent 完成
type VelocityComponent struct {
	VX float64
	VY float64
}
