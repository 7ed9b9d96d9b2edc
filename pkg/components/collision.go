package components

// CollisionComponent 轴对齐碰撞盒组件
// 以实体位置为中心
type CollisionComponent struct {
	Width   float64 // 碰撞盒宽度（像素）
	Height  float64 // 碰撞盒高度（像素）
	OffsetX float64 // 碰撞盒相对于实体位置的X偏移量（像素），正值向右偏移
	OffsetY float64 // 碰撞盒相对于实体位置的Y偏移量（像素），正值向下偏移
}

// StaticComponent 标记不会移动的实体（平台、地面）
type StaticComponent struct{}
