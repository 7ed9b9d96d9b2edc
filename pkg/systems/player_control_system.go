package systems

import (
	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/ecs"
	"github.com/jakecoffman/cp"
)

// InputState 一帧的玩家输入快照
// 由调用方（ebiten 主循环或测试）填充，系统本身不读取设备
type InputState struct {
	Left  bool
	Right bool
	// JumpPressed 跳跃键在本帧刚按下
	JumpPressed bool
	// JumpHeld 跳跃键处于按住状态
	JumpHeld bool
}

// PlayerControlSystem 把输入转换为玩家的水平速度和跳跃请求
//
// 水平位移由 MovementSystem 通过玩家的 MovementBehavior 完成，
// 所以本系统必须在 MovementSystem 之前更新。
type PlayerControlSystem struct {
	entityManager *ecs.EntityManager
	input         InputState
}

// NewPlayerControlSystem 创建玩家控制系统
func NewPlayerControlSystem(em *ecs.EntityManager) *PlayerControlSystem {
	return &PlayerControlSystem{entityManager: em}
}

// SetInput 设置本帧输入
func (s *PlayerControlSystem) SetInput(input InputState) {
	s.input = input
}

// Input 返回当前输入快照
func (s *PlayerControlSystem) Input() InputState {
	return s.input
}

// Update 处理玩家输入
func (s *PlayerControlSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith2[
		*components.PlayerComponent,
		*components.MovementComponent,
	](s.entityManager)

	for _, id := range entities {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		movement, _ := ecs.GetComponent[*components.MovementComponent](s.entityManager, id)
		if movement.Behavior == nil {
			continue
		}

		// 起跳帧不做水平移动
		if s.input.JumpPressed && s.canJump(id) {
			s.entityManager.AddComponent(id, &components.JumpComponent{Remaining: player.JumpPower})
			movement.Behavior.SetVelocity(cp.Vector{})
			continue
		}

		vx := 0.0
		switch {
		case s.input.Left:
			vx = -player.Speed
		case s.input.Right:
			vx = player.Speed
		}
		movement.Behavior.SetVelocity(cp.Vector{X: vx})
	}
}

// canJump 只有站在地面上且不在跳跃中才能起跳
func (s *PlayerControlSystem) canJump(id ecs.EntityID) bool {
	if ecs.HasComponent[*components.JumpComponent](s.entityManager, id) {
		return false
	}
	grounded, ok := ecs.GetComponent[*components.GroundedComponent](s.entityManager, id)
	if !ok {
		return true
	}
	return grounded.Grounded
}
