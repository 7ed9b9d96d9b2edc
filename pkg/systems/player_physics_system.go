package systems

import (
	"math"

	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/ecs"
	"github.com/gonewx/peashot/pkg/utils"
	"github.com/jakecoffman/cp"
)

// PlayerPhysicsSystem 跳跃、下落与落地检测
//
// 坐标系 Y 轴向下：跳跃减小 Y，下落增大 Y。
// 下落时如果新位置会与任意静态碰撞盒重叠，则本帧不下落。
type PlayerPhysicsSystem struct {
	entityManager *ecs.EntityManager
	controls      *PlayerControlSystem
}

// NewPlayerPhysicsSystem 创建玩家物理系统
//
// 参数:
//   - em: 实体管理器
//   - controls: 提供跳跃键是否按住；可为 nil（视为未按住）
func NewPlayerPhysicsSystem(em *ecs.EntityManager, controls *PlayerControlSystem) *PlayerPhysicsSystem {
	return &PlayerPhysicsSystem{entityManager: em, controls: controls}
}

// Update 依次执行跳跃、下落和落地检测
func (s *PlayerPhysicsSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	held := s.controls != nil && s.controls.Input().JumpHeld

	entities := ecs.GetEntitiesWith2[
		*components.PlayerComponent,
		*components.PositionComponent,
	](s.entityManager)

	for _, id := range entities {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		if jump, ok := ecs.GetComponent[*components.JumpComponent](s.entityManager, id); ok {
			s.jump(id, player, pos, jump, dt, held)
		} else {
			s.fall(id, player, pos, dt)
		}

		if grounded, ok := ecs.GetComponent[*components.GroundedComponent](s.entityManager, id); ok {
			grounded.Grounded = grounded.HasLast && pos.Y == grounded.LastY
			grounded.LastY = pos.Y
			grounded.HasLast = true
		}
	}
}

// jump 上升速度是下落速度的两倍；松开跳跃键时剩余高度消耗加倍，跳得更低
func (s *PlayerPhysicsSystem) jump(id ecs.EntityID, player *components.PlayerComponent, pos *components.PositionComponent, jump *components.JumpComponent, dt float64, held bool) {
	power := math.Min(dt*player.FallSpeed*2, jump.Remaining)
	pos.Y -= power

	if held {
		jump.Remaining -= power
	} else {
		jump.Remaining -= power * 2
	}
	if jump.Remaining <= 0 {
		ecs.RemoveComponent[*components.JumpComponent](s.entityManager, id)
	}
}

func (s *PlayerPhysicsSystem) fall(id ecs.EntityID, player *components.PlayerComponent, pos *components.PositionComponent, dt float64) {
	newY := pos.Y + player.FallSpeed*dt

	if box, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id); ok {
		next := hitbox(pos.X, newY, box)
		for _, other := range ecs.GetEntitiesWith3[
			*components.StaticComponent,
			*components.CollisionComponent,
			*components.PositionComponent,
		](s.entityManager) {
			if other == id {
				continue
			}
			otherBox, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, other)
			otherPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, other)
			if utils.Overlaps(next, hitbox(otherPos.X, otherPos.Y, otherBox)) {
				return
			}
		}
	}

	pos.Y = newY
}

// hitbox 计算实体在 (x, y) 处的碰撞盒
func hitbox(x, y float64, box *components.CollisionComponent) cp.BB {
	return utils.BoundsAround(x+box.OffsetX, y+box.OffsetY, box.Width/2, box.Height/2)
}
