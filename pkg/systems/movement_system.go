package systems

import (
	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/ecs"
)

// MovementSystem 驱动所有 MovementComponent
type MovementSystem struct {
	entityManager *ecs.EntityManager
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager) *MovementSystem {
	return &MovementSystem{entityManager: em}
}

// Update 对每个 MovementBehavior 调用一次 Update(dt)
// 已标记删除的实体跳过
func (s *MovementSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.MovementComponent](s.entityManager)

	for _, id := range entities {
		if s.entityManager.IsPendingDestroy(id) {
			continue
		}
		movement, ok := ecs.GetComponent[*components.MovementComponent](s.entityManager, id)
		if !ok || movement.Behavior == nil {
			continue
		}
		movement.Behavior.Update(dt)

		// 同步速度组件，供渲染和存档使用
		if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id); ok {
			v := movement.Behavior.Velocity()
			vel.VX, vel.VY = v.X, v.Y
		}
	}
}
