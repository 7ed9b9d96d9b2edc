package systems

import (
	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/ecs"
)

// SpriteAnimationSystem 按固定帧率推进精灵帧
//
// 一次 Update 可能跨越多帧（低帧率或卡顿时），多余的时间保留到下一次。
type SpriteAnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewSpriteAnimationSystem 创建精灵动画系统
func NewSpriteAnimationSystem(em *ecs.EntityManager) *SpriteAnimationSystem {
	return &SpriteAnimationSystem{entityManager: em}
}

// Update 推进所有精灵动画
func (s *SpriteAnimationSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith3[
		*components.SpriteComponent,
		*components.SpriteAnimationComponent,
		*components.FrameTimeComponent,
	](s.entityManager)

	for _, id := range entities {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		anim, _ := ecs.GetComponent[*components.SpriteAnimationComponent](s.entityManager, id)
		frameTime, _ := ecs.GetComponent[*components.FrameTimeComponent](s.entityManager, id)

		if anim.Len <= 0 || anim.FrameTime <= 0 {
			continue
		}

		frameTime.Elapsed += dt
		if frameTime.Elapsed < anim.FrameTime {
			continue
		}

		frames := int(frameTime.Elapsed / anim.FrameTime)
		sprite.Index = (sprite.Index + frames) % anim.Len
		frameTime.Elapsed -= float64(frames) * anim.FrameTime
	}
}
