package systems

import (
	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/ecs"
	"github.com/gonewx/peashot/pkg/utils"
)

// ScaleEffectSystem 推进缩放动画
type ScaleEffectSystem struct {
	entityManager *ecs.EntityManager
}

// NewScaleEffectSystem 创建缩放效果系统
func NewScaleEffectSystem(em *ecs.EntityManager) *ScaleEffectSystem {
	return &ScaleEffectSystem{entityManager: em}
}

// Update 更新所有缩放动画，结束后移除动画组件
func (s *ScaleEffectSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.ScaleAnimationComponent](s.entityManager)

	for _, id := range entities {
		anim, ok := ecs.GetComponent[*components.ScaleAnimationComponent](s.entityManager, id)
		if !ok {
			continue
		}
		scale, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id)
		if !ok {
			scale = &components.ScaleComponent{}
			s.entityManager.AddComponent(id, scale)
		}

		anim.Elapsed += dt

		progress := 1.0
		if anim.Duration > 0 {
			progress = utils.Clamp01(anim.Elapsed / anim.Duration)
		}
		easing := anim.Easing
		if easing == nil {
			easing = utils.EaseLinear
		}
		value := utils.Lerp(anim.From, anim.To, easing(progress))
		scale.ScaleX, scale.ScaleY = value, value

		if progress >= 1 {
			// 写入精确终值，避免缓动函数的浮点误差
			scale.ScaleX, scale.ScaleY = anim.To, anim.To
			ecs.RemoveComponent[*components.ScaleAnimationComponent](s.entityManager, id)
		}
	}
}
