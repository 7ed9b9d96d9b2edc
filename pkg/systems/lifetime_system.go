package systems

import (
	"log"

	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 离屏事件之外的兜底：从未进入屏幕的子弹也会在 MaxLifetime 后被清理
type LifetimeSystem struct {
	entityManager *ecs.EntityManager

	// OnExpire 实体首次过期时调用，可为 nil
	OnExpire func(id ecs.EntityID)
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		// 已被其他途径（如离屏）标记删除的实体不再计时，避免重复统计
		if s.entityManager.IsPendingDestroy(id) {
			continue
		}
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.MaxLifetime <= 0 {
			continue
		}

		lifetime.CurrentLifetime += deltaTime

		if lifetime.CurrentLifetime >= lifetime.MaxLifetime && !lifetime.IsExpired {
			lifetime.IsExpired = true
			log.Printf("[LifetimeSystem] 实体 %d 超过最大生命周期 %.1fs，标记删除", id, lifetime.MaxLifetime)
			if s.OnExpire != nil {
				s.OnExpire(id)
			}
		}

		// 如果已过期,标记实体待删除
		if lifetime.IsExpired {
			s.entityManager.DestroyEntity(id)
		}
	}
}
