package entities

import (
	"fmt"
	"image/color"
	"log"

	"github.com/gonewx/peashot/pkg/behavior"
	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/config"
	"github.com/gonewx/peashot/pkg/ecs"
	"github.com/gonewx/peashot/pkg/systems"
	"github.com/jakecoffman/cp"
)

// ProjectileColor 子弹的默认颜色
var ProjectileColor = color.RGBA{R: 120, G: 220, B: 80, A: 255}

// NewProjectile 创建子弹实体
//
// 子弹以恒定速度直线飞行；生成时播放缩放和闪烁效果，
// 离开屏幕后由 ProjectileLifecycle 请求销毁。
//
// 参数:
//   - em: 实体管理器
//   - cfg: 行为配置（子弹半径、生命周期、效果参数）
//   - startX, startY: 子弹起始世界坐标
//   - velocity: 飞行速度（像素/秒）
//   - hooks: 可选的统计回调，可为 nil
//
// 返回:
//   - ecs.EntityID: 创建的子弹实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewProjectile(em *ecs.EntityManager, cfg *config.BehaviorConfig, startX, startY float64, velocity cp.Vector, hooks *systems.LifecycleHooks) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("behavior config cannot be nil")
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{X: startX, Y: startY})
	em.AddComponent(entityID, &components.VelocityComponent{VX: velocity.X, VY: velocity.Y})
	em.AddComponent(entityID, &components.ScaleComponent{ScaleX: 1, ScaleY: 1})
	em.AddComponent(entityID, &components.RenderableComponent{
		Radius: cfg.Projectile.Radius,
		Color:  ProjectileColor,
		Layer:  1,
	})
	em.AddComponent(entityID, &components.VisibilityNotifierComponent{
		HalfWidth:  cfg.Projectile.Radius,
		HalfHeight: cfg.Projectile.Radius,
	})
	if cfg.Projectile.MaxLifetime > 0 {
		em.AddComponent(entityID, &components.LifetimeComponent{MaxLifetime: cfg.Projectile.MaxLifetime})
	}

	actor, err := systems.NewEntityActor(em, entityID)
	if err != nil {
		em.DestroyEntity(entityID)
		return 0, fmt.Errorf("failed to create projectile actor: %w", err)
	}
	movement, err := behavior.NewMovementBehavior(actor, velocity)
	if err != nil {
		em.DestroyEntity(entityID)
		return 0, fmt.Errorf("failed to create projectile movement: %w", err)
	}
	em.AddComponent(entityID, &components.MovementComponent{Behavior: movement})

	notifier, err := systems.NewVisibilityNotifierAdapter(em, entityID)
	if err != nil {
		em.DestroyEntity(entityID)
		return 0, fmt.Errorf("failed to create projectile notifier: %w", err)
	}
	lifecycle, err := behavior.NewProjectileLifecycle(
		systems.NewScaleEffectAdapter(em, entityID, cfg.ScaleEffect, hooks),
		systems.NewFlashEffectAdapter(em, entityID, cfg.FlashEffect, hooks),
		notifier,
		systems.NewEntityDestroyer(em, entityID, hooks),
	)
	if err != nil {
		em.DestroyEntity(entityID)
		return 0, fmt.Errorf("failed to create projectile lifecycle: %w", err)
	}
	em.AddComponent(entityID, &components.ProjectileComponent{Lifecycle: lifecycle})

	lifecycle.Ready()

	log.Printf("[ProjectileFactory] 创建子弹 %d: 位置=(%.1f, %.1f), 速度=(%.1f, %.1f)",
		entityID, startX, startY, velocity.X, velocity.Y)

	return entityID, nil
}
