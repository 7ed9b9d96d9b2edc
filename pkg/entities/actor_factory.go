package entities

import (
	"fmt"

	"github.com/gonewx/peashot/pkg/behavior"
	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/config"
	"github.com/gonewx/peashot/pkg/ecs"
	"github.com/gonewx/peashot/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// NewActor 创建玩家角色
//
// 角色的水平移动复用 MovementBehavior，速度由 PlayerControlSystem 每帧设置。
//
// 参数:
//   - em: 实体管理器
//   - cfg: 行为配置（actor 与 animation 部分）
//   - x, y: 初始位置（碰撞盒中心）
//   - sheet: 横向排列的动画帧图集，可为 nil（不绘制）
func NewActor(em *ecs.EntityManager, cfg *config.BehaviorConfig, x, y float64, sheet *ebiten.Image) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("behavior config cannot be nil")
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.PlayerComponent{
		Speed:     cfg.Actor.Speed,
		FallSpeed: cfg.Actor.FallSpeed,
		JumpPower: cfg.Actor.JumpPower,
	})
	em.AddComponent(entityID, &components.CollisionComponent{
		Width:  cfg.Actor.Width,
		Height: cfg.Actor.Height,
	})
	em.AddComponent(entityID, &components.GroundedComponent{})

	actor, err := systems.NewEntityActor(em, entityID)
	if err != nil {
		em.DestroyEntity(entityID)
		return 0, fmt.Errorf("failed to create actor: %w", err)
	}
	movement, err := behavior.NewMovementBehavior(actor, cp.Vector{})
	if err != nil {
		em.DestroyEntity(entityID)
		return 0, fmt.Errorf("failed to create actor movement: %w", err)
	}
	em.AddComponent(entityID, &components.MovementComponent{Behavior: movement})

	em.AddComponent(entityID, &components.SpriteComponent{
		Image:       sheet,
		FrameWidth:  int(cfg.Actor.Width),
		FrameHeight: int(cfg.Actor.Height),
	})
	em.AddComponent(entityID, components.NewSpriteAnimation(cfg.Animation.Frames, cfg.Animation.FPS))
	em.AddComponent(entityID, &components.FrameTimeComponent{})

	return entityID, nil
}
